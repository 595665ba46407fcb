package strategy

import "net/http"

// Body keys read by the strategy. Lookups are exact and case-sensitive.
const (
	FieldClientID = "client_id"
	FieldUsername = "username"
	FieldPassword = "password"
)

// Request is an inbound request whose body has already been decoded by the host.
type Request struct {
	// Body holds the decoded form or JSON fields. A nil map means no body.
	Body map[string]string

	// HTTP is the original transport request, if any.
	HTTP *http.Request
}

// Credentials is the triple extracted from a request body.
type Credentials struct {
	ClientID string
	Username string
	Password string
}

// ExtractCredentials reports whether the request carries a body with non-empty
// client_id, username and password values.
func ExtractCredentials(req *Request) (Credentials, bool) {
	if req == nil || req.Body == nil {
		return Credentials{}, false
	}

	creds := Credentials{
		ClientID: req.Body[FieldClientID],
		Username: req.Body[FieldUsername],
		Password: req.Body[FieldPassword],
	}
	if creds.ClientID == "" || creds.Username == "" || creds.Password == "" {
		return Credentials{}, false
	}

	return creds, true
}
