package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Client errors
	ErrClientNotFound   = errors.New("oauth client not found")
	ErrClientInactive   = errors.New("oauth client is inactive")
	ErrGrantNotAllowed  = errors.New("oauth client is not allowed to use the password grant")
	ErrUserLookupFailed = errors.New("failed to look up user")

	// HTTP API errors
	ErrHTTPAPIConnection  = errors.New("failed to connect to authentication API")
	ErrHTTPAPIAuthFailed  = errors.New("authentication API rejected credentials")
	ErrHTTPAPIInvalidResp = errors.New("invalid response from authentication API")
)

// IsRejection reports whether err means the presented credentials were
// checked and found wanting, as opposed to the check itself failing.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrHTTPAPIAuthFailed) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrClientInactive) ||
		errors.Is(err, ErrGrantNotAllowed)
}
