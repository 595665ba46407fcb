package models

// Principal is the identity established by the password strategy: a resource
// owner acting through a registered OAuth application.
type Principal struct {
	ClientID   string
	UserID     string
	Username   string
	Scopes     string
	AuthSource string
}

// PrincipalInfo is the auxiliary value handed to the success action.
type PrincipalInfo struct {
	ClientName string
	RemoteIP   string
}
