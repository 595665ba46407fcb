package strategy

import "errors"

// ErrMissingVerifier is returned at construction when no verification
// procedure is available for the selected calling convention.
var ErrMissingVerifier = errors.New(
	"oauth2 client password strategy requires a verify function",
)
