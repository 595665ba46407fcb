// Package strategy authenticates requests that carry an OAuth 2.0 client
// identifier together with resource owner credentials in the request body.
//
// The strategy extracts client_id, username and password, hands them to a
// caller-supplied verification procedure, and reports the procedure's result
// to the host through exactly one of the Actions methods. It performs no I/O,
// keeps no per-call state, and never logs.
package strategy

import "context"

// Name identifies the strategy to hosts that register several of them.
const Name = "oauth2-clientid-username-password"

// VerifyFunc verifies credentials using the standard calling convention.
type VerifyFunc[P any] func(
	ctx context.Context,
	clientID, username, password string,
) Result[P]

// VerifyRequestFunc verifies credentials and also receives the original request.
type VerifyRequestFunc[P any] func(
	ctx context.Context,
	req *Request,
	clientID, username, password string,
) Result[P]

// Options configures a Strategy. PassRequestToCallback selects which of
// Verify and VerifyRequest is used for every call.
type Options[P any] struct {
	PassRequestToCallback bool
	Verify                VerifyFunc[P]
	VerifyRequest         VerifyRequestFunc[P]
}

// Strategy is immutable after construction and safe for concurrent use.
type Strategy[P any] struct {
	passReqToCallback bool
	verify            VerifyFunc[P]
	verifyRequest     VerifyRequestFunc[P]
}

// New creates a Strategy that calls verify with the standard convention.
func New[P any](verify VerifyFunc[P]) (*Strategy[P], error) {
	return NewWithOptions(Options[P]{Verify: verify})
}

// NewWithOptions creates a Strategy from opts. It returns ErrMissingVerifier
// when the procedure for the selected calling convention is nil.
func NewWithOptions[P any](opts Options[P]) (*Strategy[P], error) {
	if opts.PassRequestToCallback {
		if opts.VerifyRequest == nil {
			return nil, ErrMissingVerifier
		}
		return &Strategy[P]{
			passReqToCallback: true,
			verifyRequest:     opts.VerifyRequest,
		}, nil
	}

	if opts.Verify == nil {
		return nil, ErrMissingVerifier
	}
	return &Strategy[P]{verify: opts.Verify}, nil
}

// Name returns the strategy name.
func (s *Strategy[P]) Name() string {
	return Name
}

// PassRequestToCallback reports whether the verifier receives the request.
func (s *Strategy[P]) PassRequestToCallback() bool {
	return s.passReqToCallback
}

// Authenticate verifies the credentials carried by req and reports the
// outcome through actions.
//
// A request without a body, or with an empty client_id, username or password,
// fails immediately and the verifier is not called. Otherwise the verifier is
// called once and its result decides the action: an error goes to Error
// unchanged, a rejection or zero principal goes to Fail, and a principal goes
// to Success together with the verifier's info value.
func (s *Strategy[P]) Authenticate(ctx context.Context, req *Request, actions Actions[P]) {
	creds, ok := ExtractCredentials(req)
	if !ok {
		actions.Fail("", 0)
		return
	}

	var result Result[P]
	if s.passReqToCallback {
		result = s.verifyRequest(ctx, req, creds.ClientID, creds.Username, creds.Password)
	} else {
		result = s.verify(ctx, creds.ClientID, creds.Username, creds.Password)
	}

	if err := result.Err(); err != nil {
		actions.Error(err)
		return
	}

	principal, ok := result.Principal()
	if !ok {
		actions.Fail("", 0)
		return
	}

	actions.Success(principal, result.Info())
}
