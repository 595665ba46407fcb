package strategy

// Actions is the capability a host supplies to receive the outcome of
// Authenticate. Exactly one method is called, exactly once, per call.
type Actions[P any] interface {
	// Success is called with the verified principal and the optional info
	// value returned by the verifier (nil when none was given).
	Success(principal P, info any)

	// Fail is called when credentials are missing or did not verify. The
	// strategy always passes an empty challenge and a zero status so the host
	// applies its own defaults.
	Fail(challenge string, status int)

	// Error is called with the verifier's error, unmodified.
	Error(err error)
}

// ActionFuncs adapts plain functions to Actions. Nil fields are no-ops.
type ActionFuncs[P any] struct {
	OnSuccess func(principal P, info any)
	OnFail    func(challenge string, status int)
	OnError   func(err error)
}

var _ Actions[struct{}] = ActionFuncs[struct{}]{}

func (a ActionFuncs[P]) Success(principal P, info any) {
	if a.OnSuccess != nil {
		a.OnSuccess(principal, info)
	}
}

func (a ActionFuncs[P]) Fail(challenge string, status int) {
	if a.OnFail != nil {
		a.OnFail(challenge, status)
	}
}

func (a ActionFuncs[P]) Error(err error) {
	if a.OnError != nil {
		a.OnError(err)
	}
}
