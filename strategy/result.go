package strategy

import "reflect"

type outcome uint8

const (
	outcomeRejected outcome = iota
	outcomeVerified
	outcomeErrored
)

// Result is the single value a verification procedure hands back to the strategy.
// The zero value is a rejection.
type Result[P any] struct {
	outcome   outcome
	principal P
	info      any
	err       error
}

// Verified reports that the credentials identify principal. An optional info
// value is forwarded unchanged to the success action.
func Verified[P any](principal P, info ...any) Result[P] {
	r := Result[P]{outcome: outcomeVerified, principal: principal}
	if len(info) > 0 {
		r.info = info[0]
	}
	return r
}

// Rejected reports that the credentials did not verify.
func Rejected[P any]() Result[P] {
	return Result[P]{outcome: outcomeRejected}
}

// Errored reports an unexpected failure while verifying, such as an
// unreachable backing store.
func Errored[P any](err error) Result[P] {
	return Result[P]{outcome: outcomeErrored, err: err}
}

// Classify builds a Result from the conventional (principal, error) pair.
// A non-nil error always wins; a zero principal is a rejection.
func Classify[P any](principal P, err error, info ...any) Result[P] {
	if err != nil {
		return Errored[P](err)
	}
	if isZero(principal) {
		return Rejected[P]()
	}
	return Verified(principal, info...)
}

// Principal returns the verified principal and whether the result is a
// verification with a non-zero principal.
func (r Result[P]) Principal() (P, bool) {
	if r.outcome != outcomeVerified || isZero(r.principal) {
		var zero P
		return zero, false
	}
	return r.principal, true
}

// Info returns the auxiliary value passed to Verified, or nil.
func (r Result[P]) Info() any {
	return r.info
}

// Err returns the error passed to Errored, or nil.
func (r Result[P]) Err() error {
	if r.outcome != outcomeErrored {
		return nil
	}
	return r.err
}

// String returns the outcome label used in logs and metrics.
func (r Result[P]) String() string {
	switch {
	case r.Err() != nil:
		return "error"
	case r.outcome == outcomeVerified && !isZero(r.principal):
		return "success"
	default:
		return "failure"
	}
}

func isZero[P any](v P) bool {
	return reflect.ValueOf(&v).Elem().IsZero()
}
