package httperr

import "errors"

// Kind classifies recoverable business failures. Every rejected mutation
// carries one so handlers can pick the HTTP status and clients can react.
type Kind string

const (
	KindValidation Kind = "validation" // missing/invalid referenced entity
	KindTemporal   Kind = "temporal"   // past date, past time-of-day on today
	KindConflict   Kind = "conflict"   // slot already taken
	KindState      Kind = "state"      // illegal status transition
	KindGate       Kind = "gate"       // finalize attempted without completeness
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrValidation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func ErrTemporal(code, message string) error {
	return BusinessError{Kind: KindTemporal, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func ErrState(code, message string) error {
	return BusinessError{Kind: KindState, Code: code, Message: message}
}

func ErrGate(code, message string) error {
	return BusinessError{Kind: KindGate, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
