package token

import "errors"

var (
	ErrExpired = errors.New("token is expired")
	ErrInvalid = errors.New("token is invalid")
)

// OtherError is any validation failure that is neither expiry nor a
// malformed or forged token, e.g. a missing required claim.
type OtherError struct {
	Msg string
	Err error
}

func (e *OtherError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *OtherError) Unwrap() error { return e.Err }

type Kind int

const (
	KindNone Kind = iota
	KindExpired
	KindInvalid
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindExpired:
		return "expired"
	case KindInvalid:
		return "invalid"
	default:
		return "other"
	}
}

// KindOf classifies an error returned by Service.Validate.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrExpired):
		return KindExpired
	case errors.Is(err, ErrInvalid):
		return KindInvalid
	default:
		return KindOther
	}
}
