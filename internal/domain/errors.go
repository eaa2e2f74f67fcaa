package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
)

// MissingFieldsError lists required input fields that were empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "the following fields are missing: " + strings.Join(e.Fields, ", ")
}

// GenericError wraps a backend failure. Msg is safe to log; Err is the
// original driver error, kept for errors.Is/As.
type GenericError struct {
	Msg string
	Err error
}

func NewGenericError(msg string, err error) *GenericError {
	return &GenericError{Msg: msg, Err: err}
}

func (e *GenericError) Error() string {
	if e.Err == nil {
		return "an error occurred: " + e.Msg
	}
	return "an error occurred: " + e.Msg + ": " + e.Err.Error()
}

func (e *GenericError) Unwrap() error { return e.Err }

// RequireFields returns a *MissingFieldsError naming every empty value, or nil.
// Pairs are given as name, value, name, value, ...
func RequireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingFieldsError{Fields: missing}
}
