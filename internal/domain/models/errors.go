package models

import "errors"

// Application-level error conditions. The web layer maps these onto HTTP
// statuses; nothing below the web layer knows about status codes.
var (
	// ErrNotFound means the requested key has no data.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable means the persistence layer failed. Distinct
	// from ErrNotFound so callers can tell "nothing to show" from
	// "system broken".
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// InputError is a validation failure on caller-supplied input. Its message
// is safe to return to the client verbatim.
type InputError struct {
	msg string
}

// NewInputError creates an InputError with a caller-facing message.
func NewInputError(msg string) *InputError {
	return &InputError{msg: msg}
}

func (e *InputError) Error() string {
	return e.msg
}

// IsInput reports whether err is (or wraps) an InputError.
func IsInput(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
