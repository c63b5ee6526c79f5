package core

import "github.com/pkg/errors"

// ErrCatalogUnavailable marks a failed feature catalog fetch (transport, auth or payload).
var ErrCatalogUnavailable = errors.New("feature catalog unavailable")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// CatalogError wraps the cause of a catalog failure so that callers can tell it apart
// from programming errors while keeping the original message.
func CatalogError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &catalogErr{cause: errors.Wrap(err, msg)}
}

type catalogErr struct {
	cause error
}

func (e *catalogErr) Error() string { return ErrCatalogUnavailable.Error() + ": " + e.cause.Error() }
func (e *catalogErr) Cause() error  { return ErrCatalogUnavailable }
func (e *catalogErr) Unwrap() error { return e.cause }

// IsCatalogUnavailable reports whether err (or anything it wraps) is a catalog failure.
func IsCatalogUnavailable(err error) bool {
	return errors.Cause(err) == ErrCatalogUnavailable
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
