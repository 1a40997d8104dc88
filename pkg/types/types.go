package types

import (
	"github.com/pkg/errors"
)

// ErrorKind classifies failures reported back to callers of the editor.
type ErrorKind string

const (
	ErrorKindInputNotFound    ErrorKind = "input_not_found"
	ErrorKindEncodingFailure  ErrorKind = "encoding_failure"
	ErrorKindInvalidOperation ErrorKind = "invalid_operation"
)

// EditError is the structured failure result returned by the session, engine
// and exporter layers.
type EditError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// NewEditError creates an EditError. The cause may be nil.
func NewEditError(kind ErrorKind, message string, cause error) *EditError {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &EditError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

func (e *EditError) Error() string {
	if e.Cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *EditError) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of the first EditError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var editErr *EditError
	if errors.As(err, &editErr) {
		return editErr.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
