package devicestate

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of adapter error that occurred
type ErrorType int

const (
	// ErrTypeInvalidValue indicates a semantic value with no raw encoding
	// (unknown enum token, malformed fan speed suffix, wrong value type)
	ErrTypeInvalidValue ErrorType = iota
	// ErrTypeInvalidProperty indicates a property name outside the
	// recognized set passed to ApplyWrite
	ErrTypeInvalidProperty
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeInvalidValue:
		return "Invalid Value"
	case ErrTypeInvalidProperty:
		return "Invalid Property"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error represents a contract violation by the immediate caller. These are
// the only two failure modes of the adapter: absent or unexpected raw fields
// are handled by defaulting or by returning an unknown result, never by an
// error, and nothing in this package is ever retried.
type Error struct {
	Type     ErrorType // Category of error
	Property Property  // Property being written, when known
	Message  string    // Human-readable error message
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Property, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// newInvalidValue creates an InvalidValue error
func newInvalidValue(format string, args ...any) *Error {
	return &Error{
		Type:    ErrTypeInvalidValue,
		Message: fmt.Sprintf(format, args...),
	}
}

// newInvalidProperty creates an InvalidProperty error
func newInvalidProperty(property Property) *Error {
	return &Error{
		Type:     ErrTypeInvalidProperty,
		Property: property,
		Message:  "cannot set, invalid property",
	}
}

// IsInvalidValue checks if an error is an InvalidValue adapter error
func IsInvalidValue(err error) bool {
	var adapterErr *Error
	if errors.As(err, &adapterErr) {
		return adapterErr.Type == ErrTypeInvalidValue
	}
	return false
}

// IsInvalidProperty checks if an error is an InvalidProperty adapter error
func IsInvalidProperty(err error) bool {
	var adapterErr *Error
	if errors.As(err, &adapterErr) {
		return adapterErr.Type == ErrTypeInvalidProperty
	}
	return false
}
