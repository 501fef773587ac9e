package devicestate

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeInvalidValue, "Invalid Value"},
		{ErrTypeInvalidProperty, "Invalid Property"},
		{ErrorType(42), "ErrorType(42)"},
	}

	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.et, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := newInvalidValue("invalid operation mode [%s]", "defrost")
	if got := err.Error(); got != "Invalid Value: invalid operation mode [defrost]" {
		t.Errorf("Error() = %q", got)
	}

	err = newInvalidProperty(Property("swing_mode"))
	if got := err.Error(); got != "Invalid Property: swing_mode: cannot set, invalid property" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorPredicates(t *testing.T) {
	valueErr := newInvalidValue("bad token")
	propertyErr := newInvalidProperty(PropertyPower)

	if !IsInvalidValue(valueErr) {
		t.Error("IsInvalidValue() = false for InvalidValue error")
	}
	if IsInvalidProperty(valueErr) {
		t.Error("IsInvalidProperty() = true for InvalidValue error")
	}
	if !IsInvalidProperty(propertyErr) {
		t.Error("IsInvalidProperty() = false for InvalidProperty error")
	}
	if IsInvalidValue(propertyErr) {
		t.Error("IsInvalidValue() = true for InvalidProperty error")
	}

	if IsInvalidValue(errors.New("plain")) || IsInvalidProperty(errors.New("plain")) {
		t.Error("predicates matched a plain error")
	}
	if IsInvalidValue(nil) || IsInvalidProperty(nil) {
		t.Error("predicates matched nil")
	}
}

func TestErrorPredicatesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("building patch: %w", newInvalidValue("bad token"))

	if !IsInvalidValue(wrapped) {
		t.Error("IsInvalidValue() should see through %w wrapping")
	}

	var adapterErr *Error
	if !errors.As(wrapped, &adapterErr) {
		t.Fatal("errors.As() failed on wrapped adapter error")
	}
	if adapterErr.Type != ErrTypeInvalidValue {
		t.Errorf("unwrapped Type = %v, want InvalidValue", adapterErr.Type)
	}
}
