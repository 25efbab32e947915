package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("ballot_no", 0, "must be positive")

	if !strings.Contains(err.Error(), "ballot_no") {
		t.Errorf("expected field name in message, got %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should return true")
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		unavailable bool
	}{
		{"server error maps to unavailable", 503, true},
		{"client error does not", 404, false},
		{"zero status does not", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError("ectreport", tt.statusCode, "boom")
			if got := IsSourceUnavailable(err); got != tt.unavailable {
				t.Errorf("IsSourceUnavailable = %v, want %v", got, tt.unavailable)
			}
		})
	}
}

func TestAbsentInputSentinel(t *testing.T) {
	wrapped := fmt.Errorf("reconcile: %w", ErrAbsentInput)
	if !IsAbsentInput(wrapped) {
		t.Error("wrapped ErrAbsentInput should be detected")
	}
	if IsAbsentInput(ErrInvalidInput) {
		t.Error("ErrInvalidInput is not absent input")
	}
}

func TestSourceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSourceError("vote62", "structure", cause)

	if !errors.Is(err, cause) {
		t.Error("SourceError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "vote62") || !strings.Contains(err.Error(), "structure") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	if WrapIO("read", "/tmp/x", nil) != nil {
		t.Error("WrapIO(nil) should be nil")
	}
	if WrapParse("json", "x.json", nil) != nil {
		t.Error("WrapParse(nil) should be nil")
	}
	if WrapSource("ectreport", "stats_cons", nil) != nil {
		t.Error("WrapSource(nil) should be nil")
	}
	if WrapValidation("rank", nil) != nil {
		t.Error("WrapValidation(nil) should be nil")
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := NewParseError("json", "stats_cons.json", "unexpected EOF", nil)
	if !strings.Contains(err.Error(), "stats_cons.json") {
		t.Errorf("expected file in message, got %q", err.Error())
	}
}
