package errors

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "test message: %s", "value")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_CONFIG: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "failed to encode")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "INTERNAL_ERROR: failed to encode: underlying error" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidConfig, "x"), ErrCodeInvalidConfig, true},
		{"different code", New(ErrCodeInvalidConfig, "x"), ErrCodeInternal, false},
		{"wrapped by fmt", fmt.Errorf("outer: %w", New(ErrCodeInvalidFormat, "x")), ErrCodeInvalidFormat, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidConfig, false},
		{"nil error", nil, ErrCodeInvalidConfig, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInvalid(t *testing.T) {
	err := Invalid("glow_layers", "must be between %d and %d, got %d", 1, 255, 0)

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}
	if got := err.Error(); got != "INVALID_CONFIG: glow_layers must be between 1 and 255, got 0" {
		t.Errorf("Error() = %q", got)
	}
	if got := UserMessage(err); got != "glow_layers must be between 1 and 255, got 0" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := FieldOf(fmt.Errorf("validate: %w", err)); got != "glow_layers" {
		t.Errorf("FieldOf() = %q, want glow_layers", got)
	}
	if got := FieldOf(New(ErrCodeInvalidInput, "x")); got != "" {
		t.Errorf("FieldOf() = %q, want empty", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{Invalid("hex_size", "x"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", New(ErrCodeInvalidFormat, "x")), http.StatusBadRequest},
		{New(ErrCodeInternal, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestIsInvalid(t *testing.T) {
	if !IsInvalid(New(ErrCodeInvalidInput, "x")) {
		t.Error("INVALID_INPUT should be invalid")
	}
	if IsInvalid(New(ErrCodeInternal, "x")) {
		t.Error("INTERNAL_ERROR should not be invalid")
	}
	if IsInvalid(errors.New("plain")) {
		t.Error("plain errors should not be invalid")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidConfig, "bad gap")); got != "bad gap" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad gap")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"positive", 5, false},
		{"tiny positive", 1e-9, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("gap_size", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%g) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidConfig {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
			if err != nil && FieldOf(err) != "gap_size" {
				t.Errorf("field = %q, want gap_size", FieldOf(err))
			}
		})
	}
}

func TestValidateUnit(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		if err := ValidateUnit("r", v); err != nil {
			t.Errorf("ValidateUnit(%g) = %v, want nil", v, err)
		}
	}
	for _, v := range []float64{-0.1, 1.1, math.NaN()} {
		if err := ValidateUnit("r", v); err == nil {
			t.Errorf("ValidateUnit(%g) = nil, want error", v)
		}
	}
}

func TestValidateIntRange(t *testing.T) {
	if err := ValidateIntRange("layer_count", 4, 1, 7); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateIntRange("layer_count", 0, 1, 7); err == nil {
		t.Error("expected error for value below range")
	}
	if err := ValidateIntRange("layer_count", 8, 1, 7); err == nil {
		t.Error("expected error for value above range")
	}
}
