package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
		{name: "wrapped error", err: fmt.Errorf("failed to save record: %w", errors.New("boom")), expected: "Error: failed to save record: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s for %d", "records", 2026)
	want := "Error: failed to load records for 2026"
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{name: "nil", err: nil, contains: ""},
		{name: "network", err: fmt.Errorf("GET /api/v1/main: %w", ErrNetwork), contains: "Could not reach the server"},
		{name: "unauthorized", err: fmt.Errorf("GET /api/v1/main: %w", ErrUnauthorized), contains: "moodlit login"},
		{name: "validation", err: fmt.Errorf("%w: mood level 9", ErrValidation), contains: "mood level 9"},
		{name: "other", err: errors.New("disk full"), contains: "Error: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserMessage(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("UserMessage(%v) = %q, want it to contain %q", tt.err, got, tt.contains)
			}
			if tt.err != nil && !strings.HasPrefix(got, "Error: ") {
				t.Errorf("UserMessage(%v) = %q, missing prefix", tt.err, got)
			}
		})
	}
}

func TestRecoveryMessage(t *testing.T) {
	if !strings.Contains(RecoveryMessage(), "doctor") {
		t.Errorf("RecoveryMessage() = %q, want a pointer to doctor", RecoveryMessage())
	}
}
