package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"file too large sentinel", &ReadError{Err: ErrFileTooLarge}, "FILE001"},
		{"request body too large", errors.New("http: request body too large"), "FILE001"},
		{"corrupt workbook", &ReadError{Name: "a.xlsx", Err: fmt.Errorf("open workbook: %w", errors.New("zip: not a valid zip file"))}, "FILE002"},
		{"unsupported encoding", &ReadError{Err: fmt.Errorf("%w: %q", ErrUnsupportedEncoding, "klingon")}, "FILE003"},
		{"no file", &ReadError{Err: ErrNoFile}, "FILE004"},
		{"other read failure", &ReadError{Err: errors.New("disk on fire")}, "FILE006"},
		{"busy", ErrTooManyIngests, "ING001"},
		{"unknown dataset", fmt.Errorf("%w: %s", ErrUnknownDataset, "rainfall"), "ING002"},
		{"cancelled", fmt.Errorf("ingest: %w", context.Canceled), "ING003"},
		{"deadline", context.DeadlineExceeded, "ING004"},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001"},
		{"case insensitive", errors.New("RATE LIMIT EXCEEDED"), "RATE001"},
		{"unknown", errors.New("random internal error xyz"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("MapError() message should not be empty")
			}
		})
	}
}

func TestMapMessage(t *testing.T) {
	tests := []struct {
		msg      string
		wantCode string
	}{
		{"", ""},
		{"File is empty or has no data rows", "FILE005"},
		{"Missing required columns: Population", "VAL004"},
		{"Row 3: Column count mismatch (expected 2, got 3)", "VAL007"},
		{"Row 2: Total must be a non-negative number", "ERR000"},
	}

	for _, tt := range tests {
		if got := MapMessage(tt.msg).Code; got != tt.wantCode {
			t.Errorf("MapMessage(%q) code = %q, want %q", tt.msg, got, tt.wantCode)
		}
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrTooManyIngests)

	expected := "Too many files are being processed (Code: ING001). Please wait a moment and try again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", &ReadError{Err: ErrFileTooLarge}, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := &ReadError{Name: "a.csv", Err: ErrFileTooLarge}
		userErr := NewUserError(techErr)

		if userErr.Error() != "File exceeds maximum size limit" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, ErrFileTooLarge) {
			t.Error("Unwrap() should reach the original cause")
		}
	})
}
