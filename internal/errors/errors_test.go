package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProvisionError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *ProvisionError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestProvisionError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name     string
		err      *ProvisionError
		wantCode int
	}{
		{"config", ConfigError("bad config", cause), ExitConfigError},
		{"platform", UnsupportedPlatform("windows"), ExitUnsupportedPlatform},
		{"sandbox", SandboxFailed("staging", cause), ExitSandboxError},
		{"resolve", ResolveFailed(cause), ExitResolveError},
		{"validation", ValidationError("missing argument"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestUnsupportedPlatform_Message(t *testing.T) {
	err := UnsupportedPlatform("windows")
	if !strings.Contains(err.Message, `"windows"`) {
		t.Errorf("Message = %q, should name the platform", err.Message)
	}
}

func TestSandboxFailed_Message(t *testing.T) {
	err := SandboxFailed("cleanup", fmt.Errorf("permission denied"))
	if err.Message != "sandbox cleanup failed" {
		t.Errorf("Message = %q, want %q", err.Message, "sandbox cleanup failed")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "ProvisionError",
			err:      UnsupportedPlatform("aix"),
			wantCode: ExitUnsupportedPlatform,
		},
		{
			name:     "wrapped ProvisionError",
			err:      fmt.Errorf("outer: %w", ConfigError("no manifests", nil)),
			wantCode: ExitConfigError,
		},
		{
			name:     "regular error",
			err:      fmt.Errorf("some error"),
			wantCode: ExitGeneralError,
		},
		{
			name:     "nil error",
			err:      nil,
			wantCode: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.wantCode {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	root := fmt.Errorf("root cause")
	middle := Wrap(ExitConfigError, "config error", root)
	outer := fmt.Errorf("operation failed: %w", middle)

	if !errors.Is(outer, root) {
		t.Error("errors.Is should find root cause")
	}

	var provErr *ProvisionError
	if !As(outer, &provErr) {
		t.Fatal("As should find ProvisionError")
	}

	if provErr.Code != ExitConfigError {
		t.Errorf("Code = %d, want %d", provErr.Code, ExitConfigError)
	}
}
