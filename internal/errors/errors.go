package errors

import (
	"errors"
	"fmt"
)

// Exit codes for kitchen-puppet
const (
	ExitSuccess             = 0
	ExitGeneralError        = 1
	ExitConfigError         = 2
	ExitUnsupportedPlatform = 3
	ExitSandboxError        = 4
	ExitResolveError        = 5
)

// ProvisionError is the base error type for kitchen-puppet
type ProvisionError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ProvisionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ProvisionError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ProvisionError) ExitCode() int {
	return e.Code
}

// New creates a new ProvisionError
func New(code int, message string) *ProvisionError {
	return &ProvisionError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ProvisionError
func Wrap(code int, message string, cause error) *ProvisionError {
	return &ProvisionError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *ProvisionError {
	return Wrap(ExitConfigError, message, cause)
}

// UnsupportedPlatform returns an error for a puppet_platform outside the known families
func UnsupportedPlatform(platform string) *ProvisionError {
	return New(ExitUnsupportedPlatform,
		fmt.Sprintf("unsupported puppet_platform %q (must be one of debian, ubuntu, redhat, centos, fedora)", platform))
}

// SandboxFailed returns an error for sandbox staging or cleanup
func SandboxFailed(op string, cause error) *ProvisionError {
	return Wrap(ExitSandboxError, fmt.Sprintf("sandbox %s failed", op), cause)
}

// ResolveFailed returns an error for Puppetfile dependency resolution
func ResolveFailed(cause error) *ProvisionError {
	return Wrap(ExitResolveError, "puppetfile resolution failed", cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *ProvisionError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var provErr *ProvisionError
	if errors.As(err, &provErr) {
		return provErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
