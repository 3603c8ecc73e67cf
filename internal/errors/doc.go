// Package errors provides typed errors with exit codes for kitchen-puppet.
//
// # Error Types
//
// ProvisionError is the base error type that wraps an error with an exit code:
//
//	type ProvisionError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess             = 0  // Success
//	ExitGeneralError        = 1  // General/unknown errors
//	ExitConfigError         = 2  // Configuration could not be resolved
//	ExitUnsupportedPlatform = 3  // puppet_platform outside the known families
//	ExitSandboxError        = 4  // Local sandbox staging or cleanup failed
//	ExitResolveError        = 5  // librarian-puppet failed
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
