// Package logging provides logging utilities for kitchen-puppet.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Styled status lines for end users (via lipgloss)
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("staging modules", "from", modulesPath)
//	logging.Warn("manifest not found", "manifest", name)
//
// # User Output
//
//	logging.UserInfo("Staging sandbox for %s...", instance)
//	logging.UserSuccess("Sandbox staged at %s", path)
//	logging.UserWarning("puppet_version %q is not a semantic version", v)
//	logging.UserError("Failed to stage sandbox: %v", err)
//
// UserInfo and UserSuccess write to Stdout, UserWarning and UserError to
// Stderr. Both writers are package variables so tests can capture them.
package logging
