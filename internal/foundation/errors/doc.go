// Package errors provides the classified error primitives used across profilekit.
//
// Every failure that crosses a package boundary is a ClassifiedError carrying a
// category (what kind of thing went wrong), a severity (how much of the run it
// affects) and structured context for logging. The CLIErrorAdapter turns those
// into exit codes and user-facing messages.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryUpstream, "GitHub user lookup failed").
//		WithSeverity(errors.SeverityWarning).
//		WithContext("url", userURL).
//		WithCause(originalErr).
//		Build()
package errors
