// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so scripts can tell bad
// invocations from failures.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// unknown flag values, unreadable config, conflicting flags. The
	// caller should fix the invocation and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryInternal indicates an unexpected error: I/O failures,
	// corrupt compressed input, a verification mismatch.
	CategoryInternal ErrorCategory = "internal"
)

// Exit codes for each category.
const (
	exitInternal   = 1
	exitValidation = 2
)

// ToolError is a categorized error returned by commands. It wraps an
// inner error, preserving the chain for errors.Is and errors.As.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error

	// Hint is optional guidance printed after the message.
	Hint string
}

// Error returns the underlying message, followed by the hint when one
// is set.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// ExitCode maps the category to a process exit code: 2 for
// validation, 1 for everything else.
func (e *ToolError) ExitCode() int {
	if e.Category == CategoryValidation {
		return exitValidation
	}
	return exitInternal
}

// WithHint sets the hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
