// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output, or to have nothing to say: utf8fix --check exits 1 on
// invalid input without printing anything.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Exit reports err on w and returns the process exit code. ExitError
// is silent; every other error is printed with an "error: " prefix.
// A nil error yields 0.
func Exit(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}

	fmt.Fprintf(w, "error: %v\n", err)

	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return exitInternal
}
