// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// RequireBytes fails the test if got and want differ, printing a hex
// dump of both and the offset of the first differing byte.
//
//	testutil.RequireBytes(t, output, expected, "repairing %q", input)
func RequireBytes(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, got, want []byte, msgAndArgs ...any) {
	t.Helper()
	if bytes.Equal(got, want) {
		return
	}
	t.Fatalf("%s: output differs at offset %d (got %d bytes, want %d)\ngot:\n%swant:\n%s",
		formatMessage(msgAndArgs), firstDifference(got, want), len(got), len(want),
		hex.Dump(got), hex.Dump(want))
}

// firstDifference returns the index of the first byte at which a and
// b differ, or the shorter length if one is a prefix of the other.
func firstDifference(a, b []byte) int {
	limit := min(len(a), len(b))
	for i := 0; i < limit; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return limit
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
