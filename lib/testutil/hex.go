// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"strings"
)

// Hex decodes a whitespace-separated hex string into bytes. Fails the
// test if the string is not valid hex.
//
//	input := testutil.Hex(t, "F4 90 80 80")
func Hex(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, s string) []byte {
	t.Helper()
	decoded, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		t.Fatalf("testutil.Hex(%q): %v", s, err)
	}
	return decoded
}

// Concat returns the concatenation of parts in a new slice.
func Concat(parts ...[]byte) []byte {
	var result []byte
	for _, part := range parts {
		result = append(result, part...)
	}
	return result
}
