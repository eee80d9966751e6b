// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixutf8

import "github.com/bureau-foundation/utf8fix/lib/utf8b"

// stepKind tags the outcome of classifying the bytes at the cursor.
type stepKind uint8

const (
	// stepValid: a complete, well-formed sequence of step.size bytes.
	stepValid stepKind = iota

	// stepInvalid: the byte at the cursor must be escaped on its own.
	stepInvalid

	// stepInvalidPair: a three- or four-byte lead and its in-range
	// first continuation byte, followed by a missing or malformed
	// continuation. The lead is invalid, and the first continuation
	// would be classified as a lone continuation byte on the next
	// iteration, so both are escaped in one step.
	stepInvalidPair
)

// step is the classification of the window at the cursor.
type step struct {
	kind stepKind
	size int // sequence length for stepValid
}

// advance is how many input bytes the step consumes.
func (s step) advance() int {
	switch s.kind {
	case stepValid:
		return s.size
	case stepInvalidPair:
		return 2
	default:
		return 1
	}
}

// outputSize is how many bytes the step writes.
func (s step) outputSize() int {
	switch s.kind {
	case stepValid:
		return s.size
	case stepInvalidPair:
		return 2 * utf8b.EscapeLen
	default:
		return utf8b.EscapeLen
	}
}

var (
	invalid     = step{kind: stepInvalid}
	invalidPair = step{kind: stepInvalidPair}
)

// isContinuation reports whether c has the form 10xxxxxx.
func isContinuation(c byte) bool { return c&0xC0 == 0x80 }

// leadShape describes what a lead byte requires of the bytes after it.
type leadShape struct {
	// size is the sequence length, or 0 for a byte that can never
	// start a sequence.
	size uint8

	// low and high bound the second byte. They are 0x80 and 0xBF for
	// leads without an overlong, surrogate or maximum restriction.
	low, high byte
}

// leads is indexed by the lead byte.
var leads = func() (table [256]leadShape) {
	for c := 0x00; c <= 0x7F; c++ {
		table[c] = leadShape{size: 1}
	}
	// 0x80..0xC1 stay zero: lone continuation bytes and the always
	// overlong C0/C1 leads.
	for c := 0xC2; c <= 0xDF; c++ {
		table[c] = leadShape{size: 2, low: 0x80, high: 0xBF}
	}
	for c := 0xE1; c <= 0xEF; c++ {
		table[c] = leadShape{size: 3, low: 0x80, high: 0xBF}
	}
	table[0xE0] = leadShape{size: 3, low: 0xA0, high: 0xBF} // overlong
	table[0xED] = leadShape{size: 3, low: 0x80, high: 0x9F} // surrogates
	for c := 0xF1; c <= 0xF3; c++ {
		table[c] = leadShape{size: 4, low: 0x80, high: 0xBF}
	}
	table[0xF0] = leadShape{size: 4, low: 0x90, high: 0xBF} // overlong
	table[0xF4] = leadShape{size: 4, low: 0x80, high: 0x8F} // > U+10FFFF
	// 0xF5..0xFF stay zero.
	return table
}()

// classify examines the sequence starting at window[0]. Only
// window[0:4] is ever read, and never past len(window). The window
// must not be empty.
func classify(window []byte) step {
	lead := leads[window[0]]
	switch lead.size {
	case 0:
		return invalid
	case 1:
		return step{kind: stepValid, size: 1}
	}

	if len(window) < 2 || window[1] < lead.low || window[1] > lead.high {
		return invalid
	}
	if lead.size == 2 {
		return step{kind: stepValid, size: 2}
	}

	// The lead and its first continuation are individually consistent;
	// any failure from here on orphans that continuation byte.
	size := int(lead.size)
	if len(window) < size {
		return invalidPair
	}
	for i := 2; i < size; i++ {
		if !isContinuation(window[i]) {
			return invalidPair
		}
	}
	return step{kind: stepValid, size: size}
}

// incompleteTail returns the index at which src ends with a sequence
// that is well-formed so far but cut short, or len(src) if there is no
// such tail. Bytes from that index on may still become valid when more
// input arrives.
func incompleteTail(src []byte) int {
	for back := 1; back <= 3 && back <= len(src); back++ {
		start := len(src) - back
		c := src[start]
		if isContinuation(c) {
			continue
		}
		lead := leads[c]
		if int(lead.size) <= back {
			return len(src)
		}
		// A lone lead byte is always a viable prefix. With a second
		// byte present it must pass the lead's range check; any third
		// byte must be a continuation.
		if back >= 2 && (src[start+1] < lead.low || src[start+1] > lead.high) {
			return len(src)
		}
		if back == 3 && !isContinuation(src[start+2]) {
			return len(src)
		}
		return start
	}
	return len(src)
}
