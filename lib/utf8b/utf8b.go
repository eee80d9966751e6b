// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package utf8b

// EscapeLen is the size of one escape sequence in bytes.
const EscapeLen = 3

const (
	// escapeBase is the code point that byte 0x00 would map to.
	escapeBase = 0xDC00

	// escapeLead is the first byte of every U+DC00..U+DCFF encoding.
	escapeLead = 0xED

	// Second bytes of escapes for 0x80..0xBF and 0xC0..0xFF.
	escapeMidLow  = 0xB2
	escapeMidHigh = 0xB3
)

// Escape returns the UTF-8 encoding of U+DC00+b.
func Escape(b byte) [EscapeLen]byte {
	code := rune(escapeBase) + rune(b)
	return [EscapeLen]byte{
		0xE0 | byte(code>>12),
		0x80 | byte(code>>6)&0x3F,
		0x80 | byte(code)&0x3F,
	}
}

// AppendEscape appends the escape for b to dst and returns the
// extended slice.
func AppendEscape(dst []byte, b byte) []byte {
	escaped := Escape(b)
	return append(dst, escaped[:]...)
}

// DecodeEscape reports whether p begins with an escape for a byte in
// 0x80..0xFF and, if so, returns that byte. Escapes for 0x00..0x7F are
// never produced by the repair engine and are not recognized, so ASCII
// round-trips untouched.
func DecodeEscape(p []byte) (byte, bool) {
	if len(p) < EscapeLen || p[0] != escapeLead {
		return 0, false
	}
	if p[1] != escapeMidLow && p[1] != escapeMidHigh {
		return 0, false
	}
	if p[2]&0xC0 != 0x80 {
		return 0, false
	}
	return (p[1]&0x03)<<6 | p[2]&0x3F, true
}

// Unescape appends src to dst with every escape sequence replaced by
// the byte it stands for, and returns the extended slice. Everything
// else is copied verbatim. For any input x,
//
//	Unescape(nil, fixutf8.RepairAllocate(x))
//
// equals x.
func Unescape(dst, src []byte) []byte {
	start := 0
	for i := 0; i+EscapeLen <= len(src); {
		if src[i] != escapeLead {
			i++
			continue
		}
		b, ok := DecodeEscape(src[i:])
		if !ok {
			i++
			continue
		}
		dst = append(dst, src[start:i]...)
		dst = append(dst, b)
		i += EscapeLen
		start = i
	}
	return append(dst, src[start:]...)
}

// Count returns the number of escape sequences in p.
func Count(p []byte) int {
	count := 0
	for i := 0; i+EscapeLen <= len(p); {
		if _, ok := DecodeEscape(p[i:]); ok {
			count++
			i += EscapeLen
			continue
		}
		i++
	}
	return count
}
