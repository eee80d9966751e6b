// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package samplegen

// MaxCode is the largest value AppendCode can encode (six-byte form).
const MaxCode = 0x7FFFFFFF

// AppendCode appends the UTF-8 bit pattern for code using width bytes
// and returns the extended slice. A width of 0 picks the shortest
// form. Unlike utf8.AppendRune, nothing is rejected: surrogates, code
// points above U+10FFFF (up to the historical six-byte form) and
// overlong encodings (an explicit width larger than needed) are all
// produced as asked. Bits of code that do not fit in width are
// dropped.
func AppendCode(dst []byte, code uint32, width int) []byte {
	if width == 0 {
		width = Width(code)
	}
	if width <= 1 {
		return append(dst, byte(code&0x7F))
	}
	width = min(width, 6)

	marker := byte(0xFF << (8 - width))
	payloadMask := ^marker >> 1
	dst = append(dst, marker|payloadMask&byte(code>>(6*(width-1))))
	for shift := 6 * (width - 2); shift >= 0; shift -= 6 {
		dst = append(dst, 0x80|byte(code>>shift)&0x3F)
	}
	return dst
}

// Width returns the number of bytes in the shortest encoding of code.
func Width(code uint32) int {
	switch {
	case code < 0x80:
		return 1
	case code < 0x800:
		return 2
	case code < 0x10000:
		return 3
	case code < 0x200000:
		return 4
	case code < 0x4000000:
		return 5
	default:
		return 6
	}
}
