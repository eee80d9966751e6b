// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package utf8b

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

func TestEscapeKnownValues(t *testing.T) {
	tests := []struct {
		input byte
		want  [EscapeLen]byte
	}{
		{0x80, [EscapeLen]byte{0xED, 0xB2, 0x80}},
		{0xBF, [EscapeLen]byte{0xED, 0xB2, 0xBF}},
		{0xC0, [EscapeLen]byte{0xED, 0xB3, 0x80}},
		{0xC2, [EscapeLen]byte{0xED, 0xB3, 0x82}},
		{0xF4, [EscapeLen]byte{0xED, 0xB3, 0xB4}},
		{0xFF, [EscapeLen]byte{0xED, 0xB3, 0xBF}},
	}
	for _, test := range tests {
		if got := Escape(test.input); got != test.want {
			t.Errorf("Escape(%#02x) = % X, want % X", test.input, got, test.want)
		}
	}
}

func TestEscapeMatchesCodePoint(t *testing.T) {
	// The escape is the generic three-byte UTF-8 bit layout of
	// U+DC00+b. utf8.EncodeRune refuses surrogates, so build it by hand.
	for b := 0x80; b <= 0xFF; b++ {
		code := 0xDC00 + b
		want := [EscapeLen]byte{
			byte(0xE0 | code>>12),
			byte(0x80 | (code>>6)&0x3F),
			byte(0x80 | code&0x3F),
		}
		if got := Escape(byte(b)); got != want {
			t.Errorf("Escape(%#02x) = % X, want % X", b, got, want)
		}
	}
}

func TestEscapeIsInjective(t *testing.T) {
	seen := make(map[[EscapeLen]byte]byte)
	for b := 0x80; b <= 0xFF; b++ {
		escaped := Escape(byte(b))
		if previous, exists := seen[escaped]; exists {
			t.Fatalf("Escape(%#02x) collides with Escape(%#02x)", b, previous)
		}
		seen[escaped] = byte(b)
	}
}

func TestEscapeIsNeverValidUTF8(t *testing.T) {
	for b := 0x80; b <= 0xFF; b++ {
		escaped := Escape(byte(b))
		if utf8.Valid(escaped[:]) {
			t.Errorf("Escape(%#02x) = % X is well-formed UTF-8; escapes must be distinguishable", b, escaped)
		}
	}
}

func TestDecodeEscapeRoundTrip(t *testing.T) {
	for b := 0x80; b <= 0xFF; b++ {
		escaped := Escape(byte(b))
		got, ok := DecodeEscape(escaped[:])
		if !ok {
			t.Fatalf("DecodeEscape(% X) not recognized", escaped)
		}
		if got != byte(b) {
			t.Errorf("DecodeEscape(Escape(%#02x)) = %#02x", b, got)
		}
	}
}

func TestDecodeEscapeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"short", []byte{0xED, 0xB2}},
		{"wrong lead", []byte{0xEC, 0xB2, 0x80}},
		{"ascii range escape", []byte{0xED, 0xB1, 0xBF}},
		{"high surrogate", []byte{0xED, 0xA0, 0x80}},
		{"bad continuation", []byte{0xED, 0xB2, 0x41}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if b, ok := DecodeEscape(test.input); ok {
				t.Errorf("DecodeEscape(% X) = %#02x, true; want not recognized", test.input, b)
			}
		})
	}
}

func TestAppendEscape(t *testing.T) {
	got := AppendEscape([]byte("ab"), 0x80)
	want := []byte{'a', 'b', 0xED, 0xB2, 0x80}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendEscape = % X, want % X", got, want)
	}
}

func TestUnescape(t *testing.T) {
	var escaped []byte
	escaped = append(escaped, "héllo "...)
	escaped = AppendEscape(escaped, 0xFF)
	escaped = append(escaped, '!')
	escaped = AppendEscape(escaped, 0x80)
	escaped = AppendEscape(escaped, 0xC2)

	got := Unescape([]byte("prefix:"), escaped)
	want := append([]byte("prefix:héllo \xff!"), 0x80, 0xC2)
	if !bytes.Equal(got, want) {
		t.Errorf("Unescape = %q, want %q", got, want)
	}
	if count := Count(escaped); count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}
}

func TestUnescapeLeavesNonEscapesAlone(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("plain ascii"),
		[]byte("\xed\x9f\xbf"), // U+D7FF, a genuine ED sequence
		[]byte("\xed\xb2"),     // truncated escape
		[]byte("\xed"),
	}
	for _, input := range inputs {
		if got := Unescape(nil, input); !bytes.Equal(got, input) {
			t.Errorf("Unescape(% X) = % X, want unchanged", input, got)
		}
	}
}

func TestUnescaperMatchesUnescapeAcrossChunks(t *testing.T) {
	var escaped []byte
	for b := 0x80; b <= 0xFF; b++ {
		escaped = append(escaped, 'x')
		escaped = AppendEscape(escaped, byte(b))
	}
	escaped = append(escaped, "\xed\x9f\xbf tail \xed"...)
	want := Unescape(nil, escaped)

	// OneByteReader forces every escape to straddle Transform calls.
	reader := transform.NewReader(iotest.OneByteReader(bytes.NewReader(escaped)), Unescaper{})
	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("streamed Unescape differs:\n got % X\nwant % X", got, want)
	}
}

func TestUnescaperShortDst(t *testing.T) {
	escaped := AppendEscape([]byte("ab"), 0x90)
	dst := make([]byte, 2)
	nDst, nSrc, err := Unescaper{}.Transform(dst, escaped, true)
	if err != transform.ErrShortDst {
		t.Fatalf("err = %v, want ErrShortDst", err)
	}
	if nDst != 2 || nSrc != 2 {
		t.Errorf("nDst, nSrc = %d, %d; want 2, 2", nDst, nSrc)
	}
}
