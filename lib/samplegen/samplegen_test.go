// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package samplegen

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"unicode/utf8"
)

func TestAppendCodeShortestForm(t *testing.T) {
	tests := []struct {
		code uint32
		want string
	}{
		{'$', "$"},
		{0x7F, "\x7f"},
		{0x80, "\xc2\x80"},
		{0xA2, "\xc2\xa2"},
		{0x7FF, "\xdf\xbf"},
		{0x800, "\xe0\xa0\x80"},
		{0x20AC, "\xe2\x82\xac"},
		{0xFFFF, "\xef\xbf\xbf"},
		{0x10348, "\xf0\x90\x8d\x88"},
		{0x10FFFF, "\xf4\x8f\xbf\xbf"},
		// Not valid UTF-8, but the raw bit pattern is still defined.
		{0xD800, "\xed\xa0\x80"},
		{0x110000, "\xf4\x90\x80\x80"},
		{0x200000, "\xf8\x88\x80\x80\x80"},
		{0x4000000, "\xfc\x84\x80\x80\x80\x80"},
	}
	for _, test := range tests {
		if got := string(AppendCode(nil, test.code, 0)); got != test.want {
			t.Errorf("AppendCode(%#x) = % X, want % X", test.code, got, test.want)
		}
	}
}

func TestAppendCodeOverlong(t *testing.T) {
	tests := []struct {
		code  uint32
		width int
		want  string
	}{
		{0, 2, "\xc0\x80"},
		{0x7F, 2, "\xc1\xbf"},
		{0x7FF, 3, "\xe0\x9f\xbf"},
		{0xFFFF, 4, "\xf0\x8f\xbf\xbf"},
		{0x20AC, 4, "\xf0\x82\x82\xac"},
	}
	for _, test := range tests {
		if got := string(AppendCode(nil, test.code, test.width)); got != test.want {
			t.Errorf("AppendCode(%#x, %d) = % X, want % X", test.code, test.width, got, test.want)
		}
	}
}

func TestAppendCodeMatchesStandardLibrary(t *testing.T) {
	for _, code := range []uint32{0, 0x41, 0x80, 0x3A9, 0x800, 0xD7FF, 0xE000, 0xFFFD, 0x10000, 0x10FFFF} {
		want := utf8.AppendRune(nil, rune(code))
		if got := AppendCode(nil, code, 0); !bytes.Equal(got, want) {
			t.Errorf("AppendCode(%#x) = % X, utf8.AppendRune = % X", code, got, want)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, sample := range Defaults() {
		g, err := sample.Generator.Build()
		if err != nil {
			t.Fatalf("%s: Build: %v", sample.Name, err)
		}
		first := Generate(4096, 7, g)
		second := Generate(4096, 7, g)
		if !bytes.Equal(first, second) {
			t.Errorf("%s: same seed produced different samples", sample.Name)
		}
		if len(first) < 4096 || len(first) > 4096+6 {
			t.Errorf("%s: len = %d, want 4096..4102", sample.Name, len(first))
		}
	}
}

func TestBytesRange(t *testing.T) {
	sample := Generate(10000, 1, Bytes(0x80, 0xC2))
	for i, b := range sample {
		if b < 0x80 || b > 0xC2 {
			t.Fatalf("byte %d = %#02x outside [0x80, 0xc2]", i, b)
		}
	}
}

func TestASCIIAndSmallUnicodeAreValid(t *testing.T) {
	for _, g := range []Generator{Bytes(0, 0x7F), UTF8(0, 0x7FF), UTF8(0xE000, 0xFFFF)} {
		if sample := Generate(10000, 3, g); !utf8.Valid(sample) {
			t.Errorf("%T sample is not valid UTF-8", g)
		}
	}
}

func TestUTF8SubstrCutsTail(t *testing.T) {
	g := MustUTF8Substr(-1, -1, 0x10000, 0x10FFFF)
	rng := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		unit := g.Next(nil, rng)
		if len(unit) != 3 {
			t.Fatalf("unit % X has %d bytes, want 3", unit, len(unit))
		}
		if unit[0] < 0xF0 || unit[0] > 0xF4 {
			t.Fatalf("unit % X lost its lead byte", unit)
		}
	}
}

func TestUTF8SubstrCutsHead(t *testing.T) {
	g := MustUTF8Substr(2, 2, 0x800, 0xFFFF)
	rng := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		unit := g.Next([]byte("keep"), rng)
		if string(unit[:4]) != "keep" {
			t.Fatalf("existing prefix clobbered: %q", unit)
		}
		if len(unit) != 5 || unit[4]&0xC0 != 0x80 {
			t.Fatalf("unit % X: want prefix plus one continuation byte", unit[4:])
		}
	}
}

func TestUTF8SubstrRejectsEmptyCut(t *testing.T) {
	if _, err := UTF8Substr(0, 0, 0, 0x10FFFF); err == nil {
		t.Fatal("UTF8Substr(0, 0) should fail")
	}
}

func TestMixHonorsPriority(t *testing.T) {
	g := Mix(Priority(9, Bytes('a', 'a')), Bytes('b', 'b'))
	sample := Generate(20000, 11, g)
	countA := bytes.Count(sample, []byte("a"))
	ratio := float64(countA) / float64(len(sample))
	if ratio < 0.85 || ratio > 0.95 {
		t.Errorf("share of weight-9 part = %.3f, want about 0.9", ratio)
	}
}

func TestEmptyMixTerminates(t *testing.T) {
	if sample := Generate(100, 1, Mix()); len(sample) != 0 {
		t.Errorf("empty mix produced %d bytes", len(sample))
	}
}

func TestSpecBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"missing kind", Spec{}},
		{"unknown kind", Spec{Kind: "latin1"}},
		{"bytes hi too large", Spec{Kind: KindBytes, Hi: 0x100}},
		{"empty mix", Spec{Kind: KindMix}},
		{"bad mix part", Spec{Kind: KindMix, Parts: []Spec{{Kind: "nope"}}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := test.spec.Build(); err == nil {
				t.Error("Build should fail")
			}
		})
	}
}

func TestDefaultsNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, sample := range Defaults() {
		if seen[sample.Name] {
			t.Errorf("duplicate default sample %q", sample.Name)
		}
		seen[sample.Name] = true
	}
	if len(seen) != 7 {
		t.Errorf("got %d default samples, want 7", len(seen))
	}
}
