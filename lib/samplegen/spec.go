// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package samplegen

import (
	"errors"
	"fmt"
)

// Generator kinds accepted in Spec.Kind.
const (
	KindBytes      = "bytes"
	KindUTF8       = "utf8"
	KindUTF8Substr = "utf8_substr"
	KindMix        = "mix"
)

// Spec describes a generator tree in configuration files:
//
//	kind: mix
//	parts:
//	  - kind: utf8
//	    priority: 5
//	  - kind: bytes
//	    lo: 0x80
//	    hi: 0xc2
//
// Zero-valued bounds select the kind's defaults: the full byte range
// for bytes, 0..U+10FFFF for utf8 and utf8_substr, and a cut range of
// -4..4 for utf8_substr.
type Spec struct {
	Kind     string  `yaml:"kind" json:"kind"`
	Lo       uint32  `yaml:"lo,omitempty" json:"lo,omitempty"`
	Hi       uint32  `yaml:"hi,omitempty" json:"hi,omitempty"`
	CutLo    int     `yaml:"cut_lo,omitempty" json:"cut_lo,omitempty"`
	CutHi    int     `yaml:"cut_hi,omitempty" json:"cut_hi,omitempty"`
	Priority float64 `yaml:"priority,omitempty" json:"priority,omitempty"`
	Parts    []Spec  `yaml:"parts,omitempty" json:"parts,omitempty"`
}

// Sample is a named generator spec.
type Sample struct {
	Name      string `yaml:"name" json:"name"`
	Generator Spec   `yaml:"generator" json:"generator"`
}

// Build turns the sample description into a Generator.
func (s Spec) Build() (Generator, error) {
	g, err := s.build()
	if err != nil {
		return nil, err
	}
	if s.Priority != 0 {
		g = Priority(s.Priority, g)
	}
	return g, nil
}

func (s Spec) build() (Generator, error) {
	switch s.Kind {
	case KindBytes:
		high := s.Hi
		if high == 0 {
			high = 0xFF
		}
		if high > 0xFF {
			return nil, fmt.Errorf("bytes: hi %#x exceeds 0xff", high)
		}
		return Bytes(byte(s.Lo), byte(high)), nil

	case KindUTF8:
		return UTF8(s.Lo, s.codeHigh()), nil

	case KindUTF8Substr:
		cutLow, cutHigh := s.CutLo, s.CutHi
		if cutLow == 0 && cutHigh == 0 {
			cutLow, cutHigh = -4, 4
		}
		g, err := UTF8Substr(cutLow, cutHigh, s.Lo, s.codeHigh())
		if err != nil {
			return nil, fmt.Errorf("utf8_substr: %w", err)
		}
		return g, nil

	case KindMix:
		if len(s.Parts) == 0 {
			return nil, errors.New("mix: no parts")
		}
		parts := make([]Generator, 0, len(s.Parts))
		for index, part := range s.Parts {
			g, err := part.Build()
			if err != nil {
				return nil, fmt.Errorf("mix part %d: %w", index, err)
			}
			parts = append(parts, g)
		}
		return Mix(parts...), nil

	case "":
		return nil, errors.New("generator kind is required")

	default:
		return nil, fmt.Errorf("unknown generator kind %q (want %s, %s, %s or %s)",
			s.Kind, KindBytes, KindUTF8, KindUTF8Substr, KindMix)
	}
}

func (s Spec) codeHigh() uint32 {
	if s.Hi == 0 {
		return 0x10FFFF
	}
	return s.Hi
}

// Defaults returns the stock benchmark samples: uniformly random
// bytes, ASCII, short and full-range well-formed Unicode, and three
// adversarial mixes heavy in malformed input.
func Defaults() []Sample {
	return []Sample{
		{Name: "random", Generator: Spec{Kind: KindBytes}},
		{Name: "ascii", Generator: Spec{Kind: KindBytes, Hi: 0x7F}},
		{Name: "unicode-small", Generator: Spec{Kind: KindUTF8, Hi: 0x7FF}},
		{Name: "unicode-full", Generator: Spec{Kind: KindUTF8}},
		{Name: "evil-mix", Generator: Spec{Kind: KindMix, Parts: []Spec{
			{Kind: KindUTF8, Priority: 5},
			{Kind: KindBytes, Lo: 0x80, Hi: 0xC2},
			{Kind: KindBytes, Lo: 0xF5, Hi: 0xFF},
			{Kind: KindUTF8, Lo: 0xD800, Hi: 0xDFFF},
			{Kind: KindUTF8, Lo: 0x110000, Hi: 0x1FFFFF},
			{Kind: KindUTF8Substr},
		}}},
		{Name: "evil-short", Generator: Spec{Kind: KindMix, Parts: []Spec{
			{Kind: KindBytes, Lo: 0x80, Hi: 0xC2},
			{Kind: KindBytes, Lo: 0xF5, Hi: 0xFF},
		}}},
		{Name: "evil-long", Generator: Spec{Kind: KindUTF8Substr, CutLo: -1, CutHi: -1, Lo: 0x10000, Hi: 0x10FFFF}},
	}
}
