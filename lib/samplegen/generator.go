// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package samplegen

import (
	"fmt"
	"math/rand/v2"
)

// Generator appends one unit of sample data per call.
type Generator interface {
	Next(dst []byte, rng *rand.Rand) []byte
}

// Generate returns at least size bytes produced by repeated calls to
// g, seeded deterministically. The last unit is not cut, so the result
// may exceed size by up to one unit.
func Generate(size int, seed uint64, g Generator) []byte {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	sample := make([]byte, 0, size+8)
	for len(sample) < size {
		before := len(sample)
		sample = g.Next(sample, rng)
		if len(sample) == before {
			// An empty Mix produces nothing.
			break
		}
	}
	return sample
}

type byteRange struct {
	low, high byte
}

// Bytes generates single bytes uniformly distributed in [low, high].
func Bytes(low, high byte) Generator {
	if low > high {
		low, high = high, low
	}
	return byteRange{low: low, high: high}
}

func (g byteRange) Next(dst []byte, rng *rand.Rand) []byte {
	return append(dst, g.low+byte(rng.IntN(int(g.high-g.low)+1)))
}

type codeRange struct {
	low, high uint32
}

// UTF8 generates the shortest-form encoding of code points uniformly
// distributed in [low, high]. Ranges that include surrogates or values
// above U+10FFFF produce malformed UTF-8, as intended.
func UTF8(low, high uint32) Generator {
	if low > high {
		low, high = high, low
	}
	return codeRange{low: min(low, MaxCode), high: min(high, MaxCode)}
}

func (g codeRange) code(rng *rand.Rand) uint32 {
	return g.low + rng.Uint32N(g.high-g.low+1)
}

func (g codeRange) Next(dst []byte, rng *rand.Rand) []byte {
	return AppendCode(dst, g.code(rng), 0)
}

type truncated struct {
	codes          codeRange
	cutLow, cutHigh int
}

// UTF8Substr generates encodings of code points in [low, high] with
// bytes cut off. The cut is drawn from [cutLow, cutHigh] excluding 0:
// a negative cut removes that many bytes from the tail, a positive one
// from the head. At least one byte of every encoding is kept, so
// single-byte encodings pass through whole.
func UTF8Substr(cutLow, cutHigh int, low, high uint32) (Generator, error) {
	if cutLow > cutHigh {
		cutLow, cutHigh = cutHigh, cutLow
	}
	if cutLow == 0 && cutHigh == 0 {
		return nil, fmt.Errorf("cut range [0, 0] never cuts anything")
	}
	codes := UTF8(low, high).(codeRange)
	return truncated{codes: codes, cutLow: cutLow, cutHigh: cutHigh}, nil
}

// MustUTF8Substr is UTF8Substr for constant arguments. Panics on an
// empty cut range.
func MustUTF8Substr(cutLow, cutHigh int, low, high uint32) Generator {
	g, err := UTF8Substr(cutLow, cutHigh, low, high)
	if err != nil {
		panic("samplegen: " + err.Error())
	}
	return g
}

func (g truncated) Next(dst []byte, rng *rand.Rand) []byte {
	start := len(dst)
	dst = g.codes.Next(dst, rng)
	length := len(dst) - start

	cut := 0
	for cut == 0 {
		cut = g.cutLow + rng.IntN(g.cutHigh-g.cutLow+1)
	}
	if cut < 0 {
		return dst[:len(dst)-min(-cut, length-1)]
	}
	removed := min(cut, length-1)
	copy(dst[start:], dst[start+removed:])
	return dst[:len(dst)-removed]
}

type weighted struct {
	Generator
	weight float64
}

// Priority assigns a selection weight to g for use in Mix. Generators
// passed to Mix without Priority have weight 1.
func Priority(weight float64, g Generator) Generator {
	return weighted{Generator: g, weight: weight}
}

type mixture struct {
	parts []weighted
	total float64
}

// Mix picks one of parts per unit, with probability proportional to
// its weight.
func Mix(parts ...Generator) Generator {
	var result mixture
	for _, part := range parts {
		entry, ok := part.(weighted)
		if !ok {
			entry = weighted{Generator: part, weight: 1}
		}
		if entry.weight <= 0 {
			continue
		}
		result.parts = append(result.parts, entry)
		result.total += entry.weight
	}
	return result
}

func (g mixture) Next(dst []byte, rng *rand.Rand) []byte {
	if len(g.parts) == 0 {
		return dst
	}
	selection := rng.Float64() * g.total
	for _, part := range g.parts {
		if selection < part.weight {
			return part.Next(dst, rng)
		}
		selection -= part.weight
	}
	return g.parts[len(g.parts)-1].Next(dst, rng)
}
