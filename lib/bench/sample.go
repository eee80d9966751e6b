// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"

	"github.com/bureau-foundation/utf8fix/lib/digest"
	"github.com/bureau-foundation/utf8fix/lib/fixutf8"
	"github.com/bureau-foundation/utf8fix/lib/samplegen"
	"github.com/bureau-foundation/utf8fix/lib/utf8b"
)

// Input is a generated sample ready for timing.
type Input struct {
	Name string
	Data []byte

	// Baseline is the fixed-buffer repair of Data that every lossless
	// contestant must reproduce.
	Baseline []byte
}

// SampleInfo describes a generated sample in a report.
type SampleInfo struct {
	Name       string        `json:"name"`
	Size       int           `json:"size"`
	OutputSize int           `json:"output_size"`
	Escaped    int           `json:"escaped"`
	Digest     digest.Digest `json:"digest"`
}

// Info summarizes the input for a report.
func (input Input) Info() SampleInfo {
	return SampleInfo{
		Name:       input.Name,
		Size:       len(input.Data),
		OutputSize: len(input.Baseline),
		Escaped:    utf8b.Count(input.Baseline),
		Digest:     digest.Sum(input.Data),
	}
}

// Prepare generates size bytes for each sample from seed. The same
// seed and sample list always yield the same inputs.
func Prepare(samples []samplegen.Sample, size int, seed uint64) ([]Input, error) {
	inputs := make([]Input, 0, len(samples))
	for _, sample := range samples {
		generator, err := sample.Generator.Build()
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", sample.Name, err)
		}
		data := samplegen.Generate(size, seed, generator)

		baseline := make([]byte, fixutf8.MaxRepairedLen(len(data)))
		written, consumed := fixutf8.RepairInto(baseline, data)
		if consumed != len(data) {
			return nil, fmt.Errorf("sample %s: baseline repair stopped at %d of %d bytes", sample.Name, consumed, len(data))
		}

		inputs = append(inputs, Input{
			Name:     sample.Name,
			Data:     data,
			Baseline: baseline[:written],
		})
	}
	return inputs, nil
}

// SelectSamples filters samples by name the way Select filters
// contestants.
func SelectSamples(samples []samplegen.Sample, names []string) (selected []samplegen.Sample, unknown []string) {
	return selectByName(samples, func(s samplegen.Sample) string { return s.Name }, names)
}
