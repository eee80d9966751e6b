// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bureau-foundation/utf8fix/lib/codec"
)

// Report is the outcome of a benchmark run.
type Report struct {
	RunID   string       `json:"run_id"`
	Started time.Time    `json:"started"`
	Runs    int          `json:"runs"`
	Samples []SampleInfo `json:"samples"`
	Results []Result     `json:"results"`
}

// Result is the timing of one contestant on one sample.
type Result struct {
	Contestant string        `json:"contestant"`
	Sample     string        `json:"sample"`
	Size       int           `json:"size"`
	OutputSize int           `json:"output_size"`
	Lossy      bool          `json:"lossy,omitempty"`
	Average    time.Duration `json:"average_ns"`
	Min        time.Duration `json:"min_ns"`
	Max        time.Duration `json:"max_ns"`
}

// Throughput returns input bytes per second at the average timing,
// or 0 when the average is zero.
func (result Result) Throughput() float64 {
	if result.Average <= 0 {
		return 0
	}
	return float64(result.Size) / result.Average.Seconds()
}

// Lookup returns the result for a contestant and sample.
func (report *Report) Lookup(contestant, sample string) (Result, bool) {
	for _, result := range report.Results {
		if result.Contestant == contestant && result.Sample == sample {
			return result, true
		}
	}
	return Result{}, false
}

// contestantNames returns contestant names in first-seen order.
func (report *Report) contestantNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, result := range report.Results {
		if !seen[result.Contestant] {
			seen[result.Contestant] = true
			names = append(names, result.Contestant)
		}
	}
	return names
}

func (report *Report) lossyContestants() map[string]bool {
	lossy := make(map[string]bool)
	for _, result := range report.Results {
		if result.Lossy {
			lossy[result.Contestant] = true
		}
	}
	return lossy
}

// WriteJSON writes the report as indented JSON.
func (report *Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding report as JSON: %w", err)
	}
	return nil
}

// WriteCBOR writes the report as deterministic CBOR.
func (report *Report) WriteCBOR(w io.Writer) error {
	if err := codec.NewEncoder(w).Encode(report); err != nil {
		return fmt.Errorf("encoding report as CBOR: %w", err)
	}
	return nil
}

// ReadCBOR decodes a report written by WriteCBOR.
func ReadCBOR(r io.Reader) (*Report, error) {
	var report Report
	if err := codec.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("decoding CBOR report: %w", err)
	}
	return &report, nil
}
