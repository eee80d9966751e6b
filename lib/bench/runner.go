// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/utf8fix/lib/clock"
	"github.com/bureau-foundation/utf8fix/lib/utf8b"
)

// Runner times contestants against inputs.
type Runner struct {
	// Clock brackets every timed call. Nil means clock.Real().
	Clock clock.Clock

	// Runs is the number of timed calls per contestant and input.
	Runs int

	// Logger receives one debug record per measurement and an info
	// record per contestant. Nil discards.
	Logger *slog.Logger
}

func (runner Runner) clock() clock.Clock {
	if runner.Clock == nil {
		return clock.Real()
	}
	return runner.Clock
}

func (runner Runner) logger() *slog.Logger {
	if runner.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return runner.Logger
}

// MismatchError reports a contestant whose output differs from the
// baseline.
type MismatchError struct {
	Contestant string
	Sample     string

	// Offset is the first differing byte position.
	Offset int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("contestant %s on sample %s: output differs from baseline at byte %d",
		e.Contestant, e.Sample, e.Offset)
}

// Verify checks every lossless contestant against each input's
// baseline, and the baseline itself against the input: unescaping it
// must give back the original bytes.
func (runner Runner) Verify(inputs []Input, contestants []Contestant) error {
	for _, input := range inputs {
		if restored := utf8b.Unescape(nil, input.Baseline); !bytes.Equal(restored, input.Data) {
			return &MismatchError{Contestant: "baseline", Sample: input.Name, Offset: firstDifference(restored, input.Data)}
		}
		for _, contestant := range contestants {
			if contestant.Lossy {
				continue
			}
			output := contestant.Repair(input.Data)
			if !bytes.Equal(output, input.Baseline) {
				return &MismatchError{
					Contestant: contestant.Name,
					Sample:     input.Name,
					Offset:     firstDifference(output, input.Baseline),
				}
			}
		}
	}
	return nil
}

func firstDifference(a, b []byte) int {
	limit := min(len(a), len(b))
	for i := range limit {
		if a[i] != b[i] {
			return i
		}
	}
	return limit
}

// Run times every contestant on every input and returns the report.
// Cancelling ctx stops the run between measurements.
func (runner Runner) Run(ctx context.Context, inputs []Input, contestants []Contestant) (*Report, error) {
	if runner.Runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", runner.Runs)
	}
	timer := runner.clock()
	logger := runner.logger()

	report := &Report{
		RunID:   uuid.NewString(),
		Started: timer.Now(),
		Runs:    runner.Runs,
	}
	for _, input := range inputs {
		report.Samples = append(report.Samples, input.Info())
	}

	timings := make([]time.Duration, runner.Runs)
	for _, contestant := range contestants {
		for _, input := range inputs {
			outputSize := 0
			for run := range runner.Runs {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				start := timer.Now()
				output := contestant.Repair(input.Data)
				timings[run] = clock.Since(timer, start)
				outputSize = len(output)
				logger.Debug("measured",
					"contestant", contestant.Name,
					"sample", input.Name,
					"run", run,
					"elapsed", timings[run],
				)
			}

			result := summarize(timings)
			result.Contestant = contestant.Name
			result.Sample = input.Name
			result.Size = len(input.Data)
			result.OutputSize = outputSize
			result.Lossy = contestant.Lossy
			report.Results = append(report.Results, result)
		}
		logger.Info("contestant finished", "contestant", contestant.Name, "samples", len(inputs))
	}
	return report, nil
}

// summarize sorts timings in place and averages them, dropping the
// fastest and slowest when at least three were taken.
func summarize(timings []time.Duration) Result {
	slices.Sort(timings)
	result := Result{Min: timings[0], Max: timings[len(timings)-1]}

	kept := timings
	if len(kept) >= 3 {
		kept = kept[1 : len(kept)-1]
	}
	var total time.Duration
	for _, timing := range kept {
		total += timing
	}
	result.Average = total / time.Duration(len(kept))
	return result
}
