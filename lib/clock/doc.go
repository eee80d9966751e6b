// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for measurements.
//
// The benchmark runner reads the time before and after every timed
// call. In production, Real() provides the standard library clock with
// its monotonic reading. In tests, Fake() provides a clock that moves
// only when told to, so reported timings are exact and repeatable:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	c.SetStep(time.Millisecond) // every bracketed call measures 1ms
//	runner := bench.Runner{Clock: c, Runs: 5}
package clock
