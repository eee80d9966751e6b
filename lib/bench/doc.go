// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bench times the repair entry points against generated
// samples.
//
// A run has three phases:
//
//   - [Prepare] generates each configured sample deterministically
//     from a seed and records its size, digest, and escape count.
//   - [Runner.Verify] repairs every sample with every contestant and
//     compares the output with the fixed-buffer baseline. Lossy
//     contestants (the standard library's bytes.ToValidUTF8, included
//     as a speed reference) are exempt. A mismatch aborts the run:
//     timing a contestant that produces different bytes is
//     meaningless.
//   - [Runner.Run] times each contestant on each sample Runs times,
//     sorts the timings, drops the fastest and slowest when there are
//     at least three, and averages the rest.
//
// The resulting [Report] is rendered as a terminal table
// ([RenderTable]) or encoded as JSON or CBOR.
package bench
