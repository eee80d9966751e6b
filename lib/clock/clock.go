// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts reading the current time so measurements can be
// replayed deterministically in tests. Production code injects Real();
// tests inject Fake().
type Clock interface {
	// Now returns the current time. Successive calls on a Real clock
	// carry a monotonic reading, so Sub between two results measures
	// elapsed time even across wall-clock adjustments.
	Now() time.Time
}

// Since returns the time elapsed on c since start.
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}
