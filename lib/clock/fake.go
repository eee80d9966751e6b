// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called, unless SetStep configures an
// automatic increment per reading.
//
// FakeClock is safe for concurrent use by multiple goroutines.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for testing.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
	reads   int
}

// Now returns the current fake time, then advances it by the
// configured step.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	c.reads++
	return now
}

// Advance moves the clock forward by d. Negative durations are
// ignored: a clock never runs backwards.
func (c *FakeClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// SetStep makes every subsequent Now call advance the clock by step
// after reading it. A timed section bracketed by two Now calls then
// measures exactly step. Zero restores a frozen clock.
func (c *FakeClock) SetStep(step time.Duration) {
	if step < 0 {
		step = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = step
}

// Reads returns how many times Now has been called.
func (c *FakeClock) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}
