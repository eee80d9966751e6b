// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixutf8

import (
	"github.com/bureau-foundation/utf8fix/lib/utf8b"
)

// Sink receives the output of a repair pass. The engine calls
// HasCapacity before every write with the exact number of bytes that
// write will produce, then calls WriteValid or WriteInvalid (or
// WriteInvalid twice) for that step.
//
// A Sink belongs to one pass at a time and is not safe for concurrent
// use.
type Sink interface {
	// HasCapacity reports whether the next n bytes can be written. n
	// is at most 6 for a single sequence; it may be larger when the
	// engine offers an ASCII run, in which case a false answer makes
	// the engine fall back to one byte at a time. Returning false for
	// n <= 6 ends the pass.
	HasCapacity(n int) bool

	// WriteValid appends p verbatim. p is one well-formed sequence or
	// a run of ASCII bytes.
	WriteValid(p []byte)

	// WriteInvalid appends the UTF-8B escape of b.
	WriteInvalid(b byte)
}

// FixedSink writes into a caller-supplied buffer and never grows it.
// A buffer of len(dst) >= MaxRepairedLen(len(src)) always has room
// for the full output.
type FixedSink struct {
	buffer []byte
	length int
}

// NewFixedSink returns a sink that writes into dst[0:len(dst)].
func NewFixedSink(dst []byte) *FixedSink {
	return &FixedSink{buffer: dst}
}

// HasCapacity reports whether n more bytes fit in the buffer.
func (s *FixedSink) HasCapacity(n int) bool { return len(s.buffer)-s.length >= n }

// WriteValid implements Sink.
func (s *FixedSink) WriteValid(p []byte) {
	s.length += copy(s.buffer[s.length:], p)
}

// WriteInvalid implements Sink.
func (s *FixedSink) WriteInvalid(b byte) {
	escaped := utf8b.Escape(b)
	s.length += copy(s.buffer[s.length:], escaped[:])
}

// Len returns the number of bytes written so far.
func (s *FixedSink) Len() int { return s.length }

// Bytes returns the written prefix of the caller's buffer.
func (s *FixedSink) Bytes() []byte { return s.buffer[:s.length] }

// growthNumerator and growthDenominator give GrowableSink its 1.5x
// growth factor.
const (
	growthNumerator   = 3
	growthDenominator = 2
)

// GrowableSink owns a buffer that starts at a caller-chosen capacity
// (normally the input length, which is exact for valid input) and
// grows by 1.5x whenever a write would not fit.
type GrowableSink struct {
	buffer []byte
}

// NewGrowableSink returns a sink with an initial capacity of
// initialCapacity bytes.
func NewGrowableSink(initialCapacity int) *GrowableSink {
	return &GrowableSink{buffer: make([]byte, 0, initialCapacity)}
}

// HasCapacity grows the buffer if needed and always returns true.
func (s *GrowableSink) HasCapacity(n int) bool {
	if cap(s.buffer)-len(s.buffer) < n {
		s.grow(n)
	}
	return true
}

func (s *GrowableSink) grow(n int) {
	newCapacity := cap(s.buffer) * growthNumerator / growthDenominator
	if minimum := len(s.buffer) + n; newCapacity < minimum {
		newCapacity = minimum
	}
	grown := make([]byte, len(s.buffer), newCapacity)
	copy(grown, s.buffer)
	s.buffer = grown
}

// WriteValid implements Sink.
func (s *GrowableSink) WriteValid(p []byte) { s.buffer = append(s.buffer, p...) }

// WriteInvalid implements Sink.
func (s *GrowableSink) WriteInvalid(b byte) { s.buffer = utf8b.AppendEscape(s.buffer, b) }

// Len returns the number of bytes written so far.
func (s *GrowableSink) Len() int { return len(s.buffer) }

// Bytes returns the output. The sink must not be used afterwards:
// ownership of the buffer passes to the caller.
func (s *GrowableSink) Bytes() []byte {
	result := s.buffer
	s.buffer = nil
	return result
}

// AppendSink appends to a caller-owned byte slice. Growth is left to
// append, so it always has capacity.
type AppendSink struct {
	target *[]byte
}

// NewAppendSink returns a sink that appends to *target.
func NewAppendSink(target *[]byte) *AppendSink {
	return &AppendSink{target: target}
}

// HasCapacity always returns true.
func (s *AppendSink) HasCapacity(int) bool { return true }

// WriteValid implements Sink.
func (s *AppendSink) WriteValid(p []byte) { *s.target = append(*s.target, p...) }

// WriteInvalid implements Sink.
func (s *AppendSink) WriteInvalid(b byte) { *s.target = utf8b.AppendEscape(*s.target, b) }

// Appender is the subset of bytes.Buffer and strings.Builder that
// BufferSink needs. Both implementations never return an error.
type Appender interface {
	Write(p []byte) (int, error)
	Grow(n int)
}

// BufferSink appends to a bytes.Buffer or strings.Builder.
type BufferSink struct {
	target Appender
}

// NewBufferSink returns a sink that appends to target.
func NewBufferSink(target Appender) *BufferSink {
	return &BufferSink{target: target}
}

// HasCapacity always returns true.
func (s *BufferSink) HasCapacity(int) bool { return true }

// WriteValid implements Sink.
func (s *BufferSink) WriteValid(p []byte) { s.target.Write(p) }

// WriteInvalid implements Sink.
func (s *BufferSink) WriteInvalid(b byte) {
	escaped := utf8b.Escape(b)
	s.target.Write(escaped[:])
}
