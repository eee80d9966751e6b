// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixutf8

import (
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/utf8fix/lib/utf8b"
)

// Repair runs one left-to-right pass over src, writing the repaired
// output to sink, and returns the number of input bytes consumed.
// That is len(src) unless the sink refused a write, in which case the
// output for src[:consumed] is complete and src[consumed:] can be
// repaired into a fresh sink.
func Repair(sink Sink, src []byte) int {
	i := 0
	for i < len(src) {
		if src[i] < utf8.RuneSelf {
			end := i + 1
			for end < len(src) && src[end] < utf8.RuneSelf {
				end++
			}
			if !sink.HasCapacity(end - i) {
				if !sink.HasCapacity(1) {
					return i
				}
				end = i + 1
			}
			sink.WriteValid(src[i:end])
			i = end
			continue
		}

		current := classify(src[i:])
		if !sink.HasCapacity(current.outputSize()) {
			return i
		}
		switch current.kind {
		case stepValid:
			sink.WriteValid(src[i : i+current.size])
		case stepInvalidPair:
			sink.WriteInvalid(src[i])
			sink.WriteInvalid(src[i+1])
		default:
			sink.WriteInvalid(src[i])
		}
		i += current.advance()
	}
	return i
}

// MaxRepairedLen returns the largest possible output size for n input
// bytes: every byte escaped.
func MaxRepairedLen(n int) int { return n * utf8b.EscapeLen }

// RepairInto repairs src into dst and returns the number of bytes
// written and the number of input bytes consumed. If len(dst) is at
// least MaxRepairedLen(len(src)), consumed is always len(src);
// otherwise a smaller consumed value marks where output stopped.
func RepairInto(dst, src []byte) (written, consumed int) {
	sink := NewFixedSink(dst)
	consumed = Repair(sink, src)
	return sink.Len(), consumed
}

// RepairAllocate repairs src into a newly allocated buffer owned by
// the caller. The buffer starts at len(src) bytes and grows as escapes
// are written.
func RepairAllocate(src []byte) []byte {
	sink := NewGrowableSink(len(src))
	Repair(sink, src)
	return sink.Bytes()
}

// RepairAppend appends the repaired form of src to dst and returns the
// extended slice.
func RepairAppend(dst, src []byte) []byte {
	Repair(NewAppendSink(&dst), src)
	return dst
}

// RepairString returns the repaired form of s. Well-formed strings are
// returned as is, without copying.
func RepairString(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var builder strings.Builder
	builder.Grow(len(s))
	Repair(NewBufferSink(&builder), []byte(s))
	return builder.String()
}

// Valid reports whether src is left unchanged by Repair.
func Valid(src []byte) bool {
	for i := 0; i < len(src); {
		current := classify(src[i:])
		if current.kind != stepValid {
			return false
		}
		i += current.size
	}
	return true
}
