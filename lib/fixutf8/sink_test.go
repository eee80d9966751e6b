// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixutf8

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/utf8fix/lib/testutil"
)

func TestFixedSinkStopsWhenFull(t *testing.T) {
	input := []byte("ab\xffcd")
	// Room for "ab" but not for the 3-byte escape.
	buffer := make([]byte, 4)
	written, consumed := RepairInto(buffer, input)
	if consumed != 2 {
		t.Fatalf("consumed = %d, want 2", consumed)
	}
	testutil.RequireBytes(t, buffer[:written], []byte("ab"), "partial output")
}

func TestFixedSinkResume(t *testing.T) {
	input := []byte("héllo \xc0\x80 wörld \xf4\x90\x80\x80 €\xe2\x82")
	want := RepairAllocate(input)

	for size := 6; size <= 16; size++ {
		var output []byte
		remaining := input
		for len(remaining) > 0 {
			buffer := make([]byte, size)
			written, consumed := RepairInto(buffer, remaining)
			if consumed == 0 {
				t.Fatalf("size %d: no progress with %d bytes left", size, len(remaining))
			}
			output = append(output, buffer[:written]...)
			remaining = remaining[consumed:]
		}
		testutil.RequireBytes(t, output, want, "resuming with %d-byte buffers", size)
	}
}

func TestFixedSinkExactWorstCase(t *testing.T) {
	// Every byte escaped, buffer exactly 3N: must consume everything.
	input := []byte("\xff\xfe\x80\xc0")
	buffer := make([]byte, MaxRepairedLen(len(input)))
	written, consumed := RepairInto(buffer, input)
	if consumed != len(input) || written != len(buffer) {
		t.Errorf("written, consumed = %d, %d; want %d, %d", written, consumed, len(buffer), len(input))
	}
}

func TestFixedSinkTooSmallForOneStep(t *testing.T) {
	written, consumed := RepairInto(make([]byte, 2), []byte("\xff"))
	if written != 0 || consumed != 0 {
		t.Errorf("written, consumed = %d, %d; want 0, 0", written, consumed)
	}
}

func TestGrowableSinkGrowth(t *testing.T) {
	sink := NewGrowableSink(4)
	if !sink.HasCapacity(4) {
		t.Fatal("HasCapacity(4) = false")
	}
	sink.WriteValid([]byte("abcd"))
	sink.HasCapacity(3)
	// 4 * 1.5 = 6 would be too small for 4+3, so growth jumps to 7.
	if got := cap(sink.buffer); got != 7 {
		t.Errorf("cap after growth = %d, want 7", got)
	}
	sink.WriteInvalid(0xFF)
	sink.HasCapacity(1)
	// 7 * 1.5 = 10.
	if got := cap(sink.buffer); got != 10 {
		t.Errorf("cap after second growth = %d, want 10", got)
	}
	if sink.Len() != 7 {
		t.Errorf("Len = %d, want 7", sink.Len())
	}
	output := sink.Bytes()
	testutil.RequireBytes(t, output, testutil.Concat([]byte("abcd"), escaped("\xff")), "growable output")
	if sink.Len() != 0 {
		t.Error("sink should release its buffer after Bytes")
	}
}

func TestGrowableSinkFromZero(t *testing.T) {
	sink := NewGrowableSink(0)
	Repair(sink, []byte("\x80"))
	testutil.RequireBytes(t, sink.Bytes(), escaped("\x80"), "growable from zero")
}

func TestBufferSinkVariants(t *testing.T) {
	input := []byte("a\xc3(b\xf0\x9f\x98\x80")
	want := RepairAllocate(input)

	var buffer bytes.Buffer
	buffer.WriteString(">")
	Repair(NewBufferSink(&buffer), input)
	testutil.RequireBytes(t, buffer.Bytes(), testutil.Concat([]byte(">"), want), "bytes.Buffer")

	var builder strings.Builder
	Repair(NewBufferSink(&builder), input)
	testutil.RequireBytes(t, []byte(builder.String()), want, "strings.Builder")
}

// recordingSink records every call the engine makes.
type recordingSink struct {
	capacityRequests []int
	calls            []string
	output           []byte
}

func (s *recordingSink) HasCapacity(n int) bool {
	s.capacityRequests = append(s.capacityRequests, n)
	return true
}

func (s *recordingSink) WriteValid(p []byte) {
	s.calls = append(s.calls, "valid:"+string(p))
	s.output = append(s.output, p...)
}

func (s *recordingSink) WriteInvalid(b byte) {
	s.calls = append(s.calls, "invalid")
	s.output = append(s.output, escaped(string(b))...)
}

func TestEngineCallSequence(t *testing.T) {
	sink := &recordingSink{}
	// ASCII run, 3-byte lead with an orphaned continuation, lone
	// continuation, valid 2-byte sequence.
	Repair(sink, []byte("ab\xe2\x82c\x80é"))

	wantCalls := []string{"valid:ab", "invalid", "invalid", "valid:c", "invalid", "valid:é"}
	if strings.Join(sink.calls, ",") != strings.Join(wantCalls, ",") {
		t.Errorf("calls = %v, want %v", sink.calls, wantCalls)
	}
	wantRequests := []int{2, 6, 1, 3, 2}
	if len(sink.capacityRequests) != len(wantRequests) {
		t.Fatalf("capacity requests = %v, want %v", sink.capacityRequests, wantRequests)
	}
	for i := range wantRequests {
		if sink.capacityRequests[i] != wantRequests[i] {
			t.Errorf("capacity requests = %v, want %v", sink.capacityRequests, wantRequests)
			break
		}
	}
}

func TestEngineNeverAsksForMoreThanSixOutsideASCIIRuns(t *testing.T) {
	sink := &recordingSink{}
	input := []byte("\xf0\x9f\x98\x80\xf4\x90\x80\x80\xe0\xa0\xed\xa0\x80")
	Repair(sink, input)
	for _, n := range sink.capacityRequests {
		if n > 6 {
			t.Errorf("HasCapacity(%d) for non-ASCII input", n)
		}
	}
}
