// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"bytes"
	"io"

	"github.com/bureau-foundation/utf8fix/lib/fixutf8"
)

// Contestant is one way of repairing a buffer.
type Contestant struct {
	// Name identifies the contestant in reports and on the command
	// line.
	Name string

	// Lossy marks contestants whose output is not UTF-8B. They are
	// timed but never cross-checked.
	Lossy bool

	// Repair returns the repaired form of src. The result may alias
	// state owned by the contestant and is only valid until the next
	// call.
	Repair func(src []byte) []byte
}

// Contestants returns the stock contestants: one per sink variant,
// the streaming transformer, and the lossy standard library reference.
// Each call returns fresh contestants with their own scratch buffers.
func Contestants() []Contestant {
	var fixedBuffer []byte
	var appendBuffer []byte
	var buffer bytes.Buffer
	var streamed bytes.Buffer

	return []Contestant{
		{
			Name: "fixed",
			Repair: func(src []byte) []byte {
				if need := fixutf8.MaxRepairedLen(len(src)); cap(fixedBuffer) < need {
					fixedBuffer = make([]byte, need)
				}
				written, _ := fixutf8.RepairInto(fixedBuffer[:cap(fixedBuffer)], src)
				return fixedBuffer[:written]
			},
		},
		{
			Name:   "growable",
			Repair: fixutf8.RepairAllocate,
		},
		{
			Name: "append",
			Repair: func(src []byte) []byte {
				appendBuffer = fixutf8.RepairAppend(appendBuffer[:0], src)
				return appendBuffer
			},
		},
		{
			Name: "buffer",
			Repair: func(src []byte) []byte {
				buffer.Reset()
				fixutf8.Repair(fixutf8.NewBufferSink(&buffer), src)
				return buffer.Bytes()
			},
		},
		{
			Name: "stream",
			Repair: func(src []byte) []byte {
				streamed.Reset()
				// Reading from a bytes.Reader into a bytes.Buffer cannot fail.
				_, _ = io.Copy(&streamed, fixutf8.NewReader(bytes.NewReader(src)))
				return streamed.Bytes()
			},
		},
		{
			Name:  "stdlib",
			Lossy: true,
			Repair: func(src []byte) []byte {
				return bytes.ToValidUTF8(src, []byte("�"))
			},
		},
	}
}

// Select returns the contestants whose names appear in names, in
// contestant order. An empty names list selects everything. Unknown
// names are returned so the caller can report them.
func Select(contestants []Contestant, names []string) (selected []Contestant, unknown []string) {
	return selectByName(contestants, func(c Contestant) string { return c.Name }, names)
}

func selectByName[T any](items []T, nameOf func(T) string, names []string) (selected []T, unknown []string) {
	if len(names) == 0 {
		return items, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	for _, item := range items {
		if wanted[nameOf(item)] {
			selected = append(selected, item)
			delete(wanted, nameOf(item))
		}
	}
	for _, name := range names {
		if wanted[name] {
			unknown = append(unknown, name)
			delete(wanted, name)
		}
	}
	return selected, unknown
}
