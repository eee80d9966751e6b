// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixutf8

import (
	"io"

	"golang.org/x/text/transform"
)

// Transformer is a transform.Transformer that repairs a stream. It
// writes through a FixedSink over dst, so a full destination buffer
// surfaces as transform.ErrShortDst with all progress so far reported.
// A sequence that is well-formed up to the end of src but incomplete
// is held back with transform.ErrShortSrc until more input arrives or
// atEOF is set, which keeps the output identical to a one-shot
// RepairAllocate of the concatenated input.
type Transformer struct{ transform.NopResetter }

var _ transform.SpanningTransformer = Transformer{}

// Transform implements transform.Transformer.
func (Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	limit := len(src)
	if !atEOF {
		limit = incompleteTail(src)
	}

	sink := NewFixedSink(dst)
	nSrc = Repair(sink, src[:limit])
	nDst = sink.Len()
	switch {
	case nSrc < limit:
		return nDst, nSrc, transform.ErrShortDst
	case limit < len(src):
		return nDst, nSrc, transform.ErrShortSrc
	}
	return nDst, nSrc, nil
}

// Span implements transform.SpanningTransformer. It returns the length
// of the well-formed prefix of src, which Repair would copy verbatim.
func (Transformer) Span(src []byte, atEOF bool) (n int, err error) {
	for n < len(src) {
		current := classify(src[n:])
		if current.kind != stepValid {
			break
		}
		n += current.size
	}
	if n == len(src) {
		return n, nil
	}
	if !atEOF && incompleteTail(src) == n {
		return n, transform.ErrShortSrc
	}
	return n, transform.ErrEndOfSpan
}

// NewReader returns a reader that yields the repaired form of r.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, Transformer{})
}

// NewWriter returns a writer that repairs everything written to it
// before passing it on to w. Close flushes a trailing incomplete
// sequence as escapes; it does not close w.
func NewWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, Transformer{})
}
