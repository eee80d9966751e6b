// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package utf8b

import (
	"bytes"

	"golang.org/x/text/transform"
)

// Unescaper is a transform.Transformer that performs [Unescape] on a
// stream. An escape split across two Transform calls is held back
// with transform.ErrShortSrc until the rest arrives or atEOF is set.
type Unescaper struct{ transform.NopResetter }

var _ transform.Transformer = Unescaper{}

// Transform implements transform.Transformer.
func (Unescaper) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		// Copy everything up to the next possible escape lead as a run.
		run := bytes.IndexByte(src[nSrc:], escapeLead)
		if run < 0 {
			run = len(src) - nSrc
		}
		if run > 0 {
			copied := copy(dst[nDst:], src[nSrc:nSrc+run])
			nDst += copied
			nSrc += copied
			if copied < run {
				return nDst, nSrc, transform.ErrShortDst
			}
			continue
		}

		tail := src[nSrc:]
		if len(tail) < EscapeLen && !atEOF && escapePrefix(tail) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if b, ok := DecodeEscape(tail); ok {
			dst[nDst] = b
			nDst++
			nSrc += EscapeLen
			continue
		}
		dst[nDst] = tail[0]
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}

// escapePrefix reports whether p (shorter than EscapeLen) could be
// the start of an escape sequence.
func escapePrefix(p []byte) bool {
	switch len(p) {
	case 1:
		return p[0] == escapeLead
	case 2:
		return p[0] == escapeLead && (p[1] == escapeMidLow || p[1] == escapeMidHigh)
	default:
		return false
	}
}
