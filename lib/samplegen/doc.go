// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package samplegen synthesizes byte samples for exercising and
// benchmarking the repair engine: random bytes, UTF-8 encodings of
// arbitrary code point ranges (including surrogates and values beyond
// U+10FFFF, which are invalid), truncated encodings, and weighted
// mixtures of these.
//
// Generators compose:
//
//	evil := samplegen.Mix(
//	    samplegen.Priority(5, samplegen.UTF8(0, 0x10FFFF)),
//	    samplegen.Bytes(0x80, 0xC2),
//	    samplegen.UTF8(0xD800, 0xDFFF),
//	    samplegen.MustUTF8Substr(-4, 4, 0, 0x10FFFF),
//	)
//	sample := samplegen.Generate(8<<20, 1, evil)
//
// Generation is deterministic for a given seed. [Spec] is the
// configuration-file form of a generator tree, and [Defaults] returns
// the stock benchmark samples.
package samplegen
