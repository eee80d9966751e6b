// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package utf8b implements the UTF-8B escape convention for embedding
// arbitrary bytes in UTF-8 text.
//
// A byte b that cannot be part of well-formed UTF-8 is replaced by the
// three-byte UTF-8 encoding of the code point U+DC00+b. For the bytes
// the repair engine ever escapes (0x80 through 0xFF) this lands in the
// low-surrogate block U+DC80..U+DCFF, which never occurs in
// well-formed UTF-8. A cooperating reader can therefore tell escapes
// apart from genuine content and recover the original byte exactly:
//
//	escaped := utf8b.Escape(0xC2)        // ED B3 82
//	b, ok := utf8b.DecodeEscape(escaped[:]) // 0xC2, true
//
// [Unescape] and [Unescaper] reverse a whole repaired stream. The
// repair direction lives in lib/fixutf8.
package utf8b
