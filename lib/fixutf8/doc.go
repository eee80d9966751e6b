// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fixutf8 repairs byte sequences that are supposed to be UTF-8
// but may contain malformed data.
//
// The output is byte-identical to the input when the input is already
// well-formed. Every byte that cannot start or continue a well-formed
// sequence is replaced by its three-byte UTF-8B escape (see
// lib/utf8b), so a cooperating reader can recover the original bytes
// exactly with [utf8b.Unescape]. Rejected shapes:
//
//   - lone continuation bytes (0x80..0xBF)
//   - always-invalid leads (0xC0, 0xC1, 0xF5..0xFF)
//   - truncated sequences, including at end of input
//   - overlong three- and four-byte encodings
//   - surrogate halves (U+D800..U+DFFF)
//   - code points above U+10FFFF
//
// Only one byte is escaped per failure, even when the attempted
// sequence was longer. The bytes that followed the failed lead are
// re-examined from scratch, so a single corrupt byte never changes the
// encoding of unrelated, independently valid sequences.
//
// # Sinks and entry points
//
// [Repair] drives a [Sink], which decides where output goes and how
// capacity is managed. Four sinks cover the usual ownership models:
//
//   - [FixedSink] writes into a caller buffer and stops when it is full
//   - [GrowableSink] owns a buffer and grows it by 1.5x
//   - [AppendSink] appends to a caller-owned []byte
//   - [BufferSink] appends to a bytes.Buffer or strings.Builder
//
// The entry points [RepairInto], [RepairAllocate], [RepairAppend] and
// [RepairString] construct the matching sink and run the engine. For
// streams, [Transformer], [NewReader] and [NewWriter] produce output
// identical to a one-shot repair regardless of how the input is split.
//
// Repair is a total function: malformed input is never an error. The
// only way a pass ends early is a FixedSink running out of room, in
// which case the consumed input length is returned so the caller can
// resume with a fresh sink.
//
// Nothing in this package holds shared state. Independent calls may
// run concurrently as long as each uses its own sink.
package fixutf8
