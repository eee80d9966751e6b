// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides BLAKE3 content hashing for round-trip
// verification.
//
// utf8fix --verify hashes the raw input as it is read and hashes the
// unescaped repaired output as it is written. Equal digests prove the
// repair was lossless without holding both copies in memory.
//
// The API surface:
//
//   - [Sum] and [HashReader] -- one-shot hashing of a byte slice or a
//     stream, with constant memory for streams
//   - [Hasher] -- an io.Writer that accumulates a digest, for use with
//     io.TeeReader and io.MultiWriter
//   - [Digest] -- a 32-byte value whose text form is lowercase hex, in
//     logs, JSON, and CBOR alike
//   - [Format] and [Parse] -- hex conversion with length validation
//
// This package has no dependencies on other utf8fix packages.
package digest
