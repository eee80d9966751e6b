// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides utf8fix's standard CBOR encoding
// configuration.
//
// utf8fix writes structured results in two formats: JSON for people
// and scripts, CBOR for compact archives of benchmark reports that are
// later diffed or aggregated. Both formats are produced from the same
// types, so types carry `json` tags only; fxamacker/cbor v2 reads
// `json` tags as a fallback when `cbor` tags are absent, so a single
// tag controls field naming and omitempty for both.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// The same report always produces identical bytes, which keeps
// archived reports content-addressable.
//
//	data, err := codec.Marshal(report)
//	err = codec.Unmarshal(data, &report)
//
// For streams:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// Types implementing encoding.TextMarshaler (digest.Digest, for
// example) are written as CBOR text strings via MarshalText, the same
// representation they have in JSON.
package codec
