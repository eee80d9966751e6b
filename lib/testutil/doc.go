// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for utf8fix packages.
//
// [Hex] turns a readable hex string such as "ED B3 82" into bytes, so
// byte-level test vectors stay legible in table-driven tests. [Concat]
// joins several vectors.
//
// [RequireBytes] compares two byte slices and, on mismatch, fails with
// a hex dump of both and the offset of the first difference. Repaired
// output is mostly invisible escapes, so %q output alone is not useful
// for spotting where two results diverge.
//
// [WriteFile] writes a fixture into the test's temporary directory and
// returns its path.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no utf8fix-internal dependencies.
package testutil
