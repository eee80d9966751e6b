// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package safelog keeps invalid UTF-8 out of structured logs.
//
// utf8fix logs file names and byte counts for inputs that are, by
// definition, not valid UTF-8. Handed such strings, slog's JSON
// handler silently replaces every bad byte with U+FFFD, and the text
// handler switches to Go quoting. Neither tells an operator which
// bytes were there.
//
// [Handler] wraps any slog.Handler and rewrites the message, attribute
// keys, and string-like attribute values before they reach it. Valid
// UTF-8 passes through untouched; each invalid byte becomes the
// four-character text \xNN. The rewrite runs the repair engine with a
// sink that renders escapes as hex instead of UTF-8B, so the
// classification is identical to the one used on file contents.
package safelog
