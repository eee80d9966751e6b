// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package safelog

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/utf8fix/lib/fixutf8"
)

// Handler is a slog.Handler that sanitizes text before delegating to
// an inner handler.
type Handler struct {
	inner slog.Handler
}

// NewHandler wraps inner.
func NewHandler(inner slog.Handler) *Handler {
	return &Handler{inner: inner}
}

// Enabled defers to the inner handler.
func (handler *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return handler.inner.Enabled(ctx, level)
}

// Handle rebuilds the record with sanitized text and passes it on.
func (handler *Handler) Handle(ctx context.Context, record slog.Record) error {
	clean := slog.NewRecord(record.Time, record.Level, Clean(record.Message), record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clean.AddAttrs(cleanAttr(attr))
		return true
	})
	return handler.inner.Handle(ctx, clean)
}

// WithAttrs sanitizes attrs once, at derivation time.
func (handler *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleaned := make([]slog.Attr, len(attrs))
	for index, attr := range attrs {
		cleaned[index] = cleanAttr(attr)
	}
	return &Handler{inner: handler.inner.WithAttrs(cleaned)}
}

// WithGroup sanitizes the group name.
func (handler *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: handler.inner.WithGroup(Clean(name))}
}

func cleanAttr(attr slog.Attr) slog.Attr {
	attr.Key = Clean(attr.Key)
	value := attr.Value.Resolve()

	switch value.Kind() {
	case slog.KindString:
		attr.Value = slog.StringValue(Clean(value.String()))
	case slog.KindGroup:
		members := value.Group()
		cleaned := make([]slog.Attr, len(members))
		for index, member := range members {
			cleaned[index] = cleanAttr(member)
		}
		attr.Value = slog.GroupValue(cleaned...)
	case slog.KindAny:
		switch typed := value.Any().(type) {
		case []byte:
			attr.Value = slog.StringValue(CleanBytes(typed))
		case error:
			attr.Value = slog.StringValue(Clean(typed.Error()))
		default:
			attr.Value = value
		}
	default:
		attr.Value = value
	}
	return attr
}

// Clean returns s with every byte that is not part of a valid UTF-8
// sequence replaced by \xNN. Valid strings are returned as is.
func Clean(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return CleanBytes([]byte(s))
}

// CleanBytes is Clean for a byte slice. The result is always a new
// string.
func CleanBytes(p []byte) string {
	var builder strings.Builder
	builder.Grow(len(p) + 8)
	fixutf8.Repair(hexSink{&builder}, p)
	return builder.String()
}

const hexDigits = "0123456789abcdef"

// hexSink renders invalid bytes as Go-style \xNN escapes. It never
// runs out of room.
type hexSink struct {
	builder *strings.Builder
}

func (hexSink) HasCapacity(int) bool { return true }

func (sink hexSink) WriteValid(p []byte) { sink.builder.Write(p) }

func (sink hexSink) WriteInvalid(b byte) {
	sink.builder.WriteString(`\x`)
	sink.builder.WriteByte(hexDigits[b>>4])
	sink.builder.WriteByte(hexDigits[b&0x0F])
}
