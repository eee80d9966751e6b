// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/utf8fix/lib/safelog"
)

// Log formats accepted by --log-format.
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// NewLogger creates a structured logger writing to w. In auto format,
// a terminal gets slog.TextHandler for human-readable output and
// anything else (pipes, CI, files) gets slog.JSONHandler. Every
// handler is wrapped in safelog so invalid UTF-8 in file names and
// payload snippets is rendered as \xNN rather than mangled.
//
// Callers scope the logger with command context via With():
//
//	logger := logger.With("input", path, "mode", mode)
func NewLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var parsedLevel slog.Level
	if err := parsedLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, Validation("invalid --log-level %q: %w", level, err)
	}
	options := &slog.HandlerOptions{Level: parsedLevel}

	var handler slog.Handler
	switch format {
	case LogFormatText:
		handler = slog.NewTextHandler(w, options)
	case LogFormatJSON:
		handler = slog.NewJSONHandler(w, options)
	case LogFormatAuto, "":
		if IsTerminal(w) {
			handler = slog.NewTextHandler(w, options)
		} else {
			handler = slog.NewJSONHandler(w, options)
		}
	default:
		return nil, Validation("invalid --log-format %q (want %s, %s or %s)",
			format, LogFormatAuto, LogFormatText, LogFormatJSON)
	}
	return slog.New(safelog.NewHandler(handler)), nil
}

// IsTerminal reports whether w is a file attached to a terminal.
// Commands use it to pick human or machine output defaults.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
