// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/transform"

	"github.com/bureau-foundation/utf8fix/internal/cli"
	"github.com/bureau-foundation/utf8fix/lib/compress"
	"github.com/bureau-foundation/utf8fix/lib/config"
	"github.com/bureau-foundation/utf8fix/lib/digest"
	"github.com/bureau-foundation/utf8fix/lib/fixutf8"
	"github.com/bureau-foundation/utf8fix/lib/utf8b"
)

// filter drives one repair entry point over a list of inputs.
type filter struct {
	mode       string
	bufferSize int
	verify     bool
	decode     bool
	stats      bool
	logger     *slog.Logger
	stdin      io.Reader

	// scratch is reused across inputs by the append and fixed modes.
	scratch []byte
}

// open returns the decompressed content of the named input. Close
// releases the decoder and the file.
func (f *filter) open(name string) (io.ReadCloser, compress.Algorithm, error) {
	var source io.Reader = f.stdin
	var file *os.File
	if name != "-" {
		var err error
		file, err = os.Open(name)
		if err != nil {
			return nil, compress.None, cli.Internal("opening input: %w", err)
		}
		source = file
	}

	reader, algorithm, err := compress.NewReader(source)
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, compress.None, cli.Internal("reading %s: %w", name, err)
	}
	return inputCloser{ReadCloser: reader, file: file}, algorithm, nil
}

type inputCloser struct {
	io.ReadCloser
	file *os.File
}

func (c inputCloser) Close() error {
	c.ReadCloser.Close()
	if c.file != nil {
		return c.file.Close()
	}
	return nil
}

// checkAll reports every input that is not valid UTF-8 and returns an
// ExitError when there was at least one.
func (f *filter) checkAll(inputs []string) error {
	invalid := 0
	for _, name := range inputs {
		reader, _, err := f.open(name)
		if err != nil {
			return err
		}
		data, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			return cli.Internal("reading %s: %w", name, err)
		}
		if !fixutf8.Valid(data) {
			invalid++
			f.logger.Info("not valid UTF-8", "input", name, "bytes", len(data))
		}
	}
	if invalid > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// processInput repairs or decodes one input into w.
func (f *filter) processInput(w io.Writer, name string) error {
	reader, algorithm, err := f.open(name)
	if err != nil {
		return err
	}
	defer reader.Close()

	input := &countingReader{reader: reader}
	var source io.Reader = input
	var inputDigest *digest.Hasher
	if f.verify {
		inputDigest = digest.New()
		source = io.TeeReader(input, inputDigest)
	}

	output := &countingWriter{writer: w}
	var destination io.Writer = output
	var roundTrip *digest.Hasher
	var unescaper *transform.Writer
	if f.verify {
		roundTrip = digest.New()
		unescaper = transform.NewWriter(roundTrip, utf8b.Unescaper{})
		destination = io.MultiWriter(output, unescaper)
	}

	if f.decode {
		err = copyDecoded(destination, source)
	} else {
		err = f.repair(destination, source)
	}
	if err != nil {
		return cli.Internal("%s: %w", name, err)
	}

	if f.verify {
		if err := unescaper.Close(); err != nil {
			return cli.Internal("%s: finishing verification: %w", name, err)
		}
		if inputDigest.Sum() != roundTrip.Sum() {
			return cli.Internal("%s: verification failed: input %s, decoded output %s",
				name, inputDigest.Sum().Short(), roundTrip.Sum().Short())
		}
		f.logger.Debug("verified", "input", name, "digest", inputDigest.Sum())
	}

	if f.stats {
		attrs := []any{
			"input", name,
			"bytes_in", input.count,
			"bytes_out", output.count,
		}
		if !f.decode {
			attrs = append(attrs, "escaped", (output.count-input.count)/2)
		}
		if algorithm != compress.None {
			attrs = append(attrs, "compression", algorithm.String())
		}
		f.logger.Info("processed", attrs...)
	}
	return nil
}

func copyDecoded(w io.Writer, r io.Reader) error {
	_, err := io.Copy(w, transform.NewReader(r, utf8b.Unescaper{}))
	return err
}

// repair writes the repaired form of r to w using the configured entry
// point. Every mode produces the same bytes.
func (f *filter) repair(w io.Writer, r io.Reader) error {
	if f.mode == config.ModeStream {
		_, err := io.Copy(w, fixutf8.NewReader(r))
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	switch f.mode {
	case config.ModeAllocate:
		_, err = w.Write(fixutf8.RepairAllocate(data))
		return err

	case config.ModeAppend:
		f.scratch = fixutf8.RepairAppend(f.scratch[:0], data)
		_, err = w.Write(f.scratch)
		return err

	case config.ModeFixed:
		if len(f.scratch) < f.bufferSize {
			f.scratch = make([]byte, f.bufferSize)
		}
		buffer := f.scratch[:f.bufferSize]
		for len(data) > 0 {
			written, consumed := fixutf8.RepairInto(buffer, data)
			if consumed == 0 {
				return fmt.Errorf("output buffer of %d bytes cannot hold a repair step", len(buffer))
			}
			if _, err := w.Write(buffer[:written]); err != nil {
				return err
			}
			data = data[consumed:]
		}
		return nil

	default:
		return fmt.Errorf("unknown mode %q", f.mode)
	}
}

type countingReader struct {
	reader io.Reader
	count  int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.count += int64(n)
	return n, err
}

type countingWriter struct {
	writer io.Writer
	count  int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.writer.Write(p)
	c.count += int64(n)
	return n, err
}
