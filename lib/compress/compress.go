// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies a stream compression format.
type Algorithm uint8

const (
	// None passes bytes through unchanged.
	None Algorithm = iota

	// Zstd is a zstd frame at the default level. Better ratio on
	// text, which is what utf8fix emits.
	Zstd

	// LZ4 is an LZ4 frame. Faster to produce and consume than zstd
	// at a lower ratio.
	LZ4
)

// Frame magic numbers as they appear on the wire (little-endian).
var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

const magicLength = 4

// String returns the human-readable name of an algorithm.
func (algorithm Algorithm) String() string {
	switch algorithm {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", algorithm)
	}
}

// ParseAlgorithm parses an algorithm from its string representation.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "none", "":
		return None, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("unknown compression %q (want none, zstd or lz4)", name)
	}
}

// Detect identifies the algorithm from the first bytes of a stream.
// Anything without a recognized magic number is None.
func Detect(header []byte) Algorithm {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return Zstd
	case bytes.HasPrefix(header, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// zstdEncoder and zstdDecoder serve the whole-buffer functions. Both
// are safe for concurrent use with EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

// NewReader returns a reader that yields the decompressed content of
// r along with the detected algorithm. Close releases decoder
// resources; it does not close r.
func NewReader(r io.Reader) (io.ReadCloser, Algorithm, error) {
	buffered := bufio.NewReader(r)
	header, err := buffered.Peek(magicLength)
	if err != nil && err != io.EOF {
		return nil, None, fmt.Errorf("reading stream header: %w", err)
	}

	algorithm := Detect(header)
	switch algorithm {
	case Zstd:
		decoder, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, algorithm, fmt.Errorf("zstd reader: %w", err)
		}
		return zstdReadCloser{decoder}, algorithm, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(buffered)), algorithm, nil
	default:
		return io.NopCloser(buffered), algorithm, nil
	}
}

type zstdReadCloser struct {
	decoder *zstd.Decoder
}

func (z zstdReadCloser) Read(p []byte) (int, error) { return z.decoder.Read(p) }

func (z zstdReadCloser) Close() error {
	z.decoder.Close()
	return nil
}

// NewWriter returns a writer that compresses into w. Close must be
// called to flush the final frame; it does not close w.
func NewWriter(w io.Writer, algorithm Algorithm) (io.WriteCloser, error) {
	switch algorithm {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return encoder, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", algorithm)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Compress returns data encoded as a single frame. For None it returns
// data unchanged (no copy).
func Compress(data []byte, algorithm Algorithm) ([]byte, error) {
	switch algorithm {
	case None:
		return data, nil
	case Zstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	case LZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", algorithm)
	}
}

// Decompress detects the frame format of data and returns its
// content. Data without a recognized magic number is returned
// unchanged.
func Decompress(data []byte) ([]byte, error) {
	switch Detect(data) {
	case Zstd:
		content, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return content, nil
	case LZ4:
		content, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return content, nil
	default:
		return data, nil
	}
}
