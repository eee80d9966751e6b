// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// Size is the length of a digest in bytes.
const Size = 32

// Digest is a BLAKE3-256 hash.
type Digest [Size]byte

// String returns the lowercase hex form of the digest.
func (d Digest) String() string { return Format(d) }

// Short returns the first 12 hex characters, for log lines.
func (d Digest) Short() string { return Format(d)[:12] }

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(Format(d)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Sum returns the digest of data.
func Sum(data []byte) Digest {
	return Digest(blake3.Sum256(data))
}

// HashReader streams r through BLAKE3 and returns the digest and the
// number of bytes read.
func HashReader(r io.Reader) (Digest, int64, error) {
	hasher := New()
	count, err := io.Copy(hasher, r)
	if err != nil {
		return Digest{}, count, fmt.Errorf("hashing stream: %w", err)
	}
	return hasher.Sum(), count, nil
}

// Hasher accumulates a digest over everything written to it. Write
// never fails. The zero value is not usable; call New.
type Hasher struct {
	state   *blake3.Hasher
	written int64
}

// New returns an empty Hasher.
func New() *Hasher {
	return &Hasher{state: blake3.New()}
}

// Write adds p to the running hash.
func (h *Hasher) Write(p []byte) (int, error) {
	h.written += int64(len(p))
	return h.state.Write(p)
}

// Sum returns the digest of everything written so far. Writing may
// continue afterwards.
func (h *Hasher) Sum() Digest {
	var result Digest
	copy(result[:], h.state.Sum(nil))
	return result
}

// Written returns the number of bytes hashed.
func (h *Hasher) Written() int64 { return h.written }

// Reset returns the hasher to its empty state.
func (h *Hasher) Reset() {
	h.state.Reset()
	h.written = 0
}

// Format converts a digest to its canonical hex-encoded string.
func Format(d Digest) string {
	return hex.EncodeToString(d[:])
}

// Parse parses a hex-encoded digest, validating encoding and length.
func Parse(hexString string) (Digest, error) {
	var result Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return result, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return result, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(result[:], decoded)
	return result, nil
}
