// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress provides the stream compression formats utf8fix
// reads and writes: zstd frames and LZ4 frames.
//
// Inputs are detected by their frame magic number, so compressed and
// plain files can be mixed on one command line:
//
//	reader, algorithm, err := compress.NewReader(file)
//	defer reader.Close()
//
// Outputs use an explicitly chosen [Algorithm]:
//
//	writer, err := compress.NewWriter(os.Stdout, compress.Zstd)
//	defer writer.Close() // flushes the final frame
//
// Compressed input that happens to start with a magic number but is
// not a valid frame surfaces as a read error rather than being passed
// through as text.
package compress
