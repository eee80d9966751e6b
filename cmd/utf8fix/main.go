// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// utf8fix repairs arbitrary bytes into well-formed UTF-8 without losing
// information. Every byte that is not part of a valid UTF-8 sequence
// is replaced by its UTF-8B escape (the encoding of U+DC00 plus the
// byte), which --decode turns back into the original byte.
//
// Inputs are files named on the command line, or stdin when none are
// given or the name is "-". zstd and LZ4 frames are detected and
// decompressed transparently. Output goes to stdout or --output,
// optionally compressed.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/utf8fix/internal/cli"
	"github.com/bureau-foundation/utf8fix/lib/compress"
	"github.com/bureau-foundation/utf8fix/lib/config"
	"github.com/bureau-foundation/utf8fix/lib/version"
)

func main() {
	os.Exit(cli.Exit(os.Stderr, run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		common     cli.CommonFlags
		mode       string
		compressed string
		output     string
		bufferSize int
		verify     bool
		decode     bool
		check      bool
		stats      bool
	)

	flagSet := pflag.NewFlagSet("utf8fix", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&mode, "mode", config.ModeAllocate, "repair entry point: allocate, append, fixed or stream (output is identical)")
	flagSet.StringVar(&compressed, "compress", config.CompressNone, "output compression: none, zstd or lz4")
	flagSet.StringVarP(&output, "output", "o", "", "write output to this file instead of stdout")
	flagSet.IntVar(&bufferSize, "buffer-size", 64*1024, "output buffer size in bytes for --mode fixed (at least 6)")
	flagSet.BoolVar(&verify, "verify", false, "check that each output decodes back to its exact input")
	flagSet.BoolVar(&decode, "decode", false, "reverse the repair: turn UTF-8B escapes back into raw bytes")
	flagSet.BoolVar(&check, "check", false, "write nothing; exit 1 if any input is not valid UTF-8")
	flagSet.BoolVar(&stats, "stats", false, "log byte counts and escapes for each input")
	common.AddFlags(flagSet)
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match other utf8fix binaries.
	if len(args) > 0 && args[0] == "--version" {
		version.Print(stdout, "utf8fix")
		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stderr, flagSet)
			return nil
		}
		return cli.Validation("%w", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	cfg, logger, err := common.Setup(stderr)
	if err != nil {
		return err
	}
	if flagSet.Changed("mode") {
		cfg.Filter.Mode = mode
	}
	if flagSet.Changed("compress") {
		cfg.Filter.Compress = compressed
	}
	if flagSet.Changed("output") {
		cfg.Filter.Output = output
	}
	if flagSet.Changed("buffer-size") {
		cfg.Filter.BufferSize = bufferSize
	}
	if flagSet.Changed("verify") {
		cfg.Filter.Verify = verify
	}
	if err := cfg.Validate(); err != nil {
		return cli.Validation("%w", err)
	}

	switch {
	case check && decode:
		return cli.Validation("--check and --decode are mutually exclusive")
	case decode && cfg.Filter.Verify:
		return cli.Validation("--verify applies to repair, not --decode").
			WithHint("Repair with --verify instead; it proves the output decodes back to the input.")
	}

	algorithm, err := compress.ParseAlgorithm(cfg.Filter.Compress)
	if err != nil {
		return cli.Validation("%w", err)
	}

	inputs := flagSet.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	f := &filter{
		mode:       cfg.Filter.Mode,
		bufferSize: cfg.Filter.BufferSize,
		verify:     cfg.Filter.Verify,
		decode:     decode,
		stats:      stats,
		logger:     logger,
		stdin:      stdin,
	}

	if check {
		return f.checkAll(inputs)
	}

	destination := stdout
	if cfg.Filter.Output != "" {
		file, err := os.Create(cfg.Filter.Output)
		if err != nil {
			return cli.Internal("creating output: %w", err)
		}
		defer file.Close()
		destination = file
	}

	writer, err := compress.NewWriter(destination, algorithm)
	if err != nil {
		return cli.Internal("%w", err)
	}
	for _, input := range inputs {
		if err := f.processInput(writer, input); err != nil {
			writer.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return cli.Internal("finishing %s output: %w", algorithm, err)
	}
	return nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `utf8fix repairs bytes into well-formed UTF-8, losslessly.

Every byte that is not part of a valid UTF-8 sequence becomes the
three-byte UTF-8B escape for U+DC00 plus that byte. Valid UTF-8 passes
through unchanged. --decode reverses the repair exactly.

Usage:
  utf8fix [flags] [FILE...]

With no FILE, or when FILE is -, read standard input. zstd and LZ4
input is decompressed automatically.

Examples:
  # Repair a log with stray Latin-1 bytes
  utf8fix app.log > app.utf8.log

  # Repair and prove the output decodes back to the input
  utf8fix --verify --stats dump.bin -o dump.txt

  # Restore the original bytes
  utf8fix --decode dump.txt > dump.bin

  # Fail a pipeline step when input is not UTF-8
  utf8fix --check data.csv

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
