// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// utf8fix-bench times the repair entry points on generated samples.
//
// Samples come from the config file's bench.samples list, or the stock
// set: random bytes, ASCII, short and full-range Unicode, and three
// adversarial mixes. Before anything is timed, every contestant's
// output is checked byte for byte against the fixed-buffer repair; a
// contestant that disagrees fails the run.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/utf8fix/internal/cli"
	"github.com/bureau-foundation/utf8fix/lib/bench"
	"github.com/bureau-foundation/utf8fix/lib/clock"
	"github.com/bureau-foundation/utf8fix/lib/config"
	"github.com/bureau-foundation/utf8fix/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(cli.Exit(os.Stderr, run(ctx, os.Args[1:], os.Stdout, os.Stderr, clock.Real())))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, timer clock.Clock) error {
	var (
		common      cli.CommonFlags
		sampleSize  int
		runs        int
		seed        uint64
		samples     []string
		contestants []string
		format      string
		output      string
		noColor     bool
	)

	flagSet := pflag.NewFlagSet("utf8fix-bench", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVar(&sampleSize, "sample-size", 8<<20, "bytes generated per sample")
	flagSet.IntVar(&runs, "runs", 10, "timed runs per contestant and sample; the fastest and slowest are dropped when at least 3")
	flagSet.Uint64Var(&seed, "seed", 1, "seed for the sample generators")
	flagSet.StringArrayVar(&samples, "sample", nil, "only run this sample (repeatable)")
	flagSet.StringArrayVar(&contestants, "contestant", nil, "only run this contestant (repeatable)")
	flagSet.StringVar(&format, "format", config.FormatTable, "report format: table, json or cbor")
	flagSet.StringVarP(&output, "output", "o", "", "write the report to this file instead of stdout")
	flagSet.BoolVar(&noColor, "no-color", false, "plain table output even on a terminal")
	common.AddFlags(flagSet)
	flagSet.BoolP("help", "h", false, "show help")

	if len(args) > 0 && args[0] == "--version" {
		version.Print(stdout, "utf8fix-bench")
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
	if extra := flagSet.Args(); len(extra) > 0 {
		return cli.Validation("unexpected argument: %s", extra[0])
	}

	cfg, logger, err := common.Setup(stderr)
	if err != nil {
		return err
	}
	if flagSet.Changed("sample-size") {
		cfg.Bench.SampleSize = sampleSize
	}
	if flagSet.Changed("runs") {
		cfg.Bench.Runs = runs
	}
	if flagSet.Changed("seed") {
		cfg.Bench.Seed = seed
	}
	if flagSet.Changed("format") {
		cfg.Bench.Format = format
	}
	if flagSet.Changed("output") {
		cfg.Bench.Output = output
	}
	if err := cfg.Validate(); err != nil {
		return cli.Validation("%w", err)
	}

	selectedSamples, unknown := bench.SelectSamples(cfg.Samples(), samples)
	if len(unknown) > 0 {
		return cli.Validation("unknown sample: %s", strings.Join(unknown, ", "))
	}
	selectedContestants, unknown := bench.Select(bench.Contestants(), contestants)
	if len(unknown) > 0 {
		return cli.Validation("unknown contestant: %s", strings.Join(unknown, ", ")).
			WithHint("Contestants: " + strings.Join(contestantNames(), ", ") + ".")
	}

	logger.Info("generating samples",
		"samples", len(selectedSamples),
		"sample_size", cfg.Bench.SampleSize,
		"seed", cfg.Bench.Seed,
	)
	inputs, err := bench.Prepare(selectedSamples, cfg.Bench.SampleSize, cfg.Bench.Seed)
	if err != nil {
		return cli.Validation("%w", err)
	}

	runner := bench.Runner{Clock: timer, Runs: cfg.Bench.Runs, Logger: logger}
	if err := runner.Verify(inputs, selectedContestants); err != nil {
		return cli.Internal("%w", err)
	}
	report, err := runner.Run(ctx, inputs, selectedContestants)
	if err != nil {
		return cli.Internal("%w", err)
	}

	destination := stdout
	if cfg.Bench.Output != "" {
		file, err := os.Create(cfg.Bench.Output)
		if err != nil {
			return cli.Internal("creating report: %w", err)
		}
		defer file.Close()
		destination = file
	}

	switch cfg.Bench.Format {
	case config.FormatJSON:
		err = report.WriteJSON(destination)
	case config.FormatCBOR:
		err = report.WriteCBOR(destination)
	default:
		profile := termenv.Ascii
		if !noColor && cli.IsTerminal(destination) {
			profile = termenv.EnvColorProfile()
		}
		err = bench.RenderTable(destination, report, profile)
	}
	if err != nil {
		return cli.Internal("%w", err)
	}
	return nil
}

func contestantNames() []string {
	var names []string
	for _, contestant := range bench.Contestants() {
		names = append(names, contestant.Name)
	}
	return names
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `utf8fix-bench times the UTF-8 repair entry points.

Each contestant repairs each sample --runs times. Timings are sorted,
the fastest and slowest dropped, and the rest averaged. The stdlib
contestant (bytes.ToValidUTF8) is lossy and shown for reference only.

Usage:
  utf8fix-bench [flags]

Examples:
  # Default run: every sample, every contestant, 8 MiB samples
  utf8fix-bench

  # Quick comparison of two sinks on adversarial input
  utf8fix-bench --sample evil-mix --contestant fixed --contestant growable --runs 5

  # Archive a report
  utf8fix-bench --format cbor -o report.cbor

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
