// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/utf8fix/internal/cli"
	"github.com/bureau-foundation/utf8fix/lib/compress"
	"github.com/bureau-foundation/utf8fix/lib/config"
	"github.com/bureau-foundation/utf8fix/lib/fixutf8"
	"github.com/bureau-foundation/utf8fix/lib/samplegen"
	"github.com/bureau-foundation/utf8fix/lib/testutil"
)

type invocation struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// invoke runs the command with stdin and JSON logs, isolated from any
// config in the caller's environment.
func invoke(t *testing.T, stdin []byte, args ...string) (*invocation, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
	result := &invocation{}
	args = append([]string{"--log-format", "json"}, args...)
	err := run(args, bytes.NewReader(stdin), &result.stdout, &result.stderr)
	return result, err
}

func evilSample(t *testing.T) []byte {
	t.Helper()
	for _, sample := range samplegen.Defaults() {
		if sample.Name == "evil-mix" {
			generator, err := sample.Generator.Build()
			if err != nil {
				t.Fatal(err)
			}
			return samplegen.Generate(32*1024, 3, generator)
		}
	}
	t.Fatal("evil-mix sample missing")
	return nil
}

func TestRepairStdin(t *testing.T) {
	result, err := invoke(t, []byte("a\xffb"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	testutil.RequireBytes(t, result.stdout.Bytes(), testutil.Hex(t, "61 ED B3 BF 62"))
}

func TestModesProduceIdenticalOutput(t *testing.T) {
	input := evilSample(t)
	want := fixutf8.RepairAllocate(input)

	for _, arguments := range [][]string{
		{"--mode", "allocate"},
		{"--mode", "append"},
		{"--mode", "fixed"},
		{"--mode", "fixed", "--buffer-size", "7"},
		{"--mode", "stream"},
	} {
		t.Run(strings.Join(arguments, " "), func(t *testing.T) {
			result, err := invoke(t, input, arguments...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			testutil.RequireBytes(t, result.stdout.Bytes(), want)
		})
	}
}

func TestDecodeRestoresInput(t *testing.T) {
	input := evilSample(t)
	repaired, err := invoke(t, input)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	decoded, err := invoke(t, repaired.stdout.Bytes(), "--decode")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	testutil.RequireBytes(t, decoded.stdout.Bytes(), input)
}

func TestVerifyAndStats(t *testing.T) {
	result, err := invoke(t, []byte("caf\xe9 ok"), "--verify", "--stats", "--mode", "stream")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(result.stderr.Bytes(), &record); err != nil {
		t.Fatalf("stats log is not a single JSON record: %v\n%s", err, result.stderr.String())
	}
	if record["msg"] != "processed" || record["input"] != "-" {
		t.Errorf("record = %v", record)
	}
	if record["bytes_in"] != float64(7) || record["bytes_out"] != float64(9) || record["escaped"] != float64(1) {
		t.Errorf("counts = %v/%v/%v", record["bytes_in"], record["bytes_out"], record["escaped"])
	}
}

func TestFilesAreConcatenated(t *testing.T) {
	first := testutil.WriteFile(t, "first.txt", []byte("one\xc3"))
	second := testutil.WriteFile(t, "second.txt", []byte("\xa9two"))

	result, err := invoke(t, []byte("-mid-"), first, "-", second)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// Each input is repaired on its own: a sequence split across files
	// is escaped, not joined.
	want := "one\xed\xb3\x83-mid-\xed\xb2\xa9two"
	if got := result.stdout.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCompressedInputAndOutput(t *testing.T) {
	input := evilSample(t)
	want := fixutf8.RepairAllocate(input)

	lz4Input, err := compress.Compress(input, compress.LZ4)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	result, err := invoke(t, lz4Input, "--compress", "zstd", "--verify")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if compress.Detect(result.stdout.Bytes()) != compress.Zstd {
		t.Fatalf("output is not a zstd frame")
	}
	content, err := compress.Decompress(result.stdout.Bytes())
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	testutil.RequireBytes(t, content, want)
}

func TestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	result, err := invoke(t, []byte("\x80"), "--output", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", result.stdout.String())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBytes(t, content, testutil.Hex(t, "ED B2 80"))
}

func TestCheck(t *testing.T) {
	if _, err := invoke(t, []byte("valid é"), "--check"); err != nil {
		t.Errorf("valid input: %v", err)
	}

	result, err := invoke(t, []byte("bad \xff"), "--check")
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 1 {
		t.Fatalf("invalid input: err = %v, want exit 1", err)
	}
	if result.stdout.Len() != 0 {
		t.Errorf("--check wrote output %q", result.stdout.String())
	}
	if !strings.Contains(result.stderr.String(), "not valid UTF-8") {
		t.Errorf("stderr = %s", result.stderr.String())
	}
}

func TestConfigSuppliesDefaults(t *testing.T) {
	configPath := testutil.WriteFile(t, "utf8fix.yaml", []byte("filter:\n  mode: fixed\n  buffer_size: 6\n  compress: lz4\n"))
	result, err := invoke(t, []byte("x\xfey"), "--config", configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err := compress.Decompress(result.stdout.Bytes())
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	testutil.RequireBytes(t, content, testutil.Hex(t, "78 ED B3 BE 79"))

	// Flags override the file.
	result, err = invoke(t, []byte("x\xfey"), "--config", configPath, "--compress", "none")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	testutil.RequireBytes(t, result.stdout.Bytes(), testutil.Hex(t, "78 ED B3 BE 79"))
}

func TestValidationErrors(t *testing.T) {
	for _, arguments := range [][]string{
		{"--mode", "turbo"},
		{"--compress", "gzip"},
		{"--buffer-size", "3", "--mode", "fixed"},
		{"--check", "--decode"},
		{"--decode", "--verify"},
		{"--no-such-flag"},
	} {
		t.Run(strings.Join(arguments, " "), func(t *testing.T) {
			_, err := invoke(t, nil, arguments...)
			var toolErr *cli.ToolError
			if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryValidation {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestMissingInputFile(t *testing.T) {
	_, err := invoke(t, nil, filepath.Join(t.TempDir(), "absent"))
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryInternal {
		t.Errorf("err = %v, want internal error", err)
	}
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"--version"}, nil, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "utf8fix ") {
		t.Errorf("version output = %q", stdout.String())
	}
}
