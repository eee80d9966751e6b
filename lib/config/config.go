// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/utf8fix/lib/samplegen"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "UTF8FIX_CONFIG"

// Filter modes: which repair entry point utf8fix drives.
const (
	ModeAllocate = "allocate"
	ModeAppend   = "append"
	ModeFixed    = "fixed"
	ModeStream   = "stream"
)

// Output compressions accepted in filter.compress.
const (
	CompressNone = "none"
	CompressZstd = "zstd"
	CompressLZ4  = "lz4"
)

// Bench output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCBOR  = "cbor"
)

var (
	validModes     = []string{ModeAllocate, ModeAppend, ModeFixed, ModeStream}
	validCompress  = []string{CompressNone, CompressZstd, CompressLZ4}
	validFormats   = []string{FormatTable, FormatJSON, FormatCBOR}
	jsonExtensions = []string{".json", ".jsonc"}
)

// Config is the master configuration for the utf8fix binaries.
type Config struct {
	// Filter holds defaults for the utf8fix repair filter. Command-line
	// flags override every field.
	Filter FilterConfig `yaml:"filter" json:"filter"`

	// Bench holds defaults for utf8fix-bench.
	Bench BenchConfig `yaml:"bench" json:"bench"`
}

// FilterConfig configures the repair filter.
type FilterConfig struct {
	// Mode selects the repair entry point. All modes produce identical
	// output; they differ in memory behavior.
	Mode string `yaml:"mode" json:"mode"`

	// Compress selects the output compression.
	Compress string `yaml:"compress" json:"compress"`

	// Verify checks that every repaired output unescapes back to the
	// exact input bytes.
	Verify bool `yaml:"verify" json:"verify"`

	// BufferSize is the output buffer size in bytes for fixed mode. A
	// buffer smaller than six bytes cannot hold a single repair step.
	BufferSize int `yaml:"buffer_size" json:"buffer_size"`

	// Output is the default output path. Empty means stdout.
	Output string `yaml:"output" json:"output"`
}

// BenchConfig configures the benchmark driver.
type BenchConfig struct {
	// SampleSize is the generated size of each sample in bytes.
	SampleSize int `yaml:"sample_size" json:"sample_size"`

	// Runs is the number of timed runs per contestant and sample.
	Runs int `yaml:"runs" json:"runs"`

	// Seed seeds the sample generators.
	Seed uint64 `yaml:"seed" json:"seed"`

	// Format is the report format.
	Format string `yaml:"format" json:"format"`

	// Output is the report path. Empty means stdout.
	Output string `yaml:"output" json:"output"`

	// Samples replaces the stock samples when non-empty.
	Samples []samplegen.Sample `yaml:"samples,omitempty" json:"samples,omitempty"`
}

// Default returns a Config with built-in defaults.
func Default() *Config {
	return &Config{
		Filter: FilterConfig{
			Mode:       ModeAllocate,
			Compress:   CompressNone,
			BufferSize: 64 * 1024,
		},
		Bench: BenchConfig{
			SampleSize: 8 << 20,
			Runs:       10,
			Seed:       1,
			Format:     FormatTable,
		},
	}
}

// Load loads configuration from the path in UTF8FIX_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// Resolve picks the configuration source for a command: an explicit
// --config path wins, then UTF8FIX_CONFIG, then the built-in defaults.
// Configuration files are optional for both binaries.
func Resolve(flagPath string) (*Config, error) {
	switch {
	case flagPath != "":
		return LoadFile(flagPath)
	case os.Getenv(EnvironmentVariable) != "":
		return Load()
	default:
		return Default(), nil
	}
}

// LoadFile loads configuration from a specific file path. Files ending
// in .json or .jsonc are parsed as JSON with comments and trailing
// commas; anything else is parsed as YAML. Fields absent from the file
// keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.expandVariables()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if slices.Contains(jsonExtensions, strings.ToLower(filepath.Ext(path))) {
		return json.Unmarshal(jsonc.ToJSON(data), c)
	}
	return yaml.Unmarshal(data, c)
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// output paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Filter.Output = expandVars(c.Filter.Output, vars)
	c.Bench.Output = expandVars(c.Bench.Output, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. Every problem is
// reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(validModes, c.Filter.Mode) {
		errs = append(errs, fmt.Errorf("filter.mode %q must be one of: %v", c.Filter.Mode, validModes))
	}
	if !slices.Contains(validCompress, c.Filter.Compress) {
		errs = append(errs, fmt.Errorf("filter.compress %q must be one of: %v", c.Filter.Compress, validCompress))
	}
	if c.Filter.BufferSize < 6 {
		errs = append(errs, fmt.Errorf("filter.buffer_size must be at least 6, got %d", c.Filter.BufferSize))
	}

	if c.Bench.SampleSize <= 0 {
		errs = append(errs, fmt.Errorf("bench.sample_size must be positive, got %d", c.Bench.SampleSize))
	}
	if c.Bench.Runs <= 0 {
		errs = append(errs, fmt.Errorf("bench.runs must be positive, got %d", c.Bench.Runs))
	}
	if !slices.Contains(validFormats, c.Bench.Format) {
		errs = append(errs, fmt.Errorf("bench.format %q must be one of: %v", c.Bench.Format, validFormats))
	}

	seen := make(map[string]bool, len(c.Bench.Samples))
	for index, sample := range c.Bench.Samples {
		if sample.Name == "" {
			errs = append(errs, fmt.Errorf("bench.samples[%d]: name is required", index))
		} else if seen[sample.Name] {
			errs = append(errs, fmt.Errorf("bench.samples[%d]: duplicate name %q", index, sample.Name))
		}
		seen[sample.Name] = true
		if _, err := sample.Generator.Build(); err != nil {
			errs = append(errs, fmt.Errorf("bench.samples[%d] (%s): %w", index, sample.Name, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Samples returns the configured benchmark samples, or the stock set
// when none are configured.
func (c *Config) Samples() []samplegen.Sample {
	if len(c.Bench.Samples) > 0 {
		return c.Bench.Samples
	}
	return samplegen.Defaults()
}
