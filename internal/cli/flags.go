// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/utf8fix/lib/config"
)

// CommonFlags are the flags every utf8fix binary accepts.
type CommonFlags struct {
	ConfigPath string
	EnvFiles   []string
	LogFormat  string
	LogLevel   string
}

// AddFlags registers the common flags on flagSet.
func (c *CommonFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.ConfigPath, "config", "", "config file (YAML, or JSON with comments for .json/.jsonc; default: $"+config.EnvironmentVariable+")")
	flagSet.StringArrayVar(&c.EnvFiles, "env-file", nil, "load environment variables from a dotenv file before reading config (repeatable)")
	flagSet.StringVar(&c.LogFormat, "log-format", LogFormatAuto, "log format: auto, text or json")
	flagSet.StringVar(&c.LogLevel, "log-level", "info", "minimum log level: debug, info, warn or error")
}

// Setup loads env files, then the configuration, then builds the
// logger on stderr. Callers apply flag overrides to the returned config
// and then call Validate.
func (c *CommonFlags) Setup(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	if err := LoadEnvFiles(c.EnvFiles...); err != nil {
		return nil, nil, err
	}

	logger, err := NewLogger(stderr, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Resolve(c.ConfigPath)
	if err != nil {
		return nil, nil, Validation("%w", err).
			WithHint("Pass --config with a readable file, or unset " + config.EnvironmentVariable + ".")
	}
	return cfg, logger, nil
}

// LoadEnvFiles loads dotenv files into the process environment.
// Variables already set in the environment are not overridden, so an
// explicit export always wins over a file.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return Validation("loading --env-file: %w", err)
	}
	return nil
}
