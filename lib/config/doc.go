// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the utf8fix
// binaries.
//
// Configuration is loaded from a single file specified by either the
// UTF8FIX_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). [Resolve] applies that precedence and falls back
// to [Default] when neither is given. There is no ~/.config discovery
// and no automatic file search.
//
// Files ending in .json or .jsonc are read as JSON with comments;
// everything else is YAML:
//
//	filter:
//	  mode: stream
//	  compress: zstd
//	  verify: true
//	  output: ${HOME}/repaired.txt.zst
//	bench:
//	  runs: 20
//	  samples:
//	    - name: latin1
//	      generator: {kind: bytes, lo: 0x20, hi: 0xff}
//
// Variable expansion is performed on output paths after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. Flags override
// every value.
package config
