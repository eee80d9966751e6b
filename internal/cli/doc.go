// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the plumbing shared by the utf8fix binaries:
// categorized errors, exit codes, logger construction, and the flags
// every binary accepts.
//
// A binary's main function calls run() and maps the result:
//
//	if err := run(); err != nil {
//	    os.Exit(cli.Exit(os.Stderr, err))
//	}
//
// [ExitError] carries a handled non-zero exit (utf8fix --check on
// invalid input), printed nowhere. [ToolError] carries a category and
// an optional hint that is printed under the message.
package cli
