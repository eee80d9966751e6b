// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfoMarksDirtyBuilds(t *testing.T) {
	savedCommit, savedDirty := GitCommit, GitDirty
	t.Cleanup(func() { GitCommit, GitDirty = savedCommit, savedDirty })

	GitCommit = "abc1234"
	GitDirty = "true"
	if got := Info(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("Info() = %q, want dirty marker", got)
	}

	GitDirty = "false"
	if got := Info(); strings.Contains(got, "-dirty") {
		t.Errorf("Info() = %q, want no dirty marker", got)
	}
}

func TestFullIncludesGoVersion(t *testing.T) {
	if got := Full(); !strings.Contains(got, "Go: go") {
		t.Errorf("Full() = %q, want Go version line", got)
	}
}

func TestPrint(t *testing.T) {
	var buffer bytes.Buffer
	Print(&buffer, "utf8fix")
	got := buffer.String()
	if !strings.HasPrefix(got, "utf8fix "+Short()) || !strings.HasSuffix(got, "\n") {
		t.Errorf("Print wrote %q", got)
	}
}
