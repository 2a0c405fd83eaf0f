// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withLinkValues(t *testing.T, version, commit, date string) {
	t.Helper()
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = oldVersion, oldCommit, oldDate
	})
}

func buildInfo(version string, settings ...debug.BuildSetting) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Path: "czanon", Version: version}, Settings: settings}, true
	}
}

func TestLinkTimeValuesWin(t *testing.T) {
	withLinkValues(t, "1.4.0", "abc123", "2025-08-13")

	b := fromBuildInfo(buildInfo("v0.9.0", debug.BuildSetting{Key: "vcs.revision", Value: "fff"}))
	assert.Equal(t, "1.4.0", b.Version)
	assert.Equal(t, "abc123", b.Commit)
	assert.Equal(t, "2025-08-13", b.Date)
}

func TestFallsBackToBuildInfo(t *testing.T) {
	withLinkValues(t, "", "", "")

	b := fromBuildInfo(buildInfo("v0.4.0",
		debug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		debug.BuildSetting{Key: "vcs.time", Value: "2025-08-13T10:00:00Z"},
		debug.BuildSetting{Key: "vcs.modified", Value: "true"},
	))
	assert.Equal(t, "v0.4.0", b.Version)
	assert.Equal(t, "2025-08-13T10:00:00Z", b.Date)
	assert.True(t, b.Modified)
	assert.Contains(t, b.String(), "commit: 0123456789ab-dirty")
}

func TestDevelopmentBuild(t *testing.T) {
	withLinkValues(t, "", "", "")

	b := fromBuildInfo(buildInfo("(devel)"))
	assert.Equal(t, devVersion, b.Version)
	assert.Equal(t, unknown, b.Commit)

	b = fromBuildInfo(func() (*debug.BuildInfo, bool) { return nil, false })
	assert.Equal(t, devVersion, b.Version)
	assert.Equal(t, unknown, b.Date)
}

func TestInfo(t *testing.T) {
	assert.True(t, strings.HasPrefix(Info(), "czanon "))
	assert.Contains(t, Info(), "platform: "+Get().Platform)
}
