// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package version describes the running czanon binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at link time, e.g.
//
//	go build -ldflags "-X czanon/internal/version.Version=1.4.0"
//
// Empty values fall back to the module and VCS data embedded by the toolchain.
var (
	Version   string
	GitCommit string
	BuildDate string
)

const (
	devVersion = "0.0.0-development"
	unknown    = "unknown"
)

// Build is the version record printed by "czanon version".
type Build struct {
	Version   string `yaml:"version"`
	Commit    string `yaml:"commit"`
	Date      string `yaml:"date"`
	Modified  bool   `yaml:"modified,omitempty"`
	GoVersion string `yaml:"go"`
	Platform  string `yaml:"platform"`
}

// Get returns the version record of the running binary.
func Get() Build {
	return fromBuildInfo(debug.ReadBuildInfo)
}

func fromBuildInfo(read func() (*debug.BuildInfo, bool)) Build {
	b := Build{
		Version:   Version,
		Commit:    GitCommit,
		Date:      BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info, ok := read(); ok && info != nil {
		if b.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			b.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = s.Value
				}
			case "vcs.time":
				if b.Date == "" {
					b.Date = s.Value
				}
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
	}
	if b.Version == "" {
		b.Version = devVersion
	}
	if b.Commit == "" {
		b.Commit = unknown
	}
	if b.Date == "" {
		b.Date = unknown
	}
	return b
}

// ShortCommit is the first 12 characters of the commit hash.
func (b Build) ShortCommit() string {
	if len(b.Commit) > 12 {
		return b.Commit[:12]
	}
	return b.Commit
}

func (b Build) String() string {
	commit := b.ShortCommit()
	if b.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("czanon %s (commit: %s, built: %s, go: %s, platform: %s)",
		b.Version, commit, b.Date, b.GoVersion, b.Platform)
}

// Info returns the one-line version banner.
func Info() string {
	return Get().String()
}
