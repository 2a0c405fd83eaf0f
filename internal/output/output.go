// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package output names and writes the artifacts of a run: the anonymised document
// and its tag maps.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"czanon/internal/document"
	"czanon/internal/formatters"
	"czanon/internal/observability"
)

const timestampLayout = "20060102_150405"

// Targets are the output paths of one input document.
type Targets struct {
	Document string
	// Maps holds one path per map format name.
	Maps map[string]string
	// Timestamped is set when a target was locked and every name got a suffix.
	Timestamped bool
}

// Planner decides where the outputs of a document go.
type Planner struct {
	dir      string
	observer *observability.StandardObserver
	now      func() time.Time
	locked   func(path string) bool
}

// NewPlanner creates a planner writing into dir, or next to each input when dir is
// empty.
func NewPlanner(dir string, observer *observability.StandardObserver) *Planner {
	if observer == nil {
		observer = observability.Nop()
	}
	return &Planner{dir: dir, observer: observer, now: time.Now, locked: isLocked}
}

// Plan returns <base>_anon.<ext> plus <base>_map.<ext> for each map format. When any
// of them exists and cannot be opened for writing, all names get a
// _YYYYMMDD_HHMMSS suffix.
func (p *Planner) Plan(input string, mapFormats []string) (Targets, error) {
	finishTiming := p.observer.StartTiming("output", "plan", input)

	format, err := document.FormatOf(input)
	if err != nil {
		finishTiming(false, nil)
		return Targets{}, err
	}
	exts := make(map[string]string, len(mapFormats))
	for _, name := range mapFormats {
		f, ok := formatters.Get(name)
		if !ok {
			finishTiming(false, nil)
			return Targets{}, fmt.Errorf("unsupported map format '%s'. Available formats: %s",
				name, strings.Join(formatters.List(), ", "))
		}
		exts[name] = f.FileExtension()
	}

	dir := p.dir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	build := func(suffix string) Targets {
		t := Targets{
			Document: filepath.Join(dir, base+"_anon"+suffix+format.OutputExtension()),
			Maps:     make(map[string]string, len(exts)),
		}
		for name, ext := range exts {
			t.Maps[name] = filepath.Join(dir, base+"_map"+suffix+ext)
		}
		return t
	}

	targets := build("")
	if p.anyLocked(targets) {
		targets = build("_" + p.now().Format(timestampLayout))
		targets.Timestamped = true
	}
	finishTiming(true, map[string]interface{}{"timestamped": targets.Timestamped})
	return targets, nil
}

func (p *Planner) anyLocked(t Targets) bool {
	if p.locked(t.Document) {
		return true
	}
	for _, path := range t.Maps {
		if p.locked(path) {
			return true
		}
	}
	return false
}

// isLocked reports whether path exists but cannot be opened for writing.
func isLocked(path string) bool {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return !errors.Is(err, fs.ErrNotExist)
	}
	f.Close()
	return false
}

// WriteMaps renders report once per map target. Map files hold personal data and
// are created readable by the owner only.
func WriteMaps(t Targets, report formatters.Report, options formatters.FormatterOptions) error {
	for name, path := range t.Maps {
		opts := options
		opts.NoColor = true
		content, err := formatters.Export(name, report, opts)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return fmt.Errorf("failed to write %s map: %w", name, err)
		}
	}
	return nil
}
