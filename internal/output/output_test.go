// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"czanon/internal/formatters"
	_ "czanon/internal/formatters/json"
	_ "czanon/internal/formatters/text"
)

func TestPlanNextToInput(t *testing.T) {
	dir := t.TempDir()
	p := NewPlanner("", nil)

	targets, err := p.Plan(filepath.Join(dir, "smlouva.docx"), []string{"json", "text"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "smlouva_anon.docx"), targets.Document)
	assert.Equal(t, filepath.Join(dir, "smlouva_map.json"), targets.Maps["json"])
	assert.Equal(t, filepath.Join(dir, "smlouva_map.txt"), targets.Maps["text"])
	assert.False(t, targets.Timestamped)
}

func TestPlanPDFWritesText(t *testing.T) {
	targets, err := NewPlanner("out", nil).Plan("in/scan.pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "scan_anon.txt"), targets.Document)
	assert.Empty(t, targets.Maps)
}

func TestPlanLockedTargetsGetTimestamp(t *testing.T) {
	p := NewPlanner("out", nil)
	p.now = func() time.Time { return time.Date(2025, 8, 13, 9, 5, 7, 0, time.UTC) }
	p.locked = func(path string) bool { return filepath.Base(path) == "a_map.txt" }

	targets, err := p.Plan("a.txt", []string{"json", "text"})
	require.NoError(t, err)

	assert.True(t, targets.Timestamped)
	assert.Equal(t, filepath.Join("out", "a_anon_20250813_090507.txt"), targets.Document)
	assert.Equal(t, filepath.Join("out", "a_map_20250813_090507.json"), targets.Maps["json"])
	assert.Equal(t, filepath.Join("out", "a_map_20250813_090507.txt"), targets.Maps["text"])
}

func TestPlanErrors(t *testing.T) {
	_, err := NewPlanner("", nil).Plan("a.odt", nil)
	assert.Error(t, err)

	_, err = NewPlanner("", nil).Plan("a.txt", []string{"xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestIsLocked(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	assert.False(t, isLocked(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.False(t, isLocked(path))
}

func TestWriteMaps(t *testing.T) {
	dir := t.TempDir()
	targets, err := NewPlanner(filepath.Join(dir, "out"), nil).Plan("smlouva.txt", []string{"json", "text"})
	require.NoError(t, err)

	report := formatters.Report{TagMap: map[string][]string{"[[PERSON_1]]": {"Petr Novák", "Petrovi"}}}
	require.NoError(t, WriteMaps(targets, report, formatters.FormatterOptions{}))

	data, err := os.ReadFile(targets.Maps["text"])
	require.NoError(t, err)
	assert.Equal(t, "OSOBY\n-----\n[[PERSON_1]]: Petr Novák\n  - Petrovi\n\n", string(data))

	info, err := os.Stat(targets.Maps["json"])
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
