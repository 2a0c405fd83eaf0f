// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestSaveAndLoadRun(t *testing.T) {
	ctx := context.Background()
	a := openTestArchive(t)

	started := time.Date(2025, 8, 13, 9, 0, 0, 0, time.UTC)
	run := &Run{Input: "smlouva.docx", Output: "smlouva_anon.docx", Started: started, Persons: 1, Tags: 2}
	tagMap := map[string][]string{
		"[[PERSON_1]]": {"Petr Novák", "Petra Nováka", "Petrovi"},
		"[[PHONE_1]]":  {"777 111 222"},
	}
	require.NoError(t, a.Save(ctx, run, tagMap))
	require.Len(t, run.ID, 26)

	got, err := a.Run(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "smlouva.docx", got.Input)
	assert.Equal(t, 2, got.Tags)
	assert.True(t, started.Equal(got.Started))

	loaded, err := a.TagMap(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, tagMap, loaded)
}

func TestRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	a := openTestArchive(t)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, a.Save(ctx, &Run{Input: string(rune('a' + i)), Output: "o", Started: base.Add(time.Duration(i) * time.Hour)}, nil))
	}

	runs, err := a.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c", runs[0].Input)
	assert.Equal(t, "a", runs[2].Input)

	runs, err = a.Runs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	latest, err := a.Run(ctx, "latest")
	require.NoError(t, err)
	assert.Equal(t, "c", latest.Input)
}

func TestUnknownRun(t *testing.T) {
	ctx := context.Background()
	a := openTestArchive(t)

	_, err := a.Run(ctx, "01J00000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = a.TagMap(ctx, "latest")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, a.Delete(ctx, "nope"), ErrNotFound)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	a := openTestArchive(t)

	run := &Run{Input: "a.txt", Output: "a_anon.txt"}
	require.NoError(t, a.Save(ctx, run, map[string][]string{"[[DATE_1]]": {"13.08.2025"}}))
	require.NoError(t, a.Delete(ctx, run.ID))

	var n int
	require.NoError(t, a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tag_values`).Scan(&n))
	assert.Zero(t, n)
}

func TestIDsAreOrdered(t *testing.T) {
	a := openTestArchive(t)
	now := time.Now()
	first := a.NewID(now)
	second := a.NewID(now)
	assert.Less(t, first, second)
}
