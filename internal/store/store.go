// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package store archives runs and their tag maps in SQLite so documents can be
// restored later without keeping the map files around.
package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for unknown run ids.
var ErrNotFound = errors.New("run not found")

// Run describes one anonymised document.
type Run struct {
	ID      string
	Input   string
	Output  string
	Started time.Time
	Persons int
	Tags    int
	Leaks   int
}

// Archive is a SQLite-backed run archive. It is safe for concurrent use.
type Archive struct {
	db      *sql.DB
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Open opens the archive at path, creating it when needed.
func Open(ctx context.Context, path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	// pragmas are per connection
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure archive: %w", err)
		}
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Archive{db: db, entropy: ulid.Monotonic(rand.Reader, 0)}, nil
}

// Close closes the database connection
func (a *Archive) Close() error {
	return a.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	input TEXT NOT NULL,
	output TEXT NOT NULL,
	started TEXT NOT NULL,
	persons INTEGER NOT NULL DEFAULT 0,
	tags INTEGER NOT NULL DEFAULT 0,
	leaks INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tag_values (
	run_id TEXT NOT NULL,
	tag TEXT NOT NULL,
	position INTEGER NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY(run_id, tag, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialise archive schema: %w", err)
	}
	return nil
}

// NewID returns a run id ordered by t.
func (a *Archive) NewID(t time.Time) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), a.entropy).String()
}

// Save stores run and its tag map in one transaction. An empty run.ID is filled in.
func (a *Archive) Save(ctx context.Context, run *Run, tagMap map[string][]string) error {
	if run.Started.IsZero() {
		run.Started = time.Now()
	}
	if run.ID == "" {
		run.ID = a.NewID(run.Started)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, input, output, started, persons, tags, leaks) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.Output, run.Started.UTC().Format(time.RFC3339Nano), run.Persons, run.Tags, run.Leaks,
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tag_values (run_id, tag, position, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()
	for tag, values := range tagMap {
		for i, v := range values {
			if _, err := stmt.ExecContext(ctx, run.ID, tag, i, v); err != nil {
				return fmt.Errorf("failed to insert value of %s: %w", tag, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

const runColumns = `id, input, output, started, persons, tags, leaks`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var started string
	if err := row.Scan(&r.ID, &r.Input, &r.Output, &started, &r.Persons, &r.Tags, &r.Leaks); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return Run{}, fmt.Errorf("invalid start time of run %s: %w", r.ID, err)
	}
	r.Started = t
	return r, nil
}

// Runs lists the most recent runs first. limit <= 0 lists all.
func (a *Archive) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Run returns the run with the given id. "latest" selects the most recent run.
func (a *Archive) Run(ctx context.Context, id string) (Run, error) {
	var row *sql.Row
	if id == "latest" {
		row = a.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT 1`)
	} else {
		row = a.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	}
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// TagMap returns the tag map stored for a run, values in their original order.
func (a *Archive) TagMap(ctx context.Context, id string) (map[string][]string, error) {
	run, err := a.Run(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT tag, value FROM tag_values WHERE run_id = ? ORDER BY tag, position`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag map: %w", err)
	}
	defer rows.Close()

	out := map[string][]string{}
	for rows.Next() {
		var tag, value string
		if err := rows.Scan(&tag, &value); err != nil {
			return nil, err
		}
		out[tag] = append(out[tag], value)
	}
	return out, rows.Err()
}

// Delete removes a run and its values.
func (a *Archive) Delete(ctx context.Context, id string) error {
	res, err := a.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
