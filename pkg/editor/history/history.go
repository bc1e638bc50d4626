// Package history keeps a log of saved and exported maps in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Kinds of recorded events
const (
	KindSave   = "save"
	KindExport = "export"
	KindNew    = "new"
)

// Entry is one recorded event
type Entry struct {
	ID            int64
	Time          time.Time
	Kind          string
	Path          string
	VariableCount int
	Groups        int
}

// History records every save and export to a SQLite database.
type History struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and ensures the
// map_history table exists.
func New(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("history: create dir: %w", err)
	}
	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS map_history (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		ts             TEXT    NOT NULL,
		kind           TEXT    NOT NULL,
		path           TEXT    NOT NULL,
		variable_count INTEGER NOT NULL,
		group_count    INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create table: %w", err)
	}
	return &History{db: db}, nil
}

// Record inserts one row.
func (h *History) Record(ctx context.Context, e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	ts := e.Time.UTC().Format(time.RFC3339Nano)
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO map_history (ts, kind, path, variable_count, group_count) VALUES (?, ?, ?, ?, ?)`,
		ts, e.Kind, e.Path, e.VariableCount, e.Groups,
	)
	if err != nil {
		return fmt.Errorf("history: record: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (h *History) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, ts, kind, path, variable_count, group_count FROM map_history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Kind, &e.Path, &e.VariableCount, &e.Groups); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		if e.Time, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("history: bad timestamp %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database connection.
func (h *History) Close() error {
	return h.db.Close()
}
