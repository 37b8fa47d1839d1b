// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records recently viewed forum items in a local SQLite
// database, so the home view can offer "jump back in" entries across
// restarts. The history is a local convenience only; clearing it never
// affects the account.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Kind categorizes a visited item.
type Kind string

const (
	KindClass      Kind = "class"
	KindDiscussion Kind = "discussion"
	KindGroup      Kind = "group"
)

// DefaultMaxEntries caps the table size; the oldest visits are pruned past
// this.
const DefaultMaxEntries = 200

const schema = `
CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    item_id TEXT NOT NULL,
    title TEXT NOT NULL,
    subtitle TEXT,
    viewed_at INTEGER NOT NULL,  -- Unix timestamp
    UNIQUE(kind, item_id)
);

CREATE INDEX IF NOT EXISTS idx_visits_viewed_at ON visits(viewed_at);
`

// Visit is one recently viewed item.
type Visit struct {
	Kind     Kind
	ItemID   string
	Title    string
	Subtitle string
	ViewedAt time.Time
}

// Store is the visit history database. Safe for concurrent use.
type Store struct {
	db         *sql.DB
	mu         sync.Mutex
	maxEntries int
}

// Open opens (creating if needed) the history database at path.
func Open(path string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record upserts a visit, bumping its recency if the item was seen before,
// then prunes past the entry cap.
func (s *Store) Record(ctx context.Context, v Visit) error {
	if v.Kind == "" || v.ItemID == "" {
		return errors.New("visit requires kind and item id")
	}
	if v.ViewedAt.IsZero() {
		v.ViewedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visits (kind, item_id, title, subtitle, viewed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(kind, item_id) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			viewed_at = excluded.viewed_at`,
		string(v.Kind), v.ItemID, v.Title, v.Subtitle, v.ViewedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}

	return s.prune(ctx)
}

// Recent returns up to limit visits, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, item_id, title, subtitle, viewed_at
		FROM visits
		ORDER BY viewed_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	return scanVisits(rows)
}

// Search returns visits whose title matches the query, newest first.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, item_id, title, subtitle, viewed_at
		FROM visits
		WHERE title LIKE '%' || ? || '%'
		ORDER BY viewed_at DESC, id DESC
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search visits: %w", err)
	}
	defer rows.Close()

	return scanVisits(rows)
}

// Forget removes a single item from the history.
func (s *Store) Forget(ctx context.Context, kind Kind, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM visits WHERE kind = ? AND item_id = ?`, string(kind), itemID)
	if err != nil {
		return fmt.Errorf("failed to forget visit: %w", err)
	}
	return nil
}

// ClearAll erases the whole history.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM visits`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// prune deletes the oldest visits beyond the entry cap. Caller holds the
// lock.
func (s *Store) prune(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM visits WHERE id IN (
			SELECT id FROM visits
			ORDER BY viewed_at DESC, id DESC
			LIMIT -1 OFFSET ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to prune visits: %w", err)
	}
	return nil
}

func scanVisits(rows *sql.Rows) ([]Visit, error) {
	var visits []Visit
	for rows.Next() {
		var (
			v        Visit
			kind     string
			subtitle sql.NullString
			viewedAt int64
		)
		if err := rows.Scan(&kind, &v.ItemID, &v.Title, &subtitle, &viewedAt); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		v.Kind = Kind(kind)
		v.Subtitle = subtitle.String
		v.ViewedAt = time.Unix(viewedAt, 0)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
