// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides durable implementations of the session storage
// slot. The slot holds zero or one serialized session; absent or unparsable
// contents are both reported as session.ErrNoSession.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/universeapp/universe-tui/internal/session"
	"github.com/universeapp/universe-tui/internal/util"
)

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore persists the session as JSON in a single file, written
// atomically with owner-only permissions.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and parses the stored session.
func (f *FileStore) Load() (session.Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Session{}, session.ErrNoSession
		}
		return session.Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return session.Session{}, fmt.Errorf("%w: %v", session.ErrNoSession, err)
	}
	if !s.Valid() {
		return session.Session{}, fmt.Errorf("%w: missing identity fields", session.ErrNoSession)
	}
	return s, nil
}

// Save writes the session atomically.
func (f *FileStore) Save(s session.Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return util.AtomicWriteFile(f.path, data, 0600)
}

// Clear removes the session file.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemoryStore is an in-memory slot used in tests and throwaway sessions.
type MemoryStore struct {
	mu      sync.Mutex
	session session.Session
	present bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored session, or session.ErrNoSession when empty.
func (m *MemoryStore) Load() (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		return session.Session{}, session.ErrNoSession
	}
	return m.session, nil
}

// Save replaces the slot contents.
func (m *MemoryStore) Save(s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.present = true
	return nil
}

// Clear empties the slot.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = session.Session{}
	m.present = false
	return nil
}
