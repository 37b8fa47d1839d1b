// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/universeapp/universe-tui/internal/session"
)

func testSession() session.Session {
	return session.Session{
		ID:         "u-1",
		Name:       "Ada Lovelace",
		Email:      "ada@example.edu",
		University: "Analytical U",
	}
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	_, err := fs.Load()
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	want := testSession()

	require.NoError(t, fs.Save(want))
	got, err := fs.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFileStore_SavePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not meaningful on Windows")
	}

	path := filepath.Join(t.TempDir(), "session.json")
	fs := NewFileStore(path)
	require.NoError(t, fs.Save(testSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_LoadCorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": "u-1", garbage`), 0600))

	fs := NewFileStore(path)
	_, err := fs.Load()
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestFileStore_LoadMissingIdentityFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	// Parses fine but lacks required fields.
	require.NoError(t, os.WriteFile(path, []byte(`{"id": "u-1"}`), 0600))

	fs := NewFileStore(path)
	_, err := fs.Load()
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestFileStore_ClearIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	fs := NewFileStore(path)

	require.NoError(t, fs.Save(testSession()))
	require.NoError(t, fs.Clear())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Clearing an already-empty slot is fine.
	require.NoError(t, fs.Clear())
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ms := NewMemoryStore()

	_, err := ms.Load()
	require.ErrorIs(t, err, session.ErrNoSession)

	want := testSession()
	require.NoError(t, ms.Save(want))
	got, err := ms.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)

	require.NoError(t, ms.Clear())
	_, err = ms.Load()
	require.ErrorIs(t, err, session.ErrNoSession)
}
