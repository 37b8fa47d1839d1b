// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), maxEntries)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndRecent(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, s.Record(ctx, Visit{
		Kind: KindClass, ItemID: "c-1", Title: "Algorithms", Subtitle: "State U", ViewedAt: base,
	}))
	require.NoError(t, s.Record(ctx, Visit{
		Kind: KindDiscussion, ItemID: "d-1", Title: "Homework 3 question", ViewedAt: base.Add(time.Minute),
	}))

	visits, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	require.Equal(t, "d-1", visits[0].ItemID)
	require.Equal(t, "c-1", visits[1].ItemID)
	require.Equal(t, "State U", visits[1].Subtitle)
}

func TestStore_RecordBumpsRecency(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, s.Record(ctx, Visit{Kind: KindClass, ItemID: "c-1", Title: "Algorithms", ViewedAt: base}))
	require.NoError(t, s.Record(ctx, Visit{Kind: KindClass, ItemID: "c-2", Title: "Databases", ViewedAt: base.Add(time.Minute)}))

	// Revisiting c-1 moves it to the top without duplicating it.
	require.NoError(t, s.Record(ctx, Visit{Kind: KindClass, ItemID: "c-1", Title: "Algorithms II", ViewedAt: base.Add(2 * time.Minute)}))

	visits, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	require.Equal(t, "c-1", visits[0].ItemID)
	require.Equal(t, "Algorithms II", visits[0].Title)
}

func TestStore_PruneRespectsCap(t *testing.T) {
	s := openTestStore(t, 5)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		require.NoError(t, s.Record(ctx, Visit{
			Kind:     KindDiscussion,
			ItemID:   fmt.Sprintf("d-%d", i),
			Title:    fmt.Sprintf("Discussion %d", i),
			ViewedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	visits, err := s.Recent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, visits, 5)
	// Newest survive.
	require.Equal(t, "d-7", visits[0].ItemID)
	require.Equal(t, "d-3", visits[4].ItemID)
}

func TestStore_Search(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Visit{Kind: KindClass, ItemID: "c-1", Title: "Linear Algebra"}))
	require.NoError(t, s.Record(ctx, Visit{Kind: KindClass, ItemID: "c-2", Title: "Algorithms"}))
	require.NoError(t, s.Record(ctx, Visit{Kind: KindDiscussion, ItemID: "d-1", Title: "Office hours?"}))

	visits, err := s.Search(ctx, "alg", 10)
	require.NoError(t, err)
	require.Len(t, visits, 2)

	visits, err = s.Search(ctx, "office", 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	require.Equal(t, "d-1", visits[0].ItemID)
}

func TestStore_ForgetAndClear(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Visit{Kind: KindClass, ItemID: "c-1", Title: "Algorithms"}))
	require.NoError(t, s.Record(ctx, Visit{Kind: KindClass, ItemID: "c-2", Title: "Databases"}))

	require.NoError(t, s.Forget(ctx, KindClass, "c-1"))
	visits, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)

	require.NoError(t, s.ClearAll(ctx))
	visits, err = s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, visits)
}

func TestStore_RejectsIncompleteVisit(t *testing.T) {
	s := openTestStore(t, 0)
	require.Error(t, s.Record(context.Background(), Visit{Title: "no identity"}))
}
