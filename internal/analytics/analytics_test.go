// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package analytics

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(i int) Event {
	return Event{ID: fmt.Sprintf("e%03d", i), Name: PropertyView, Timestamp: time.Unix(int64(i), 0).UTC()}
}

func TestQueue_KeepsNewestWithinCapacity(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(NewMemoryStorage())
	for i := 0; i < 150; i++ {
		require.NoError(t, q.Append(ctx, ev(i)))
	}
	got, err := q.Events(ctx)
	require.NoError(t, err)
	require.Len(t, got, DefaultCapacity)
	assert.Equal(t, "e050", got[0].ID)
	assert.Equal(t, "e149", got[len(got)-1].ID)
	for i := 1; i < len(got); i++ {
		if !got[i-1].Timestamp.Before(got[i].Timestamp) {
			t.Fatalf("events out of order at %d", i)
		}
	}
}

func TestQueue_CustomCapacityAndKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	q := NewQueue(store, WithCapacity(3), WithKey("custom"), WithCapacity(0))
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Append(ctx, ev(i)))
	}
	got, err := q.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e002", "e003", "e004"}, ids(got))

	_, ok, _ := store.Load(ctx, QueueKey)
	assert.False(t, ok)
	_, ok, _ = store.Load(ctx, "custom")
	assert.True(t, ok)
}

func ids(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestQueue_CorruptDataReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	require.NoError(t, store.Save(ctx, QueueKey, []byte("{not json")))
	q := NewQueue(store)

	got, err := q.Events(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, q.Append(ctx, ev(1)))
	got, err = q.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e001"}, ids(got))
}

func TestQueue_Clear(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(nil)
	require.NoError(t, q.Append(ctx, ev(1)))
	require.NoError(t, q.Clear(ctx))
	got, err := q.Events(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "analytics.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	q := NewQueue(s, WithCapacity(2))
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Append(ctx, ev(i)))
	}
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	got, err := NewQueue(s).Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e001", "e002"}, ids(got))

	require.NoError(t, s.Delete(ctx, QueueKey))
	_, ok, err := s.Load(ctx, QueueKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "")
	require.Error(t, err)
}

func TestTracker_RecordsUserAndDropsEmptyValues(t *testing.T) {
	ctx := context.Background()
	user := "user-1"
	tr := NewTracker(NewQueue(nil), func() string { return user })
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	tr.TrackPropertyView(ctx, "prop-01", "")
	user = ""
	tr.TrackSearch(ctx, "plots in mysuru", map[string]any{"city": "Mysuru", "type": ""})
	tr.TrackSearch(ctx, "", nil)

	got := tr.Queue(ctx)
	require.Len(t, got, 3)

	assert.Equal(t, PropertyView, got[0].Name)
	assert.Equal(t, "user-1", got[0].UserID)
	assert.Equal(t, map[string]any{"propertyId": "prop-01"}, got[0].Data)
	assert.Equal(t, fixed, got[0].Timestamp)
	_, err := uuid.Parse(got[0].ID)
	assert.NoError(t, err)

	assert.Empty(t, got[1].UserID)
	assert.Equal(t, "plots in mysuru", got[1].Data["searchQuery"])
	assert.Equal(t, map[string]any{"city": "Mysuru"}, got[1].Data["filters"])
	assert.Nil(t, got[2].Data)

	tr.Clear(ctx)
	assert.Empty(t, tr.Queue(ctx))
}

type brokenStorage struct{}

var errBroken = errors.New("disk full")

func (brokenStorage) Load(context.Context, string) ([]byte, bool, error) { return nil, false, errBroken }
func (brokenStorage) Save(context.Context, string, []byte) error         { return errBroken }
func (brokenStorage) Delete(context.Context, string) error               { return errBroken }

func TestTracker_StorageFailuresAreNotFatal(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(brokenStorage{})
	require.ErrorIs(t, q.Append(ctx, ev(1)), errBroken)

	tr := NewTracker(q, nil)
	tr.TrackLogin(ctx, "password")
	assert.Empty(t, tr.Queue(ctx))
	tr.Clear(ctx)

	var nilTracker *Tracker
	nilTracker.Track(ctx, Logout, nil)
}
