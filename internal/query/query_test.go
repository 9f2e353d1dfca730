// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package query

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

// instantSleep records requested delays without waiting.
func instantSleep(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestQuery_RetryBoundAndLinearBackoff(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	var onErr []error
	n := &recordingNotifier{}

	q := NewQuery(QueryOptions[string]{
		QueryFn: func(ctx context.Context) (string, error) {
			calls++
			return "", boom
		},
		RetryCount: 2,
		OnError:    func(err error) { onErr = append(onErr, err) },
		Notifier:   n,
	})
	var delays []time.Duration
	q.sleep = instantSleep(&delays)

	st := q.Execute(context.Background())

	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
	assert.ErrorIs(t, st.Error, boom)
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsRefetching)
	assert.False(t, st.HasData)
	require.Len(t, onErr, 1)
	require.Len(t, n.all(), 1)
	assert.Equal(t, Notification{Title: "Error", Description: "boom", Variant: VariantDestructive}, n.all()[0])
}

func TestQuery_RefetchClearsErrorAndResetsBudget(t *testing.T) {
	fail := true
	calls := 0
	q := NewQuery(QueryOptions[int]{
		QueryFn: func(ctx context.Context) (int, error) {
			calls++
			if fail {
				return 0, errors.New("down")
			}
			return 42, nil
		},
		RetryCount:     1,
		ShowErrorToast: Bool(false),
	})
	var delays []time.Duration
	q.sleep = instantSleep(&delays)

	st := q.Execute(context.Background())
	require.Error(t, st.Error)
	assert.Equal(t, 1, st.RetryCount)
	assert.Equal(t, 2, calls)

	fail = false
	st = q.Refetch(context.Background())
	assert.NoError(t, st.Error)
	assert.True(t, st.HasData)
	assert.Equal(t, 42, st.Data)
	assert.Equal(t, 0, st.RetryCount)

	// full budget again on the next failure
	fail = true
	calls = 0
	st = q.Refetch(context.Background())
	assert.Equal(t, 2, calls)
	assert.Error(t, st.Error)
	// stale data stays visible
	assert.Equal(t, 42, st.Data)
}

func TestQuery_EnabledGating(t *testing.T) {
	calls := 0
	q := NewQuery(QueryOptions[string]{
		QueryFn: func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		},
		Enabled: Bool(false),
	})
	assert.False(t, q.State().IsLoading)

	st := q.Execute(context.Background())
	assert.Equal(t, 0, calls)
	assert.False(t, st.IsLoading)
	assert.False(t, st.HasData)

	st = q.SetEnabled(context.Background(), true)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "ok", st.Data)

	// already enabled: no extra run
	q.SetEnabled(context.Background(), true)
	assert.Equal(t, 1, calls)
}

func TestQuery_OnSuccessAfterStateUpdate(t *testing.T) {
	var q *Query[string]
	var seen QueryState[string]
	q = NewQuery(QueryOptions[string]{
		QueryFn:   func(ctx context.Context) (string, error) { return "v", nil },
		OnSuccess: func(string) { seen = q.State() },
	})
	q.Execute(context.Background())
	assert.Equal(t, "v", seen.Data)
	assert.False(t, seen.IsLoading)
}

func TestQuery_PanicNormalized(t *testing.T) {
	t.Run("non-error value", func(t *testing.T) {
		q := NewQuery(QueryOptions[int]{
			QueryFn: func(ctx context.Context) (int, error) { panic("nope") },
		})
		st := q.Execute(context.Background())
		assert.ErrorIs(t, st.Error, ErrUnknown)
	})
	t.Run("error value", func(t *testing.T) {
		sentinel := errors.New("typed")
		q := NewQuery(QueryOptions[int]{
			QueryFn: func(ctx context.Context) (int, error) { panic(sentinel) },
		})
		st := q.Execute(context.Background())
		assert.ErrorIs(t, st.Error, sentinel)
	})
}

func TestQuery_EmptyMessageUsesFallback(t *testing.T) {
	n := &recordingNotifier{}
	q := NewQuery(QueryOptions[int]{
		QueryFn:  func(ctx context.Context) (int, error) { return 0, errors.New("") },
		Notifier: n,
	})
	q.Execute(context.Background())
	require.Len(t, n.all(), 1)
	assert.Equal(t, "Failed to fetch data", n.all()[0].Description)
}

func TestQuery_RetryIfStopsEarly(t *testing.T) {
	calls := 0
	permanent := errors.New("permanent")
	q := NewQuery(QueryOptions[int]{
		QueryFn: func(ctx context.Context) (int, error) {
			calls++
			return 0, permanent
		},
		RetryCount: 3,
		RetryIf:    func(err error) bool { return !errors.Is(err, permanent) },
	})
	var delays []time.Duration
	q.sleep = instantSleep(&delays)
	q.Execute(context.Background())
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestQuery_ContextCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	q := NewQuery(QueryOptions[int]{
		QueryFn: func(ctx context.Context) (int, error) {
			calls++
			cancel()
			return 0, errors.New("flaky")
		},
		RetryCount: 5,
		RetryDelay: time.Hour,
	})
	st := q.Execute(ctx)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, st.Error, context.Canceled)
}

func TestQuery_DisposeDropsLateResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	successCalls := 0
	q := NewQuery(QueryOptions[string]{
		QueryFn: func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "late", nil
		},
		OnSuccess: func(string) { successCalls++ },
	})

	done := make(chan QueryState[string])
	go func() { done <- q.Execute(context.Background()) }()
	<-started
	q.Dispose()
	close(release)
	st := <-done

	assert.False(t, st.HasData)
	assert.Equal(t, 0, successCalls)
}

func TestQuery_DisposeAbortsBackoff(t *testing.T) {
	calls := 0
	q := NewQuery(QueryOptions[int]{
		QueryFn: func(ctx context.Context) (int, error) {
			calls++
			return 0, errors.New("x")
		},
		RetryCount: 3,
		RetryDelay: time.Hour,
	})
	done := make(chan struct{})
	go func() {
		q.Execute(context.Background())
		close(done)
	}()
	// wait until the first attempt has consumed retry budget
	require.Eventually(t, func() bool { return q.State().RetryCount == 1 }, time.Second, time.Millisecond)
	q.Dispose()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("execute did not return after dispose")
	}
	assert.Equal(t, 1, calls)
}

func TestQuery_RefetchSetsRefetchingNotLoading(t *testing.T) {
	var during QueryState[int]
	var q *Query[int]
	first := true
	q = NewQuery(QueryOptions[int]{
		QueryFn: func(ctx context.Context) (int, error) {
			if !first {
				during = q.State()
			}
			first = false
			return 1, nil
		},
	})
	q.Execute(context.Background())
	q.Refetch(context.Background())
	assert.True(t, during.IsRefetching)
	assert.False(t, during.IsLoading)
	assert.Equal(t, 1, during.Data)
}

func TestQuery_RefetchAsFirstCallIsNotLoading(t *testing.T) {
	var during QueryState[int]
	var q *Query[int]
	q = NewQuery(QueryOptions[int]{
		QueryFn: func(ctx context.Context) (int, error) {
			during = q.State()
			return 7, nil
		},
	})
	assert.False(t, q.State().IsLoading, "nothing has run yet")

	st := q.Refetch(context.Background())
	assert.True(t, during.IsRefetching)
	assert.False(t, during.IsLoading)
	assert.False(t, st.IsRefetching)
	assert.Equal(t, 7, st.Data)
}
