// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package query

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// DefaultRetryDelay is the base unit of the linear retry backoff.
const DefaultRetryDelay = time.Second

// QueryFunc performs an idempotent read.
type QueryFunc[T any] func(ctx context.Context) (T, error)

// QueryOptions configures a Query.
//
// Zero values select the defaults: enabled, no retries, one second base
// delay, every failure retryable and error notifications on.
type QueryOptions[T any] struct {
	QueryFn QueryFunc[T]

	Enabled   *bool
	OnSuccess func(data T)
	OnError   func(err error)

	// RetryCount bounds the automatic re-attempts after the first failure.
	RetryCount int
	// RetryDelay is multiplied by the attempt number before each retry.
	RetryDelay time.Duration
	// RetryIf reports whether a failure may be retried. Nil retries everything.
	RetryIf func(err error) bool

	ShowErrorToast *bool
	Notifier       Notifier
}

// QueryState is a snapshot of a Query's lifecycle.
type QueryState[T any] struct {
	Data         T
	HasData      bool
	IsLoading    bool
	IsRefetching bool
	Error        error
	RetryCount   int
}

// Query wraps a read operation with loading, error and retry bookkeeping.
//
// All state transitions go through apply and are dropped once Dispose has
// been called. Overlapping Refetch calls are not de-duplicated; the last one
// to finish determines the final state.
type Query[T any] struct {
	opts     QueryOptions[T]
	notifier Notifier

	mu       sync.Mutex
	state    QueryState[T]
	enabled  bool
	disposed bool
	stop     chan struct{}

	// sleep waits between attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewQuery builds an idle Query. Nothing runs, and IsLoading stays false,
// until Execute, Refetch or SetEnabled.
func NewQuery[T any](opts QueryOptions[T]) *Query[T] {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.RetryCount < 0 {
		opts.RetryCount = 0
	}
	q := &Query[T]{
		opts:     opts,
		notifier: notifierOrNop(opts.Notifier),
		enabled:  boolOr(opts.Enabled, true),
		stop:     make(chan struct{}),
	}
	q.sleep = q.wait
	return q
}

// Execute runs the initial attempt, including any retries, and returns the
// resulting state. Failures are recorded in the state, never returned.
func (q *Query[T]) Execute(ctx context.Context) QueryState[T] {
	return q.run(ctx, false)
}

// Refetch resets the retry budget and runs the query again. Previously
// loaded data stays visible until the new attempt settles.
func (q *Query[T]) Refetch(ctx context.Context) QueryState[T] {
	q.apply(func(s *QueryState[T]) { s.RetryCount = 0 })
	return q.run(ctx, true)
}

// SetEnabled toggles execution. Turning a disabled query on runs it once.
func (q *Query[T]) SetEnabled(ctx context.Context, enabled bool) QueryState[T] {
	q.mu.Lock()
	was := q.enabled
	q.enabled = enabled
	disposed := q.disposed
	q.mu.Unlock()

	if enabled && !was && !disposed {
		return q.run(ctx, false)
	}
	if !enabled {
		q.apply(func(s *QueryState[T]) { s.IsLoading = false })
	}
	return q.State()
}

// State returns a copy of the current state.
func (q *Query[T]) State() QueryState[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Dispose detaches the query. Pending waits abort and late results are discarded.
func (q *Query[T]) Dispose() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.disposed {
		return
	}
	q.disposed = true
	close(q.stop)
}

func (q *Query[T]) run(ctx context.Context, refetch bool) QueryState[T] {
	q.mu.Lock()
	enabled := q.enabled
	q.mu.Unlock()

	if !enabled {
		q.apply(func(s *QueryState[T]) { s.IsLoading = false })
		return q.State()
	}

	for {
		if !q.apply(func(s *QueryState[T]) {
			if refetch {
				s.IsRefetching = true
			} else {
				s.IsLoading = true
			}
			s.Error = nil
		}) {
			return q.State()
		}

		data, err := q.call(ctx)
		if err == nil {
			q.succeed(data)
			return q.State()
		}

		attempt, retry := q.nextAttempt(err)
		if retry {
			delay := q.opts.RetryDelay * time.Duration(attempt)
			tflog.Debug(ctx, "query attempt failed; retry scheduled", map[string]interface{}{
				"attempt": attempt,
				"max":     q.opts.RetryCount,
				"delay":   delay.String(),
				"error":   err.Error(),
			})
			if werr := q.sleep(ctx, delay); werr != nil {
				err = werr
			} else {
				continue
			}
		}
		q.fail(ctx, err)
		return q.State()
	}
}

func (q *Query[T]) call(ctx context.Context) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			data, err = zero, normalizePanic(r)
		}
	}()
	return q.opts.QueryFn(ctx)
}

// nextAttempt consumes one unit of retry budget when err is retryable.
func (q *Query[T]) nextAttempt(err error) (int, bool) {
	if q.opts.RetryIf != nil && !q.opts.RetryIf(err) {
		return 0, false
	}
	attempt := 0
	ok := q.apply(func(s *QueryState[T]) {
		if s.RetryCount < q.opts.RetryCount {
			s.RetryCount++
			attempt = s.RetryCount
		}
	})
	return attempt, ok && attempt > 0
}

func (q *Query[T]) succeed(data T) {
	if !q.apply(func(s *QueryState[T]) {
		s.Data = data
		s.HasData = true
		s.Error = nil
		s.IsLoading = false
		s.IsRefetching = false
	}) {
		return
	}
	if q.opts.OnSuccess != nil {
		q.opts.OnSuccess(data)
	}
}

func (q *Query[T]) fail(ctx context.Context, err error) {
	if !q.apply(func(s *QueryState[T]) {
		s.Error = err
		s.IsLoading = false
		s.IsRefetching = false
	}) {
		tflog.Debug(ctx, "query disposed; dropping terminal failure", map[string]interface{}{"error": err.Error()})
		return
	}
	if boolOr(q.opts.ShowErrorToast, true) {
		q.notifier.Notify(ctx, Notification{
			Title:       "Error",
			Description: messageOr(err, fallbackQueryMessage),
			Variant:     VariantDestructive,
		})
	}
	if q.opts.OnError != nil {
		q.opts.OnError(err)
	}
}

// apply runs fn against the state under the lock. It reports false, without
// calling fn, once the query is disposed.
func (q *Query[T]) apply(fn func(s *QueryState[T])) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.disposed {
		return false
	}
	fn(&q.state)
	return true
}

func (q *Query[T]) wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.stop:
		return errDisposed
	case <-t.C:
		return nil
	}
}
