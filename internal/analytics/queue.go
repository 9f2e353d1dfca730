// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

const (
	// DefaultCapacity is the number of events retained.
	DefaultCapacity = 100
	// QueueKey is the storage key of the serialized queue.
	QueueKey = "safeplots_analytics_queue"
)

// Event is one tracked interaction.
type Event struct {
	ID        string         `json:"id"`
	Name      EventName      `json:"event"`
	Data      map[string]any `json:"data,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Queue is a bounded FIFO of events kept in a Storage. When full, the
// oldest events are evicted.
type Queue struct {
	mu       sync.Mutex
	store    Storage
	key      string
	capacity int
}

type QueueOption func(*Queue)

func WithCapacity(n int) QueueOption {
	return func(q *Queue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

func WithKey(key string) QueueOption {
	return func(q *Queue) {
		if key != "" {
			q.key = key
		}
	}
}

func NewQueue(store Storage, opts ...QueueOption) *Queue {
	if store == nil {
		store = NewMemoryStorage()
	}
	q := &Queue{store: store, key: QueueKey, capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Append adds ev and trims the queue to capacity.
func (q *Queue) Append(ctx context.Context, ev Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	events, err := q.load(ctx)
	if err != nil {
		return err
	}
	events = append(events, ev)
	if over := len(events) - q.capacity; over > 0 {
		tflog.Debug(ctx, "analytics queue trimmed", map[string]interface{}{"dropped": over, "capacity": q.capacity})
		events = events[over:]
	}
	buf, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode analytics queue: %w", err)
	}
	return q.store.Save(ctx, q.key, buf)
}

// Events returns the queued events, oldest first.
func (q *Queue) Events(ctx context.Context) ([]Event, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx)
}

// Clear removes every queued event.
func (q *Queue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.store.Delete(ctx, q.key)
}

// load returns storage errors only. A corrupt queue reads as empty and is
// replaced on the next Append.
func (q *Queue) load(ctx context.Context) ([]Event, error) {
	raw, ok, err := q.store.Load(ctx, q.key)
	if err != nil {
		return nil, err
	}
	events := []Event{}
	if !ok || len(raw) == 0 {
		return events, nil
	}
	if err := json.Unmarshal(raw, &events); err != nil {
		tflog.Warn(ctx, "analytics queue unreadable; starting fresh", map[string]interface{}{"error": err.Error()})
		return []Event{}, nil
	}
	return events, nil
}
