// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package query

import (
	"context"
	"sync"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// MutationFunc performs a write with the given variables.
type MutationFunc[T, V any] func(ctx context.Context, variables V) (T, error)

// MutationOptions configures a Mutation.
type MutationOptions[T, V any] struct {
	MutationFn MutationFunc[T, V]

	OnSuccess func(data T)
	OnError   func(err error)

	ShowSuccessToast bool
	// SuccessMessage defaults to "Operation completed successfully".
	SuccessMessage string
	ShowErrorToast *bool
	Notifier       Notifier
}

// MutationState is a snapshot of a Mutation's lifecycle.
type MutationState[T any] struct {
	Data      T
	HasData   bool
	IsLoading bool
	Error     error
}

// Mutation runs writes on demand. A call is attempted exactly once.
type Mutation[T, V any] struct {
	opts     MutationOptions[T, V]
	notifier Notifier

	mu       sync.Mutex
	state    MutationState[T]
	disposed bool
}

// NewMutation builds a Mutation.
func NewMutation[T, V any](opts MutationOptions[T, V]) *Mutation[T, V] {
	if opts.SuccessMessage == "" {
		opts.SuccessMessage = defaultSuccessMessage
	}
	return &Mutation[T, V]{opts: opts, notifier: notifierOrNop(opts.Notifier)}
}

// Mutate calls the mutation function once. On failure the zero value and
// the error are returned; the error is also kept in the state.
func (m *Mutation[T, V]) Mutate(ctx context.Context, variables V) (T, error) {
	var zero T
	m.apply(func(s *MutationState[T]) {
		s.IsLoading = true
		s.Error = nil
	})
	defer m.apply(func(s *MutationState[T]) { s.IsLoading = false })

	data, err := m.call(ctx, variables)
	if err != nil {
		if m.apply(func(s *MutationState[T]) { s.Error = err }) {
			if boolOr(m.opts.ShowErrorToast, true) {
				m.notifier.Notify(ctx, Notification{
					Title:       "Error",
					Description: messageOr(err, fallbackMutationMessage),
					Variant:     VariantDestructive,
				})
			}
			if m.opts.OnError != nil {
				m.opts.OnError(err)
			}
		} else {
			tflog.Debug(ctx, "mutation disposed; dropping failure", map[string]interface{}{"error": err.Error()})
		}
		return zero, err
	}

	if m.apply(func(s *MutationState[T]) {
		s.Data = data
		s.HasData = true
	}) {
		if m.opts.ShowSuccessToast {
			m.notifier.Notify(ctx, Notification{
				Title:       "Success",
				Description: m.opts.SuccessMessage,
				Variant:     VariantDefault,
			})
		}
		if m.opts.OnSuccess != nil {
			m.opts.OnSuccess(data)
		}
	}
	return data, nil
}

// Reset clears data, error and the loading flag.
func (m *Mutation[T, V]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = MutationState[T]{}
}

// State returns a copy of the current state.
func (m *Mutation[T, V]) State() MutationState[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Dispose drops every later state update and callback.
func (m *Mutation[T, V]) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposed = true
}

func (m *Mutation[T, V]) call(ctx context.Context, variables V) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			data, err = zero, normalizePanic(r)
		}
	}()
	return m.opts.MutationFn(ctx, variables)
}

func (m *Mutation[T, V]) apply(fn func(s *MutationState[T])) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return false
	}
	fn(&m.state)
	return true
}
