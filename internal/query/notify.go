// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package query

import "context"

// Variant selects how a notification is presented.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a user-facing alert emitted on success or terminal failure.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier receives notifications. Implementations must not block; the
// caller never reads anything back.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}

// NopNotifier discards every notification.
var NopNotifier Notifier = nopNotifier{}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return NopNotifier
	}
	return n
}
