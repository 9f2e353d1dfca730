// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package query

import "errors"

// ErrUnknown replaces panic values that are not errors.
var ErrUnknown = errors.New("An error occurred")

// errDisposed aborts a pending retry wait once the owner is disposed.
var errDisposed = errors.New("query disposed")

const (
	fallbackQueryMessage    = "Failed to fetch data"
	fallbackMutationMessage = "Operation failed"
	defaultSuccessMessage   = "Operation completed successfully"
)

// normalizePanic converts a recovered panic value into an error.
func normalizePanic(r any) error {
	if err, ok := r.(error); ok && err != nil {
		return err
	}
	return ErrUnknown
}

// messageOr returns err's message, or fallback when the message is empty.
func messageOr(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Bool returns a pointer to b, for the optional flags in QueryOptions and MutationOptions.
func Bool(b bool) *bool { return &b }
