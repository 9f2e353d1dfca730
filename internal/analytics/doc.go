// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

// Package analytics keeps a bounded local queue of user interaction events
// for later upload. Events are stored as one JSON document per queue key in
// memory or in SQLite.
package analytics
