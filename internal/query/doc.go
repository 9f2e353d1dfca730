// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

// Package query provides the read and write lifecycle wrappers used by every
// provider operation.
//
// Query runs an idempotent read with loading/refetch flags and a bounded
// linear retry (delay = RetryDelay x attempt). Mutation runs a write exactly
// once per call. Both report terminal outcomes through a Notifier and stop
// touching their state once disposed.
package query
