// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

// Package pagination tracks page/limit state for server-paged listings and
// lays out compact page bars.
package pagination
