// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

// Package safeplots is a client for the SafePlots REST API. Responses use the
// {success, data, error, message} envelope; services unwrap "data" and accept
// the several list shapes the API returns.
package safeplots
