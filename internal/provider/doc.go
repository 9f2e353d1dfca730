// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

// Package provider implements the Terraform Provider for SafePlots.
//
// Highlights:
//   - Auth: bearer token, or email and password exchanged for a session token at configure time.
//   - Roles: buyer, seller and admin resources share one provider; admin-only surfaces fail early with a clear diagnostic.
//   - Retries: reads go through the query package with linear backoff; writes are never retried.
//   - Paging: listing data sources expose page, limit, total_pages and the compact page_numbers window.
//   - Deterministic outputs: data sources key items by ID and keep the API ordering in ids.
package provider
