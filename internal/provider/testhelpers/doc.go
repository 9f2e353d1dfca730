// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

// Package testhelpers provides shared testing utilities used across unit and
// acceptance tests.
//
// Intended use:
//   - Unit tests: response builders and error doubles for the retry and
//     diagnostics paths.
//   - Acceptance tests: Terraform configuration rendered from templates
//     under testdata/templates, pointed at an in-memory API.
//
// Never leak secrets in logs, errors, or golden files; always redact.
//
// This package is for test code and is not part of the provider's public API.
package testhelpers
