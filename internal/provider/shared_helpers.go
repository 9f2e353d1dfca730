// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/safeplots/terraform-provider-safeplots/internal/query"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// Tiny mapping helpers to reduce verbosity in map-to-state code.
func stringOrNull(s string) types.String {
	if s != "" {
		return types.StringValue(s)
	}
	return types.StringNull()
}

func float64OrNull(v float64) types.Float64 {
	if v != 0 {
		return types.Float64Value(v)
	}
	return types.Float64Null()
}

// stringsOrNull maps an API string slice to a list, keeping null when the
// API returned nothing and the configuration left the list unset.
func stringsOrNull(ctx context.Context, in []string, prior types.List) (types.List, diag.Diagnostics) {
	if len(in) == 0 && prior.IsNull() {
		return types.ListNull(types.StringType), nil
	}
	if in == nil {
		in = []string{}
	}
	return types.ListValueFrom(ctx, types.StringType, in)
}

// ensureFunc is the diagnostics-bound form of EnsureSuccessOrDiagWithOptions.
type ensureFunc func(ctx context.Context, action string, rs *safeplots.Response, err error, opts *EnsureSuccessOrDiagOptions) bool

// ensureWith binds the diagnostics pointer for use in CRUD and import flows.
func ensureWith(diags *diag.Diagnostics) ensureFunc {
	return func(ctx context.Context, action string, rs *safeplots.Response, err error, opts *EnsureSuccessOrDiagOptions) bool {
		return EnsureSuccessOrDiagWithOptions(ctx, action, rs, err, diags, opts)
	}
}

// withTimeout wraps ctx with a timeout when d > 0. If d <= 0, it returns the
// original context and a no-op cancel, allowing callers to `defer cancel()` unconditionally.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	ctx2, cancel := context.WithTimeout(ctx, d)
	tflog.Debug(ctx2, "context deadline set for operation", map[string]interface{}{"timeout": d.String()})
	return ctx2, cancel
}

// listHasUnknown reports if the list itself or any of its elements are unknown.
func listHasUnknown(l types.List) bool {
	if l.IsUnknown() {
		return true
	}
	elems := l.Elements()
	for i := range elems {
		if elems[i].IsUnknown() {
			return true
		}
	}
	return false
}

// getKnownStrings parses a Terraform list of strings into a Go slice.
// Returns (nil, true) if the list or any of its elements are unknown at plan time, so the caller can defer evaluation.
// On conversion failures with known values, records an attribute-scoped error and returns (nil, false).
func getKnownStrings(ctx context.Context, l types.List, attr string, diags *diag.Diagnostics) (vals []string, deferEval bool) {
	if l.IsNull() {
		return nil, false
	}
	if listHasUnknown(l) {
		return nil, true
	}
	vals = make([]string, len(l.Elements()))
	if d := l.ElementsAs(ctx, &vals, false); d.HasError() {
		diags.AddAttributeError(
			path.Root(attr),
			fmt.Sprintf("Invalid %s list", attr),
			fmt.Sprintf("Failed to read '%s' as a list of strings. Ensure all elements are known and of type string.", attr),
		)
		diags.Append(d...)
		return nil, false
	}
	return vals, false
}

// diagNotifier routes query notifications for one runner action into the
// Terraform log. Failures reach users as diagnostics through the ensure
// helpers, so destructive notes are only logged here.
type diagNotifier struct {
	action string
}

var _ query.Notifier = diagNotifier{}

func (n diagNotifier) Notify(ctx context.Context, note query.Notification) {
	fields := map[string]interface{}{"title": note.Title}
	if n.action != "" {
		fields["action"] = n.action
	}
	if note.Variant == query.VariantDestructive {
		tflog.Error(ctx, RedactSecrets(note.Description), fields)
		return
	}
	tflog.Info(ctx, note.Description, fields)
}

// notFound builds the error used when a record is missing from a listing
// the API has no single-item endpoint for.
func notFound(kind, id string) error {
	return &safeplots.APIError{Status: 404, Message: fmt.Sprintf("%s %q not found", kind, id)}
}
