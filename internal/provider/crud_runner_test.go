// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflogtest"

	"github.com/safeplots/terraform-provider-safeplots/internal/provider/testhelpers"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

type propertyHooks = CRUDHooks[propertyResourceModel, *safeplots.PropertyPayload, *safeplots.Property]

// baseHooks answers every call successfully and counts MapToState calls.
func baseHooks(mapCalls *int) propertyHooks {
	return propertyHooks{
		BuildPayload: func(ctx context.Context, st *propertyResourceModel) (*safeplots.PropertyPayload, diag.Diagnostics) {
			return &safeplots.PropertyPayload{Title: st.Title.ValueString()}, nil
		},
		APICreate: func(ctx context.Context, p *safeplots.PropertyPayload) (*safeplots.Property, *safeplots.Response, error) {
			return &safeplots.Property{ID: "created", Title: p.Title}, testhelpers.MkRS(201, nil, ""), nil
		},
		APIRead: func(ctx context.Context, id string) (*safeplots.Property, *safeplots.Response, error) {
			return &safeplots.Property{ID: id}, testhelpers.MkRS(200, nil, ""), nil
		},
		APIUpdate: func(ctx context.Context, id string, p *safeplots.PropertyPayload) (*safeplots.Property, *safeplots.Response, error) {
			return &safeplots.Property{ID: id, Title: p.Title}, testhelpers.MkRS(200, nil, ""), nil
		},
		APIDelete: func(ctx context.Context, id string) (*safeplots.Response, error) {
			return testhelpers.MkRS(204, nil, ""), nil
		},
		ExtractID: func(st *propertyResourceModel) string { return st.ID.ValueString() },
		MapToState: func(ctx context.Context, api *safeplots.Property, st *propertyResourceModel) diag.Diagnostics {
			*mapCalls++
			st.ID = types.StringValue(api.ID)
			st.Title = types.StringValue(api.Title)
			return nil
		},
	}
}

func withID(id string) func(ctx context.Context, dst *propertyResourceModel) diag.Diagnostics {
	return func(ctx context.Context, dst *propertyResourceModel) diag.Diagnostics {
		dst.ID = types.StringValue(id)
		dst.Title = types.StringValue("Corner plot")
		return nil
	}
}

func capture(dst *propertyResourceModel) func(ctx context.Context, src *propertyResourceModel) diag.Diagnostics {
	return func(ctx context.Context, src *propertyResourceModel) diag.Diagnostics {
		*dst = *src
		return nil
	}
}

func TestCRUDRunner_HappyPaths(t *testing.T) {
	ctx := context.Background()
	var mapCalls int
	var diags diag.Diagnostics
	var got propertyResourceModel
	r := NewCRUDRunner(baseHooks(&mapCalls))

	if d := r.DoCreate(ctx, withID(""), capture(&got), ensureWith(&diags)); d.HasError() || diags.HasError() {
		t.Fatalf("unexpected diagnostics on create: %v %v", d, diags)
	}
	if got.ID.ValueString() != "created" || got.Title.ValueString() != "Corner plot" {
		t.Fatalf("unexpected state after create: %+v", got)
	}

	if d := r.DoRead(ctx, withID("prop-01"), capture(&got), func(context.Context) { t.Fatal("unexpected remove") }, ensureWith(&diags), HTTPStatus); d.HasError() || diags.HasError() {
		t.Fatalf("unexpected diagnostics on read: %v %v", d, diags)
	}
	if got.ID.ValueString() != "prop-01" {
		t.Fatalf("expected read to map prop-01, got %q", got.ID.ValueString())
	}

	if d := r.DoUpdate(ctx, withID("prop-01"), capture(&got), ensureWith(&diags)); d.HasError() || diags.HasError() {
		t.Fatalf("unexpected diagnostics on update: %v %v", d, diags)
	}

	if d := r.DoDelete(ctx, withID("prop-01"), ensureWith(&diags)); d.HasError() || diags.HasError() {
		t.Fatalf("unexpected diagnostics on delete: %v %v", d, diags)
	}

	if d := r.DoImport(ctx, "prop-02", capture(&got), ensureWith(&diags)); d.HasError() || diags.HasError() {
		t.Fatalf("unexpected diagnostics on import: %v %v", d, diags)
	}
	if got.ID.ValueString() != "prop-02" {
		t.Fatalf("expected import to map prop-02, got %q", got.ID.ValueString())
	}
	if mapCalls != 4 {
		t.Fatalf("expected MapToState 4 times, got %d", mapCalls)
	}
}

func TestCRUDRunner_Read_404_RemovesResource(t *testing.T) {
	var mapCalls int
	h := baseHooks(&mapCalls)
	h.APIRead = func(ctx context.Context, id string) (*safeplots.Property, *safeplots.Response, error) {
		return nil, testhelpers.MkRS(404, nil, ""), &safeplots.APIError{Status: 404}
	}
	var diags diag.Diagnostics
	removed := false
	NewCRUDRunner(h).DoRead(context.Background(), withID("gone"), capture(&propertyResourceModel{}), func(context.Context) { removed = true }, ensureWith(&diags), HTTPStatus)
	if !removed {
		t.Fatal("expected resource to be removed on 404")
	}
	if diags.HasError() || mapCalls != 0 {
		t.Fatalf("expected no diagnostics and no mapping, got %v (map=%d)", diags, mapCalls)
	}
}

func TestCRUDRunner_Read_RetriesServerErrors(t *testing.T) {
	var mapCalls, calls int
	h := baseHooks(&mapCalls)
	h.Reads = readPolicy{count: 2, delay: time.Millisecond}
	h.APIRead = func(ctx context.Context, id string) (*safeplots.Property, *safeplots.Response, error) {
		calls++
		if calls < 3 {
			return nil, testhelpers.MkRS(503, nil, ""), &safeplots.APIError{Status: 503}
		}
		return &safeplots.Property{ID: id}, testhelpers.MkRS(200, nil, ""), nil
	}
	var diags diag.Diagnostics
	NewCRUDRunner(h).DoRead(context.Background(), withID("prop-01"), capture(&propertyResourceModel{}), func(context.Context) {}, ensureWith(&diags), HTTPStatus)
	if diags.HasError() {
		t.Fatalf("expected success after retries, got %v", diags)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestCRUDRunner_Read_ClientErrorNotRetried(t *testing.T) {
	var mapCalls, calls int
	h := baseHooks(&mapCalls)
	h.Reads = readPolicy{count: 3, delay: time.Millisecond}
	h.APIRead = func(ctx context.Context, id string) (*safeplots.Property, *safeplots.Response, error) {
		calls++
		return nil, testhelpers.MkRS(403, nil, ""), &safeplots.APIError{Status: 403}
	}
	var diags diag.Diagnostics
	NewCRUDRunner(h).DoRead(context.Background(), withID("prop-01"), capture(&propertyResourceModel{}), func(context.Context) {}, ensureWith(&diags), HTTPStatus)
	if !diags.HasError() {
		t.Fatal("expected an error diagnostic for 403")
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt for 403, got %d", calls)
	}
}

func TestCRUDRunner_Create_NotRetried(t *testing.T) {
	var mapCalls, calls int
	h := baseHooks(&mapCalls)
	h.Reads = readPolicy{count: 3, delay: time.Millisecond}
	h.APICreate = func(ctx context.Context, p *safeplots.PropertyPayload) (*safeplots.Property, *safeplots.Response, error) {
		calls++
		return nil, testhelpers.MkRS(500, nil, `{"error":"db down"}`), &safeplots.APIError{Status: 500}
	}
	var diags diag.Diagnostics
	NewCRUDRunner(h).DoCreate(context.Background(), withID(""), capture(&propertyResourceModel{}), ensureWith(&diags))
	if !diags.HasError() {
		t.Fatal("expected create failure diagnostic")
	}
	if calls != 1 {
		t.Fatalf("expected create to run once, got %d", calls)
	}
	if mapCalls != 0 {
		t.Fatal("state must not be mapped after a failed create")
	}
}

func TestCRUDRunner_Create_BuildPayloadError(t *testing.T) {
	var mapCalls int
	h := baseHooks(&mapCalls)
	h.APICreate = func(ctx context.Context, p *safeplots.PropertyPayload) (*safeplots.Property, *safeplots.Response, error) {
		t.Fatal("API must not be called when the payload fails")
		return nil, nil, nil
	}
	h.BuildPayload = func(ctx context.Context, st *propertyResourceModel) (*safeplots.PropertyPayload, diag.Diagnostics) {
		var d diag.Diagnostics
		d.AddError("bad payload", "x")
		return nil, d
	}
	var diags diag.Diagnostics
	d := NewCRUDRunner(h).DoCreate(context.Background(), withID(""), capture(&propertyResourceModel{}), ensureWith(&diags))
	if !d.HasError() {
		t.Fatal("expected payload diagnostics to be returned")
	}
}

func TestCRUDRunner_PostHooks(t *testing.T) {
	var mapCalls int
	h := baseHooks(&mapCalls)
	h.PostCreate = func(ctx context.Context, api *safeplots.Property, st *propertyResourceModel) (*safeplots.Property, *safeplots.Response, error) {
		api.Title = "refreshed"
		return api, testhelpers.MkRS(200, nil, ""), nil
	}
	var got propertyResourceModel
	var diags diag.Diagnostics
	NewCRUDRunner(h).DoCreate(context.Background(), withID(""), capture(&got), ensureWith(&diags))
	if diags.HasError() || got.Title.ValueString() != "refreshed" {
		t.Fatalf("expected post-create result in state, got %q (%v)", got.Title.ValueString(), diags)
	}

	h.PostUpdate = func(ctx context.Context, api *safeplots.Property, st *propertyResourceModel) (*safeplots.Property, *safeplots.Response, error) {
		return nil, testhelpers.MkRS(409, nil, ""), &safeplots.APIError{Status: 409, Message: "sold listings cannot change"}
	}
	mapCalls = 0
	diags = nil
	NewCRUDRunner(h).DoUpdate(context.Background(), withID("prop-01"), capture(&got), ensureWith(&diags))
	if !diags.HasError() {
		t.Fatal("expected post-update failure to surface")
	}
	if mapCalls != 0 {
		t.Fatal("state must not be mapped after a failed post hook")
	}
}

func TestCRUDRunner_Delete(t *testing.T) {
	cases := []struct {
		name      string
		treat404  bool
		rs        *safeplots.Response
		err       error
		wantError bool
	}{
		{"204", false, testhelpers.MkRS(204, nil, ""), nil, false},
		{"state only", false, nil, nil, false},
		{"404 treated as success", true, testhelpers.MkRS(404, nil, ""), &safeplots.APIError{Status: 404}, false},
		{"404 is an error by default", false, testhelpers.MkRS(404, nil, ""), &safeplots.APIError{Status: 404}, true},
		{"transport error", true, nil, errors.New("connection refused"), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var mapCalls int
			h := baseHooks(&mapCalls)
			h.TreatDelete404AsSuccess = c.treat404
			h.APIDelete = func(ctx context.Context, id string) (*safeplots.Response, error) { return c.rs, c.err }
			var diags diag.Diagnostics
			NewCRUDRunner(h).DoDelete(context.Background(), withID("prop-01"), ensureWith(&diags))
			if diags.HasError() != c.wantError {
				t.Fatalf("HasError = %v, want %v: %v", diags.HasError(), c.wantError, diags)
			}
		})
	}
}

func TestCRUDRunner_Import_404_IsError(t *testing.T) {
	var mapCalls int
	h := baseHooks(&mapCalls)
	h.APIRead = func(ctx context.Context, id string) (*safeplots.Property, *safeplots.Response, error) {
		return nil, testhelpers.MkRS(404, nil, ""), &safeplots.APIError{Status: 404}
	}
	var diags diag.Diagnostics
	NewCRUDRunner(h).DoImport(context.Background(), "missing", capture(&propertyResourceModel{}), ensureWith(&diags))
	if !diags.HasError() {
		t.Fatal("expected import of a missing listing to fail")
	}
}

func TestMutate_ReturnsResponseOnFailure(t *testing.T) {
	rs := testhelpers.MkRS(422, nil, `{"error":"invalid pincode"}`)
	_, gotRS, err := mutate(context.Background(), nil, "", func(ctx context.Context, v string) (int, *safeplots.Response, error) {
		return 0, rs, &safeplots.APIError{Status: 422}
	}, "x")
	if err == nil {
		t.Fatal("expected error")
	}
	if gotRS != rs {
		t.Fatal("expected the failing response to be returned for diagnostics")
	}
}

func TestFetch_StopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, _, err := fetch(ctx, readPolicy{count: 5, delay: 50 * time.Millisecond}, func(ctx context.Context) (int, *safeplots.Response, error) {
		calls++
		cancel()
		return 0, nil, &safeplots.APIError{Status: 503}
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Fatalf("expected no retries after cancel, got %d calls", calls)
	}
}

func TestOrDefaultStatuses(t *testing.T) {
	if got := orDefaultStatuses(nil, 200, 201); len(got) != 2 || got[1] != 201 {
		t.Fatalf("expected defaults, got %v", got)
	}
	if got := orDefaultStatuses([]int{202}, 200); len(got) != 1 || got[0] != 202 {
		t.Fatalf("expected override, got %v", got)
	}
}

func TestCRUDRunner_WriteNotificationsTaggedWithAction(t *testing.T) {
	var out bytes.Buffer
	ctx := tflogtest.RootLogger(context.Background(), &out)

	var mapCalls int
	h := baseHooks(&mapCalls)
	h.CreatedMessage = "Property listed"
	h.UpdatedMessage = "Property updated"
	h.DeletedMessage = "Property deleted"
	r := NewCRUDRunner(h)

	var diags diag.Diagnostics
	var got propertyResourceModel
	r.DoCreate(ctx, withID(""), capture(&got), ensureWith(&diags))
	r.DoUpdate(ctx, withID("prop-01"), capture(&got), ensureWith(&diags))
	r.DoDelete(ctx, withID("prop-01"), ensureWith(&diags))
	if diags.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	entries, err := tflogtest.MultilineJSONDecode(&out)
	if err != nil {
		t.Fatalf("decode log output: %v", err)
	}
	got2 := map[string]string{}
	for _, e := range entries {
		if action, ok := e["action"].(string); ok {
			got2[action], _ = e["@message"].(string)
		}
	}
	want := map[string]string{
		"create": "Property listed",
		"update": "Property updated",
		"delete": "Property deleted",
	}
	for action, msg := range want {
		if got2[action] != msg {
			t.Fatalf("expected %s notification %q, got %q (all: %v)", action, msg, got2[action], got2)
		}
	}
}
