// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"net/http"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/safeplots/terraform-provider-safeplots/internal/query"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// Function type aliases used by CRUDHooks.
//
// Resources implement these as small closures over the API client; the
// runner owns sequencing, retries and diagnostics.

// PayloadBuilderFunc builds the API payload (TPayload) from the planned Terraform state (TState).
type PayloadBuilderFunc[TState StateConstraint, TPayload PayloadConstraint] func(ctx context.Context, st *TState) (TPayload, diag.Diagnostics)

// CreateFunc invokes the concrete API create call and returns the created API model.
type CreateFunc[TPayload PayloadConstraint, TAPI APIConstraint] func(ctx context.Context, p TPayload) (api TAPI, rs *safeplots.Response, err error)

// ReadFunc fetches the API model by its stable identifier.
type ReadFunc[TAPI APIConstraint] func(ctx context.Context, id string) (api TAPI, rs *safeplots.Response, err error)

// UpdateFunc invokes the concrete API update call and returns the refreshed model.
type UpdateFunc[TPayload PayloadConstraint, TAPI APIConstraint] func(ctx context.Context, id string, p TPayload) (api TAPI, rs *safeplots.Response, err error)

// DeleteFunc invokes the concrete API delete call. Returning (nil, nil)
// removes the resource from state only.
type DeleteFunc func(ctx context.Context, id string) (rs *safeplots.Response, err error)

// ExtractIDFunc returns the stable identifier from the current state.
type ExtractIDFunc[TState StateConstraint] func(st *TState) string

// MapToStateFunc maps the API model into the Terraform state model.
type MapToStateFunc[TState StateConstraint, TAPI APIConstraint] func(ctx context.Context, api TAPI, st *TState) diag.Diagnostics

// PostAPIHook is an optional step after an API call, e.g. a follow-up Get
// when a write answers with a partial object.
type PostAPIHook[TState StateConstraint, TAPI APIConstraint] func(ctx context.Context, api TAPI, st *TState) (apiOut TAPI, rs *safeplots.Response, err error)

// StateConstraint enumerates the Terraform state models supported by the CRUD runner.
type StateConstraint interface {
	propertyResourceModel |
		sellerRegistrationResourceModel |
		sellerVerificationResourceModel |
		propertyModerationResourceModel |
		reportResolutionResourceModel |
		userBanResourceModel |
		savedPropertyResourceModel |
		inquiryResourceModel |
		propertyReportResourceModel
}

// PayloadConstraint enumerates the payloads sent on create and update.
type PayloadConstraint interface {
	*safeplots.PropertyPayload |
		*safeplots.SellerRegistration |
		*sellerDecision |
		*moderationDecision |
		*reportResolution |
		*userBanRequest |
		*savedPropertyRequest |
		*safeplots.InquiryPayload |
		*safeplots.ReportPayload
}

// APIConstraint enumerates the API models returned by service calls.
type APIConstraint interface {
	*safeplots.Property |
		*safeplots.Seller |
		*safeplots.PropertyReport |
		*safeplots.User |
		*safeplots.Inquiry
}

// CRUDHooks defines per-resource behavior consumed by the generic runner.
//
// Required: BuildPayload, the API calls, ExtractID and MapToState.
// Optional: Post* hooks, Acceptable*Statuses, TreatDelete404AsSuccess,
// Reads (retry budget for read and import) and the success messages that
// are logged after each write.
type CRUDHooks[TState StateConstraint, TPayload PayloadConstraint, TAPI APIConstraint] struct {
	BuildPayload PayloadBuilderFunc[TState, TPayload]

	APICreate CreateFunc[TPayload, TAPI]
	APIRead   ReadFunc[TAPI]
	APIUpdate UpdateFunc[TPayload, TAPI]
	APIDelete DeleteFunc

	ExtractID  ExtractIDFunc[TState]
	MapToState MapToStateFunc[TState, TAPI]

	PostCreate PostAPIHook[TState, TAPI]
	PostRead   PostAPIHook[TState, TAPI]
	PostUpdate PostAPIHook[TState, TAPI]

	AcceptableCreateStatuses []int
	AcceptableUpdateStatuses []int
	AcceptableDeleteStatuses []int
	TreatDelete404AsSuccess  bool

	Reads readPolicy

	CreatedMessage string
	UpdatedMessage string
	DeletedMessage string
}

// orDefaultStatuses returns the provided statuses when non-empty,
// otherwise falls back to the supplied defaults.
func orDefaultStatuses(got []int, def ...int) []int {
	if len(got) > 0 {
		return got
	}
	return def
}

// CRUDRunner coordinates the CRUD lifecycle using the per-resource CRUDHooks.
// Writes run through a query.Mutation (attempted once); reads run through a
// query.Query with the hooks' retry budget.
type CRUDRunner[TState StateConstraint, TPayload PayloadConstraint, TAPI APIConstraint] struct {
	hooks CRUDHooks[TState, TPayload, TAPI]
}

// NewCRUDRunner constructs a CRUDRunner bound to the provided hooks.
func NewCRUDRunner[TState StateConstraint, TPayload PayloadConstraint, TAPI APIConstraint](hooks CRUDHooks[TState, TPayload, TAPI]) CRUDRunner[TState, TPayload, TAPI] {
	return CRUDRunner[TState, TPayload, TAPI]{hooks: hooks}
}

// notifierFor tags write notifications with the runner action.
func (r CRUDRunner[TState, TPayload, TAPI]) notifierFor(action string) query.Notifier {
	return diagNotifier{action: action}
}

// callResult carries the API response alongside a mutation result so failed
// calls still produce body snippets.
type callResult[T any] struct {
	api T
	rs  *safeplots.Response
}

// mutate runs fn exactly once through a query.Mutation. The returned
// response is set even when the call fails.
func mutate[T, V any](ctx context.Context, notifier query.Notifier, message string, fn func(ctx context.Context, v V) (T, *safeplots.Response, error), v V) (T, *safeplots.Response, error) {
	var last *safeplots.Response
	m := query.NewMutation(query.MutationOptions[callResult[T], V]{
		MutationFn: func(ctx context.Context, v V) (callResult[T], error) {
			api, rs, err := fn(ctx, v)
			last = rs
			return callResult[T]{api: api, rs: rs}, err
		},
		ShowSuccessToast: message != "",
		SuccessMessage:   message,
		ShowErrorToast:   query.Bool(false),
		Notifier:         notifier,
	})
	defer m.Dispose()
	res, err := m.Mutate(ctx, v)
	if err != nil {
		return res.api, last, err
	}
	return res.api, res.rs, nil
}

// fetch runs fn through a query.Query with the given retry budget. Client
// errors (4xx) and context errors are not retried.
func fetch[T any](ctx context.Context, policy readPolicy, fn func(ctx context.Context) (T, *safeplots.Response, error)) (T, *safeplots.Response, error) {
	var last *safeplots.Response
	q := query.NewQuery(query.QueryOptions[T]{
		QueryFn: func(ctx context.Context) (T, error) {
			api, rs, err := fn(ctx)
			last = rs
			return api, err
		},
		RetryCount:     policy.count,
		RetryDelay:     policy.delay,
		RetryIf:        retryableRead,
		ShowErrorToast: query.Bool(false),
	})
	defer q.Dispose()
	st := q.Execute(ctx)
	return st.Data, last, st.Error
}

// runPostHook runs an optional post-API hook with shared ensure handling.
func (r CRUDRunner[TState, TPayload, TAPI]) runPostHook(
	ctx context.Context,
	label string,
	hook PostAPIHook[TState, TAPI],
	api TAPI,
	st *TState,
	ensure ensureFunc,
) (TAPI, bool) {
	if hook == nil {
		return api, true
	}
	api2, rs, err := hook(ctx, api, st)
	if !ensure(ctx, label, rs, err, &EnsureSuccessOrDiagOptions{IncludeBodySnippet: true}) {
		var zero TAPI
		return zero, false
	}
	return api2, true
}

// mapAndSetState performs the MapToState + setState sequence and returns accumulated diagnostics.
func (r CRUDRunner[TState, TPayload, TAPI]) mapAndSetState(
	ctx context.Context,
	api TAPI,
	st *TState,
	setState func(ctx context.Context, src *TState) diag.Diagnostics,
) diag.Diagnostics {
	var diags diag.Diagnostics
	diags.Append(r.hooks.MapToState(ctx, api, st)...)
	if diags.HasError() {
		return diags
	}
	diags.Append(setState(ctx, st)...)
	return diags
}

func (r CRUDRunner[TState, TPayload, TAPI]) ensureCreateOK(ctx context.Context, ensure ensureFunc, rs *safeplots.Response, err error) bool {
	return ensure(ctx, "create resource", rs, err, &EnsureSuccessOrDiagOptions{
		AcceptableStatuses: orDefaultStatuses(r.hooks.AcceptableCreateStatuses, http.StatusOK, http.StatusCreated),
		IncludeBodySnippet: true,
	})
}

func (r CRUDRunner[TState, TPayload, TAPI]) ensureReadOK(ctx context.Context, ensure ensureFunc, rs *safeplots.Response, err error) bool {
	return ensure(ctx, "read resource", rs, err, &EnsureSuccessOrDiagOptions{IncludeBodySnippet: true})
}

func (r CRUDRunner[TState, TPayload, TAPI]) ensureUpdateOK(ctx context.Context, ensure ensureFunc, rs *safeplots.Response, err error) bool {
	return ensure(ctx, "update resource", rs, err, &EnsureSuccessOrDiagOptions{
		AcceptableStatuses: orDefaultStatuses(r.hooks.AcceptableUpdateStatuses, http.StatusOK, http.StatusNoContent),
		IncludeBodySnippet: true,
	})
}

func (r CRUDRunner[TState, TPayload, TAPI]) ensureDeleteOK(ctx context.Context, ensure ensureFunc, rs *safeplots.Response, err error) bool {
	return ensure(ctx, "delete resource", rs, err, &EnsureSuccessOrDiagOptions{
		AcceptableStatuses:      orDefaultStatuses(r.hooks.AcceptableDeleteStatuses, http.StatusOK, http.StatusNoContent),
		TreatDelete404AsSuccess: r.hooks.TreatDelete404AsSuccess,
		IncludeBodySnippet:      true,
	})
}

// handleRead404 triggers remove() when the read answered Not Found.
// Returns true if the caller should stop further processing.
func (r CRUDRunner[TState, TPayload, TAPI]) handleRead404(
	ctx context.Context,
	rs *safeplots.Response,
	err error,
	httpStatus func(*safeplots.Response, error) int,
	remove func(ctx context.Context),
) bool {
	if httpStatus(rs, err) == http.StatusNotFound {
		remove(ctx)
		return true
	}
	return false
}

// DoCreate orchestrates the Create lifecycle:
// getPlan → BuildPayload → APICreate → PostCreate → MapToState → setState.
func (r CRUDRunner[TState, TPayload, TAPI]) DoCreate(
	ctx context.Context,
	getPlan func(ctx context.Context, dst *TState) diag.Diagnostics,
	setState func(ctx context.Context, src *TState) diag.Diagnostics,
	ensure ensureFunc,
) diag.Diagnostics {
	var diags diag.Diagnostics
	var st TState

	if d := getPlan(ctx, &st); d.HasError() {
		return d
	}

	payload, d2 := r.hooks.BuildPayload(ctx, &st)
	diags.Append(d2...)
	if diags.HasError() {
		return diags
	}

	api, rs, err := mutate(ctx, r.notifierFor("create"), r.hooks.CreatedMessage, r.hooks.APICreate, payload)
	if !r.ensureCreateOK(ctx, ensure, rs, err) {
		return diags
	}

	api, ok := r.runPostHook(ctx, "post-create hook", r.hooks.PostCreate, api, &st, ensure)
	if !ok {
		return diags
	}

	diags.Append(r.mapAndSetState(ctx, api, &st, setState)...)
	return diags
}

// DoRead refreshes state from the remote API. A 404 removes the resource
// from state; other failures are reported through ensure once the retry
// budget is spent.
func (r CRUDRunner[TState, TPayload, TAPI]) DoRead(
	ctx context.Context,
	getState func(ctx context.Context, dst *TState) diag.Diagnostics,
	setState func(ctx context.Context, src *TState) diag.Diagnostics,
	remove func(ctx context.Context),
	ensure ensureFunc,
	httpStatus func(*safeplots.Response, error) int,
) diag.Diagnostics {
	var diags diag.Diagnostics
	var st TState

	if d := getState(ctx, &st); d.HasError() {
		return d
	}
	id := r.hooks.ExtractID(&st)

	api, rs, err := fetch(ctx, r.hooks.Reads, func(ctx context.Context) (TAPI, *safeplots.Response, error) {
		return r.hooks.APIRead(ctx, id)
	})
	if r.handleRead404(ctx, rs, err, httpStatus, remove) {
		return diags
	}
	if !r.ensureReadOK(ctx, ensure, rs, err) {
		return diags
	}

	api, ok := r.runPostHook(ctx, "post-read hook", r.hooks.PostRead, api, &st, ensure)
	if !ok {
		return diags
	}

	diags.Append(r.mapAndSetState(ctx, api, &st, setState)...)
	return diags
}

type updateVars[TPayload any] struct {
	id      string
	payload TPayload
}

// DoUpdate applies changes to the remote API and updates state:
// getPlan → BuildPayload → APIUpdate → PostUpdate → MapToState → setState.
func (r CRUDRunner[TState, TPayload, TAPI]) DoUpdate(
	ctx context.Context,
	getPlan func(ctx context.Context, dst *TState) diag.Diagnostics,
	setState func(ctx context.Context, src *TState) diag.Diagnostics,
	ensure ensureFunc,
) diag.Diagnostics {
	var diags diag.Diagnostics
	var st TState

	if d := getPlan(ctx, &st); d.HasError() {
		return d
	}
	id := r.hooks.ExtractID(&st)

	payload, d2 := r.hooks.BuildPayload(ctx, &st)
	diags.Append(d2...)
	if diags.HasError() {
		return diags
	}

	api, rs, err := mutate(ctx, r.notifierFor("update"), r.hooks.UpdatedMessage,
		func(ctx context.Context, v updateVars[TPayload]) (TAPI, *safeplots.Response, error) {
			return r.hooks.APIUpdate(ctx, v.id, v.payload)
		},
		updateVars[TPayload]{id: id, payload: payload},
	)
	if !r.ensureUpdateOK(ctx, ensure, rs, err) {
		return diags
	}

	api, ok := r.runPostHook(ctx, "post-update hook", r.hooks.PostUpdate, api, &st, ensure)
	if !ok {
		return diags
	}

	diags.Append(r.mapAndSetState(ctx, api, &st, setState)...)
	return diags
}

// DoDelete removes the resource remotely. With TreatDelete404AsSuccess a
// 404 counts as already deleted.
func (r CRUDRunner[TState, TPayload, TAPI]) DoDelete(
	ctx context.Context,
	getState func(ctx context.Context, dst *TState) diag.Diagnostics,
	ensure ensureFunc,
) diag.Diagnostics {
	var diags diag.Diagnostics
	var st TState

	if d := getState(ctx, &st); d.HasError() {
		return d
	}
	id := r.hooks.ExtractID(&st)

	_, rs, err := mutate(ctx, r.notifierFor("delete"), r.hooks.DeletedMessage,
		func(ctx context.Context, id string) (struct{}, *safeplots.Response, error) {
			rs, err := r.hooks.APIDelete(ctx, id)
			return struct{}{}, rs, err
		},
		id,
	)
	r.ensureDeleteOK(ctx, ensure, rs, err)
	return diags
}

// DoImport mirrors Read using the import identifier.
func (r CRUDRunner[TState, TPayload, TAPI]) DoImport(
	ctx context.Context,
	id string,
	setState func(ctx context.Context, src *TState) diag.Diagnostics,
	ensure ensureFunc,
) diag.Diagnostics {
	var diags diag.Diagnostics
	var st TState

	api, rs, err := fetch(ctx, r.hooks.Reads, func(ctx context.Context) (TAPI, *safeplots.Response, error) {
		return r.hooks.APIRead(ctx, id)
	})
	if !ensure(ctx, "read imported resource", rs, err, &EnsureSuccessOrDiagOptions{IncludeBodySnippet: true}) {
		return diags
	}

	api, ok := r.runPostHook(ctx, "post-read on import hook", r.hooks.PostRead, api, &st, ensure)
	if !ok {
		return diags
	}

	diags.Append(r.mapAndSetState(ctx, api, &st, setState)...)
	return diags
}
