// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"strconv"

	"github.com/hashicorp/terraform-plugin-framework/attr"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/safeplots/terraform-provider-safeplots/internal/pagination"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// Function type aliases for list flows.
//
// Implement List for endpoints that answer in one response, or ListPage for
// page/limit endpoints. KeyOf must return a stable key (the API id).
type ListFunc[TAPI APIListConstraint] func(ctx context.Context) ([]TAPI, diag.Diagnostics)
type FilterFunc[TAPI APIListConstraint] func(ctx context.Context, item TAPI) bool
type KeyOfFunc[TAPI APIListConstraint] func(item TAPI) string
type MapToOutFunc[TAPI APIListConstraint, TOut OutModelConstraint] func(ctx context.Context, item TAPI) (TOut, diag.Diagnostics)
type AttrTypesFunc func() map[string]attr.Type

// ListPageFunc fetches one page and reports the server's total item count.
type ListPageFunc[TAPI APIListConstraint] func(ctx context.Context, params pagination.Params) (items []TAPI, total int, d diag.Diagnostics)

// APIListConstraint enumerates the API models that appear in lists.
type APIListConstraint interface {
	safeplots.Property | safeplots.Seller | safeplots.PropertyReport
}

// OutModelConstraint enumerates the Terraform object models produced per item.
type OutModelConstraint interface {
	propertyItemModel | sellerItemModel | reportItemModel
}

// ListHooks defines list helpers for data sources.
type ListHooks[TAPI APIListConstraint, TOut OutModelConstraint] struct {
	List     ListFunc[TAPI]
	ListPage ListPageFunc[TAPI]

	// Filter is applied client-side; return true to keep.
	Filter FilterFunc[TAPI]

	KeyOf     KeyOfFunc[TAPI]
	MapToOut  MapToOutFunc[TAPI, TOut]
	AttrTypes AttrTypesFunc
}

// ListOptions configures DoListWithLimit.
//
//   - MaxItems: hard cap on kept items (post-filter). 0 = unlimited.
//   - WarnThreshold: adds a warning once kept items reach it. 0 = disabled.
//   - PreallocCap: capacity hint for the result. 0 = auto.
//   - RespectContext: stop early with a warning when ctx is done.
//   - StartPage, PageSize: first page and page size for ListPage.
//   - MaxPages: stop after this many pages. 0 = follow HasMore to the end.
type ListOptions struct {
	MaxItems       int
	WarnThreshold  int
	PreallocCap    int
	RespectContext bool

	StartPage int
	PageSize  int
	MaxPages  int
}

// ListResult holds the mapped items keyed by KeyOf, the keys in arrival
// order and, for paged listings, the paginator as it stood after the last
// fetched page.
type ListResult[TOut OutModelConstraint] struct {
	Items map[string]TOut
	Keys  []string
	Pager *pagination.Paginator
}

// Ordered returns the items in arrival order.
func (r ListResult[TOut]) Ordered() []TOut {
	out := make([]TOut, 0, len(r.Keys))
	for _, k := range r.Keys {
		out = append(out, r.Items[k])
	}
	return out
}

// DoListToMap builds a map[string]TOut using hooks without limits.
func DoListToMap[TAPI APIListConstraint, TOut OutModelConstraint](
	ctx context.Context,
	h ListHooks[TAPI, TOut],
) (map[string]TOut, diag.Diagnostics) {
	res, diags := DoListWithLimit[TAPI, TOut](ctx, h, ListOptions{})
	return res.Items, diags
}

// DoListWithLimit lists items with guardrails for large datasets.
//
// Behavior
//   - With ListPage, pages are requested through a pagination.Paginator: the
//     total reported by each page feeds SetTotalCount and NextPage is called
//     while HasMore holds.
//   - Filter runs before mapping. Last write wins for duplicate keys.
//   - MaxItems and WarnThreshold add warnings and return a partial result.
//   - Errors from List/ListPage or MapToOut return no result.
func DoListWithLimit[TAPI APIListConstraint, TOut OutModelConstraint](
	ctx context.Context,
	h ListHooks[TAPI, TOut],
	opts ListOptions,
) (ListResult[TOut], diag.Diagnostics) {
	const checkCancelEvery = 100
	var diags diag.Diagnostics

	capFor := func(total int) int {
		capHint := total
		if opts.PreallocCap > 0 && (capHint == 0 || opts.PreallocCap < capHint) {
			capHint = opts.PreallocCap
		}
		if opts.MaxItems > 0 && (capHint == 0 || opts.MaxItems < capHint) {
			capHint = opts.MaxItems
		}
		if capHint < 0 {
			capHint = 0
		}
		return capHint
	}

	warnedThreshold := false
	canceled := func() bool {
		if !opts.RespectContext {
			return false
		}
		select {
		case <-ctx.Done():
			diags.AddWarning("listing canceled", "context canceled or deadline exceeded during listing; returning partial results")
			return true
		default:
			return false
		}
	}

	var res ListResult[TOut]
	kept, processed := 0, 0

	// processItems returns false when listing must stop.
	processItems := func(items []TAPI) bool {
		for _, it := range items {
			processed++
			if processed%checkCancelEvery == 0 && canceled() {
				return false
			}
			if h.Filter != nil && !h.Filter(ctx, it) {
				continue
			}
			k := h.KeyOf(it)
			obj, d := h.MapToOut(ctx, it)
			diags.Append(d...)
			if diags.HasError() {
				return false
			}
			if _, dup := res.Items[k]; !dup {
				res.Keys = append(res.Keys, k)
			}
			res.Items[k] = obj
			kept++
			if opts.WarnThreshold > 0 && kept >= opts.WarnThreshold && !warnedThreshold {
				warnedThreshold = true
				diags.AddWarning("large result set", "number of items kept reached threshold: "+strconv.Itoa(kept))
			}
			if opts.MaxItems > 0 && kept >= opts.MaxItems {
				diags.AddWarning("result capped", "maximum items reached; result truncated at "+strconv.Itoa(opts.MaxItems))
				return false
			}
		}
		return true
	}

	if h.ListPage == nil {
		items, d := h.List(ctx)
		diags.Append(d...)
		if diags.HasError() {
			return ListResult[TOut]{}, diags
		}
		res.Items = make(map[string]TOut, capFor(len(items)))
		res.Keys = []string{}
		processItems(items)
		if diags.HasError() {
			return ListResult[TOut]{}, diags
		}
		return res, diags
	}

	pager := pagination.New(pagination.Options{InitialPage: opts.StartPage, InitialLimit: opts.PageSize})
	res.Pager = pager
	res.Items = make(map[string]TOut, capFor(pager.Limit()))
	res.Keys = []string{}
	for pages := 1; ; pages++ {
		items, total, d := h.ListPage(ctx, pager.QueryParams())
		diags.Append(d...)
		if diags.HasError() {
			return ListResult[TOut]{}, diags
		}
		pager.SetTotalCount(total)
		if !processItems(items) {
			break
		}
		if diags.HasError() {
			return ListResult[TOut]{}, diags
		}
		if len(items) == 0 || !pager.HasMore() {
			break
		}
		if opts.MaxPages > 0 && pages >= opts.MaxPages {
			break
		}
		if canceled() {
			break
		}
		pager.NextPage()
	}
	if diags.HasError() {
		return ListResult[TOut]{}, diags
	}
	return res, diags
}
