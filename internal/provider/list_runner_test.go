// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeplots/terraform-provider-safeplots/internal/pagination"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

func listingFixture(n int) []safeplots.Property {
	out := make([]safeplots.Property, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, safeplots.Property{
			ID:         fmt.Sprintf("prop-%02d", i),
			Title:      fmt.Sprintf("Plot %d", i),
			Type:       safeplots.PropertyTypePlot,
			Price:      float64(i) * 100000,
			Area:       1200,
			AreaUnit:   "sqft",
			IsVerified: i%2 == 0,
			Status:     safeplots.PropertyApproved,
		})
	}
	return out
}

func propertyListHooks(items []safeplots.Property) ListHooks[safeplots.Property, propertyItemModel] {
	return ListHooks[safeplots.Property, propertyItemModel]{
		List: func(ctx context.Context) ([]safeplots.Property, diag.Diagnostics) {
			return items, nil
		},
		KeyOf:     func(p safeplots.Property) string { return p.ID },
		MapToOut:  mapPropertyToItem,
		AttrTypes: propertyItemModel{}.AttributeTypes,
	}
}

// pagedHooks serves items page by page and records the params it saw.
func pagedHooks(items []safeplots.Property, seen *[]pagination.Params) ListHooks[safeplots.Property, propertyItemModel] {
	h := propertyListHooks(nil)
	h.List = nil
	h.ListPage = func(ctx context.Context, params pagination.Params) ([]safeplots.Property, int, diag.Diagnostics) {
		*seen = append(*seen, params)
		return pagination.Slice(pagination.New(pagination.Options{InitialPage: params.Page, InitialLimit: params.Limit}), items), len(items), nil
	}
	return h
}

func TestDoListWithLimit_List(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps arrival order", func(t *testing.T) {
		res, diags := DoListWithLimit(ctx, propertyListHooks(listingFixture(3)), ListOptions{})
		require.False(t, diags.HasError())
		assert.Equal(t, []string{"prop-01", "prop-02", "prop-03"}, res.Keys)
		ordered := res.Ordered()
		require.Len(t, ordered, 3)
		assert.Equal(t, "Plot 1", ordered[0].Title.ValueString())
		assert.Nil(t, res.Pager)
	})

	t.Run("empty listing yields empty keys", func(t *testing.T) {
		res, diags := DoListWithLimit(ctx, propertyListHooks(nil), ListOptions{})
		require.False(t, diags.HasError())
		assert.NotNil(t, res.Keys)
		assert.Empty(t, res.Keys)
	})

	t.Run("filter runs before mapping", func(t *testing.T) {
		h := propertyListHooks(listingFixture(6))
		h.Filter = func(_ context.Context, p safeplots.Property) bool { return p.IsVerified }
		res, _ := DoListToMap(ctx, h)
		assert.Len(t, res, 3)
		assert.Contains(t, res, "prop-02")
		assert.NotContains(t, res, "prop-01")
	})

	t.Run("duplicate keys keep first position and last value", func(t *testing.T) {
		items := listingFixture(2)
		dup := items[0]
		dup.Title = "Renamed"
		res, _ := DoListWithLimit(ctx, propertyListHooks(append(items, dup)), ListOptions{})
		assert.Equal(t, []string{"prop-01", "prop-02"}, res.Keys)
		assert.Equal(t, "Renamed", res.Items["prop-01"].Title.ValueString())
	})

	t.Run("max items caps with a warning", func(t *testing.T) {
		res, diags := DoListWithLimit(ctx, propertyListHooks(listingFixture(10)), ListOptions{MaxItems: 4, WarnThreshold: 2})
		assert.False(t, diags.HasError())
		assert.Len(t, res.Keys, 4)
		require.Len(t, diags.Warnings(), 2)
		assert.Equal(t, "large result set", diags.Warnings()[0].Summary())
		assert.Equal(t, "result capped", diags.Warnings()[1].Summary())
	})

	t.Run("list error returns no result", func(t *testing.T) {
		h := propertyListHooks(nil)
		h.List = func(ctx context.Context) ([]safeplots.Property, diag.Diagnostics) {
			var d diag.Diagnostics
			d.AddError("list properties failed", "boom")
			return nil, d
		}
		res, diags := DoListWithLimit(ctx, h, ListOptions{})
		assert.True(t, diags.HasError())
		assert.Nil(t, res.Items)
	})

	t.Run("map error returns no result", func(t *testing.T) {
		h := propertyListHooks(listingFixture(2))
		h.MapToOut = func(ctx context.Context, p safeplots.Property) (propertyItemModel, diag.Diagnostics) {
			var d diag.Diagnostics
			d.AddError("map failed", p.ID)
			return propertyItemModel{}, d
		}
		res, diags := DoListWithLimit(ctx, h, ListOptions{})
		assert.True(t, diags.HasError())
		assert.Nil(t, res.Keys)
	})

	t.Run("canceled context stops with a warning", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		res, diags := DoListWithLimit(cctx, propertyListHooks(listingFixture(250)), ListOptions{RespectContext: true})
		assert.False(t, diags.HasError())
		assert.Len(t, res.Keys, 99)
		require.NotEmpty(t, diags.Warnings())
		assert.Equal(t, "listing canceled", diags.Warnings()[0].Summary())
	})
}

func TestDoListWithLimit_ListPage(t *testing.T) {
	ctx := context.Background()

	t.Run("single page by default limit", func(t *testing.T) {
		var seen []pagination.Params
		res, diags := DoListWithLimit(ctx, pagedHooks(listingFixture(30), &seen), ListOptions{MaxPages: 1})
		require.False(t, diags.HasError())
		assert.Equal(t, []pagination.Params{{Page: 1, Limit: pagination.DefaultLimit}}, seen)
		assert.Len(t, res.Keys, 12)
		assert.Equal(t, 30, res.Pager.TotalCount())
		assert.Equal(t, 3, res.Pager.TotalPages())
		assert.True(t, res.Pager.HasMore())
		assert.False(t, res.Pager.HasPrevious())
	})

	t.Run("walks every page from the start page", func(t *testing.T) {
		var seen []pagination.Params
		res, diags := DoListWithLimit(ctx, pagedHooks(listingFixture(25), &seen), ListOptions{StartPage: 2, PageSize: 10})
		require.False(t, diags.HasError())
		assert.Equal(t, []pagination.Params{{Page: 2, Limit: 10}, {Page: 3, Limit: 10}}, seen)
		assert.Len(t, res.Keys, 15)
		assert.Equal(t, "prop-11", res.Keys[0])
		assert.Equal(t, 3, res.Pager.Page())
		assert.False(t, res.Pager.HasMore())
	})

	t.Run("max pages bounds the walk", func(t *testing.T) {
		var seen []pagination.Params
		_, diags := DoListWithLimit(ctx, pagedHooks(listingFixture(100), &seen), ListOptions{PageSize: 10, MaxPages: 3})
		require.False(t, diags.HasError())
		assert.Len(t, seen, 3)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		var seen []pagination.Params
		res, diags := DoListWithLimit(ctx, pagedHooks(listingFixture(5), &seen), ListOptions{StartPage: 4, PageSize: 5})
		require.False(t, diags.HasError())
		assert.Empty(t, res.Keys)
		assert.Len(t, seen, 1)
		assert.Equal(t, 4, res.Pager.Page())
	})

	t.Run("page error returns no result", func(t *testing.T) {
		h := pagedHooks(nil, &[]pagination.Params{})
		h.ListPage = func(ctx context.Context, params pagination.Params) ([]safeplots.Property, int, diag.Diagnostics) {
			var d diag.Diagnostics
			d.AddError("list properties failed", "page "+fmt.Sprint(params.Page))
			return nil, 0, d
		}
		res, diags := DoListWithLimit(ctx, h, ListOptions{})
		require.True(t, diags.HasError())
		assert.True(t, strings.HasPrefix(diags.Errors()[0].Detail(), "page 1"))
		assert.Nil(t, res.Pager)
	})
}
