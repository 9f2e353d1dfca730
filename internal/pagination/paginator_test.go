// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	p := New(Options{})
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 12, p.Limit())
	assert.Equal(t, 0, p.TotalCount())
	assert.Equal(t, 0, p.TotalPages())
	assert.False(t, p.HasMore())
	assert.False(t, p.HasPrevious())
}

func TestGoToPage_Clamps(t *testing.T) {
	p := New(Options{InitialLimit: 10, TotalCount: 50})
	if p.TotalPages() != 5 {
		t.Fatalf("expected 5 pages, got %d", p.TotalPages())
	}
	p.GoToPage(0)
	assert.Equal(t, 1, p.Page())
	p.GoToPage(999)
	assert.Equal(t, 5, p.Page())
	p.GoToPage(3)
	assert.Equal(t, 3, p.Page())

	empty := New(Options{})
	empty.GoToPage(7)
	assert.Equal(t, 1, empty.Page())
}

func TestSetLimit_ResetsPage(t *testing.T) {
	p := New(Options{InitialPage: 3, TotalCount: 100})
	assert.Equal(t, 3, p.Page())
	p.SetLimit(20)
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 20, p.Limit())

	p.SetPage(4)
	p.SetLimit(0)
	assert.Equal(t, 4, p.Page(), "invalid limit is ignored")
	assert.Equal(t, 20, p.Limit())
}

func TestHasMoreBoundary(t *testing.T) {
	p := New(Options{InitialLimit: 12, TotalCount: 12})
	assert.False(t, p.HasMore())
	p.SetTotalCount(13)
	assert.True(t, p.HasMore())
	assert.Equal(t, 2, p.TotalPages())
}

func TestNextPrevPage(t *testing.T) {
	p := New(Options{InitialLimit: 5, TotalCount: 11})
	p.PrevPage()
	assert.Equal(t, 1, p.Page())
	p.NextPage()
	p.NextPage()
	assert.Equal(t, 3, p.Page())
	p.NextPage()
	assert.Equal(t, 3, p.Page(), "no page past the last")
	p.PrevPage()
	assert.Equal(t, 2, p.Page())
	assert.True(t, p.HasPrevious())
}

func TestReset_KeepsLimitAndTotal(t *testing.T) {
	p := New(Options{InitialPage: 2, InitialLimit: 5, TotalCount: 40})
	p.GoToPage(6)
	p.Reset()
	assert.Equal(t, 2, p.Page())
	assert.Equal(t, 5, p.Limit())
	assert.Equal(t, 40, p.TotalCount())
}

func TestSetPageAndTotalLowerBounds(t *testing.T) {
	p := New(Options{})
	p.SetPage(-3)
	assert.Equal(t, 1, p.Page())
	p.SetTotalCount(-1)
	assert.Equal(t, 0, p.TotalCount())
}

func TestQueryParamsAndOffset(t *testing.T) {
	p := New(Options{InitialPage: 3, InitialLimit: 12})
	qp := p.QueryParams()
	assert.Equal(t, Params{Page: 3, Limit: 12}, qp)
	assert.Equal(t, 24, qp.Offset())
	assert.Equal(t, 0, Params{}.Offset())
}

func TestSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	p := New(Options{InitialLimit: 3, TotalCount: len(items)})

	assert.Equal(t, []string{"a", "b", "c"}, Slice(p, items))
	p.NextPage()
	assert.Equal(t, []string{"d", "e", "f"}, Slice(p, items))
	p.NextPage()
	assert.Equal(t, []string{"g"}, Slice(p, items))

	p.SetPage(9)
	assert.Empty(t, Slice(p, items))
}
