// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// Options seeds a Paginator. Zero values select DefaultPage and DefaultLimit.
type Options struct {
	InitialPage  int
	InitialLimit int
	TotalCount   int
}

// Params is the page/limit pair sent to a paged endpoint.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the zero-based index of the first item on the page.
func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Paginator keeps page, limit and total count consistent.
//
// Invariants: page >= 1, limit > 0, total >= 0, and changing the limit
// always returns to page 1.
type Paginator struct {
	initialPage int
	page        int
	limit       int
	total       int
}

// New builds a Paginator from opts.
func New(opts Options) *Paginator {
	if opts.InitialPage < 1 {
		opts.InitialPage = DefaultPage
	}
	if opts.InitialLimit < 1 {
		opts.InitialLimit = DefaultLimit
	}
	if opts.TotalCount < 0 {
		opts.TotalCount = 0
	}
	return &Paginator{
		initialPage: opts.InitialPage,
		page:        opts.InitialPage,
		limit:       opts.InitialLimit,
		total:       opts.TotalCount,
	}
}

func (p *Paginator) Page() int       { return p.page }
func (p *Paginator) Limit() int      { return p.limit }
func (p *Paginator) TotalCount() int { return p.total }

// TotalPages is ceil(total/limit); zero when there is nothing to page.
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 0
	}
	return (p.total + p.limit - 1) / p.limit
}

// HasMore reports whether items exist past the current page.
func (p *Paginator) HasMore() bool { return p.page*p.limit < p.total }

// HasPrevious reports whether the current page is past the first.
func (p *Paginator) HasPrevious() bool { return p.page > 1 }

// SetPage moves to n without an upper bound; values below 1 become 1.
func (p *Paginator) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	p.page = n
}

// SetLimit changes the page size and returns to page 1. Non-positive sizes are ignored.
func (p *Paginator) SetLimit(n int) {
	if n < 1 {
		return
	}
	p.limit = n
	p.page = 1
}

// SetTotalCount records the server-reported total. Negative totals become 0.
func (p *Paginator) SetTotalCount(n int) {
	if n < 0 {
		n = 0
	}
	p.total = n
}

func (p *Paginator) NextPage() {
	if p.HasMore() {
		p.page++
	}
}

func (p *Paginator) PrevPage() {
	if p.HasPrevious() {
		p.page--
	}
}

// GoToPage clamps n into [1, TotalPages]; with no pages it lands on 1.
func (p *Paginator) GoToPage(n int) {
	last := p.TotalPages()
	if last < 1 {
		last = 1
	}
	switch {
	case n < 1:
		n = 1
	case n > last:
		n = last
	}
	p.page = n
}

// Reset returns to the initial page. Limit and total are kept.
func (p *Paginator) Reset() { p.page = p.initialPage }

// QueryParams snapshots the current page and limit.
func (p *Paginator) QueryParams() Params {
	return Params{Page: p.page, Limit: p.limit}
}

// Slice returns the items of the current page from a fully loaded list.
func Slice[T any](p *Paginator, items []T) []T {
	start := p.QueryParams().Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
