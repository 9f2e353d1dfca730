// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package pagination

import "strconv"

// DefaultMaxVisible is the page-bar width used when none is given.
const DefaultMaxVisible = 5

// EllipsisMarker is the rendered form of an elided range.
const EllipsisMarker = "ellipsis"

// PageItem is either a page number or an ellipsis.
type PageItem struct {
	Number   int
	Ellipsis bool
}

func pageNumber(n int) PageItem { return PageItem{Number: n} }

var ellipsis = PageItem{Ellipsis: true}

// String renders the page number, or EllipsisMarker.
func (i PageItem) String() string {
	if i.Ellipsis {
		return EllipsisMarker
	}
	return strconv.Itoa(i.Number)
}

// PageNumbers lays out a compact page bar. The first and last pages are always
// present; the pages around current fill the middle and gaps collapse into an
// ellipsis. Near the start the window is [2, max(maxVisible-2, current)]; near
// the end it is [min(total-maxVisible+3, current), total-1]; elsewhere
// current +/- maxVisible/2. The edge windows are one page narrower than a
// [2, maxVisible-1] rule so the bar keeps the widths shown below, and they
// stretch to reach current so the current page is always listed.
//
//	PageNumbers(1, 10, 5)  -> 1 2 3 … 10
//	PageNumbers(10, 10, 5) -> 1 … 8 9 10
//	PageNumbers(10, 20, 5) -> 1 … 8 9 10 11 12 … 20
func PageNumbers(current, total, maxVisible int) []PageItem {
	if total < 1 {
		return []PageItem{}
	}
	if maxVisible < 1 {
		maxVisible = DefaultMaxVisible
	}
	if total <= maxVisible {
		out := make([]PageItem, 0, total)
		for n := 1; n <= total; n++ {
			out = append(out, pageNumber(n))
		}
		return out
	}

	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	half := maxVisible / 2
	var start, end int
	switch {
	case current <= half+1:
		start, end = 2, max(maxVisible-2, current)
	case current >= total-half:
		start, end = min(total-maxVisible+3, current), total-1
	default:
		start, end = current-half, current+half
	}
	if start < 2 {
		start = 2
	}
	if end > total-1 {
		end = total - 1
	}

	out := make([]PageItem, 0, maxVisible+4)
	out = append(out, pageNumber(1))
	if start > 2 {
		out = append(out, ellipsis)
	}
	for n := start; n <= end; n++ {
		out = append(out, pageNumber(n))
	}
	if end < total-1 {
		out = append(out, ellipsis)
	}
	out = append(out, pageNumber(total))
	return out
}

// PageLabels is PageNumbers rendered as strings.
func PageLabels(current, total, maxVisible int) []string {
	items := PageNumbers(current, total, maxVisible)
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}
