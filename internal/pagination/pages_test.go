// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package pagination

import (
	"strings"
	"testing"
)

func TestPageLabels(t *testing.T) {
	cases := []struct {
		name                string
		current, total, max int
		want                string
	}{
		{"first of ten", 1, 10, 5, "1 2 3 ellipsis 10"},
		{"last of ten", 10, 10, 5, "1 ellipsis 8 9 10"},
		{"all fit", 5, 5, 5, "1 2 3 4 5"},
		{"middle of twenty", 10, 20, 5, "1 ellipsis 8 9 10 11 12 ellipsis 20"},
		{"near start", 3, 20, 5, "1 2 3 ellipsis 20"},
		{"just past start window", 4, 20, 5, "1 2 3 4 5 6 ellipsis 20"},
		{"near end", 18, 20, 5, "1 ellipsis 18 19 20"},
		{"single page", 1, 1, 5, "1"},
		{"no pages", 1, 0, 5, ""},
		{"default width", 1, 3, 0, "1 2 3"},
		{"current beyond total clamps", 50, 20, 5, "1 ellipsis 18 19 20"},
		{"wider bar", 10, 30, 7, "1 ellipsis 7 8 9 10 11 12 13 ellipsis 30"},
		{"narrow bar near start", 2, 10, 3, "1 2 ellipsis 10"},
		{"narrow bar near end", 9, 10, 3, "1 ellipsis 9 10"},
		{"two wide on first page", 1, 10, 2, "1 ellipsis 10"},
		{"two wide on second page", 2, 10, 2, "1 2 ellipsis 10"},
		{"one wide in the middle", 5, 10, 1, "1 ellipsis 5 ellipsis 10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := strings.Join(PageLabels(tc.current, tc.total, tc.max), " ")
			if got != tc.want {
				t.Fatalf("PageLabels(%d, %d, %d) = %q, want %q", tc.current, tc.total, tc.max, got, tc.want)
			}
		})
	}
}

func TestPageNumbers_FirstAndLastAlwaysPresent(t *testing.T) {
	for total := 6; total <= 40; total++ {
		for cur := 1; cur <= total; cur++ {
			items := PageNumbers(cur, total, 5)
			if items[0].Number != 1 || items[len(items)-1].Number != total {
				t.Fatalf("cur=%d total=%d: bounds missing in %v", cur, total, items)
			}
			prev := 0
			for _, it := range items {
				if it.Ellipsis {
					continue
				}
				if it.Number <= prev {
					t.Fatalf("cur=%d total=%d: not strictly increasing: %v", cur, total, items)
				}
				prev = it.Number
			}
		}
	}
}

func TestPageNumbers_CurrentAlwaysListed(t *testing.T) {
	for maxVisible := 1; maxVisible <= 7; maxVisible++ {
		for total := 1; total <= 30; total++ {
			for cur := 1; cur <= total; cur++ {
				items := PageNumbers(cur, total, maxVisible)
				found := false
				for _, it := range items {
					if !it.Ellipsis && it.Number == cur {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("PageNumbers(%d, %d, %d) = %v: current page missing", cur, total, maxVisible, items)
				}
			}
		}
	}
}
