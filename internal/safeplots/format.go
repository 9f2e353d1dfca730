// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	crore = 1e7
	lakh  = 1e5
)

// FormatPrice renders rupees the way listings display them:
// "₹1.25 Cr", "₹45 Lakh", "₹85,000".
func FormatPrice(price float64) string {
	if price == 0 || math.IsNaN(price) {
		return "₹0"
	}
	switch {
	case price >= crore:
		return "₹" + trimUnit(price/crore, 2) + " Cr"
	case price >= lakh:
		return "₹" + trimUnit(price/lakh, 1) + " Lakh"
	}
	return "₹" + FormatIndian(price)
}

// DisplayPrice honors the price-on-request flag.
func DisplayPrice(p *Property) string {
	if p == nil {
		return FormatPrice(0)
	}
	if p.PriceOnRequest {
		return "Price on Request"
	}
	return FormatPrice(p.Price)
}

func trimUnit(v float64, decimals int) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// FormatIndian groups digits in the Indian system (12,34,567) and keeps at
// most three fraction digits.
func FormatIndian(v float64) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	s := strconv.FormatFloat(v, 'f', 3, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	b.WriteString(sign)
	if len(intPart) <= 3 {
		b.WriteString(intPart)
	} else {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		lead := len(head) % 2
		if lead > 0 {
			b.WriteString(head[:lead])
		}
		for i := lead; i < len(head); i += 2 {
			if b.Len() > len(sign) {
				b.WriteByte(',')
			}
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(tail)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

var areaUnitLabels = map[string]string{
	"sqft":    "Sq.Ft.",
	"sqm":     "Sq.M.",
	"sqyd":    "Sq.Yd.",
	"acre":    "Acre",
	"hectare": "Hectare",
	"cent":    "Cent",
	"guntha":  "Guntha",
	"gunta":   "Gunta",
}

// FormatArea renders "1,200 Sq.Ft.". Unknown units are printed as given.
func FormatArea(area float64, unit string) string {
	if math.IsNaN(area) {
		return "0"
	}
	label, ok := areaUnitLabels[unit]
	if !ok {
		label = unit
	}
	return strings.TrimSpace(FormatIndian(area) + " " + label)
}

var propertyTypeLabels = map[string]string{
	"plot":     "Plot",
	"house":    "House",
	"flat":     "Flat",
	"villa":    "Villa",
	"farmland": "Farmland",
}

// PropertyTypeLabel returns the display label; "—" when empty.
func PropertyTypeLabel(t string) string {
	if t == "" {
		return "—"
	}
	if l, ok := propertyTypeLabels[t]; ok {
		return l
	}
	return t
}

var (
	gdriveFilePath = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`)
	gdriveIDParam  = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// ConvertGDriveURL turns a Google Drive share link into a direct thumbnail
// URL. Other URLs are returned unchanged.
func ConvertGDriveURL(u string) string {
	if !strings.Contains(u, "drive.google.com") {
		return u
	}
	for _, re := range []*regexp.Regexp{gdriveFilePath, gdriveIDParam} {
		if m := re.FindStringSubmatch(u); m != nil {
			return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w1000", m[1])
		}
	}
	return u
}
