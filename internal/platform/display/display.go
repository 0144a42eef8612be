// Package display holds the formatting shared by the widgets' view-models.
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	fullStar  = "★"
	emptyStar = "☆"

	// MaxStars is the number of glyphs in a rating.
	MaxStars = 5
)

// Clamp keeps n within [lo, hi].
func Clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}

// OneDecimal formats n with exactly one decimal, 3 becomes "3.0".
// A value exactly halfway between two decimals rounds away from zero, 2.25 becomes "2.3",
// everything else rounds to the nearest decimal of its exact binary value.
func OneDecimal(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0.0"
	}

	// n*10 lands exactly on .5 only when n*4 is an odd integer, multiplying by 4 and 10 is exact there.
	if q := n * 4; q == math.Trunc(q) && math.Mod(q, 2) != 0 {
		return strconv.FormatFloat(math.Copysign(math.Ceil(math.Abs(n)*10)/10, n), 'f', 1, 64)
	}

	return strconv.FormatFloat(n, 'f', 1, 64)
}

// Percent is count as a whole percentage of total, or 0 when there's no total.
func Percent(count, total int) int {
	if total <= 0 {
		return 0
	}

	return int(math.Round(float64(count) / float64(total) * 100))
}

// StarGlyphs draws stars filled and the rest of the five empty.
// Values outside 0-5 are clamped so the string is always five glyphs.
func StarGlyphs(stars int) string {
	filled := Clamp(stars, 0, MaxStars)

	return strings.Repeat(fullStar, filled) + strings.Repeat(emptyStar, MaxStars-filled)
}

var shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// Date formats t in loc the way the widget shows dates everywhere: "05 de ene de 2025".
func Date(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}

	return fmt.Sprintf("%02d de %s de %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape makes free text safe to embed in markup.
func Escape(s string) string {
	return escaper.Replace(s)
}
