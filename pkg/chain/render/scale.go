// Package render maps the canonical table onto styled output surfaces.
package render

import (
	"fmt"
	"math"
	"sort"

	"chainfmt/pkg/chain/models"
)

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex renders the colour as an uppercase RRGGBB string.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses an RRGGBB string, with or without a leading '#'.
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var c RGB
	if len(s) != 6 {
		return c, fmt.Errorf("colour %q is not RRGGBB", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("colour %q is not RRGGBB: %w", s, err)
	}
	return c, nil
}

// mustHex is ParseHex for the compile-time palette literals.
func mustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Anchor selects how a scale's midpoint is pinned.
type Anchor int

const (
	// AnchorZero pins the midpoint colour at value 0.
	AnchorZero Anchor = iota
	// AnchorPercentile pins the midpoint colour at the Pct percentile
	// of the column's values.
	AnchorPercentile
)

// Scale is an immutable three-colour gradient specification, applied
// per column independently of other columns.
type Scale struct {
	Anchor Anchor
	Pct    float64 // percentile for AnchorPercentile
	Min    RGB
	Mid    RGB
	Max    RGB
}

// Stats holds the per-column statistics a Scale interpolates against.
// They are computed once per column at render time.
type Stats struct {
	Min, Max float64
	Mid      float64 // 0 for zero-anchored scales, the percentile otherwise
	Valid    bool    // false when the column had no numeric values
}

// ColumnStats computes Stats over values for the given scale, ignoring
// missing entries. An all-missing column yields Valid == false, which
// short-circuits colouring for that column.
func ColumnStats(values []float64, scale Scale) Stats {
	clean := values[:0:0]
	for _, v := range values {
		if !models.IsMissing(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return Stats{}
	}

	st := Stats{Min: clean[0], Max: clean[0], Valid: true}
	for _, v := range clean[1:] {
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
	}
	if scale.Anchor == AnchorPercentile {
		st.Mid = percentile(clean, scale.Pct)
	}
	return st
}

// percentile returns the p-th percentile of values using linear
// interpolation between order statistics, matching the usual
// spreadsheet definition. p is in [0, 100].
func percentile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}

// ColorFor maps one value onto the gradient. The boolean is false for
// missing values and for columns with no usable statistics; callers skip
// colouring in that case. The mapper is pure given st, so every render
// surface produces the same colour for the same value.
func (sc Scale) ColorFor(value float64, st Stats) (RGB, bool) {
	if !st.Valid || models.IsMissing(value) {
		return RGB{}, false
	}

	if value <= st.Mid {
		span := st.Mid - st.Min
		if span <= 0 {
			// Degenerate lower segment: everything sits on the midpoint.
			return sc.Mid, true
		}
		return lerp(sc.Min, sc.Mid, clamp01((value-st.Min)/span)), true
	}

	span := st.Max - st.Mid
	if span <= 0 {
		return sc.Mid, true
	}
	return lerp(sc.Mid, sc.Max, clamp01((value-st.Mid)/span)), true
}

// lerp interpolates linearly between two colours, t in [0, 1].
func lerp(a, b RGB, t float64) RGB {
	return RGB{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
