package render

import "chainfmt/pkg/chain/models"

// Plan holds every data-dependent style decision, computed once per report.
// Both render surfaces read the same Plan, which is what makes their colours
// identical for identical values.
type Plan struct {
	Palette Palette

	// fills maps canonical column position -> row -> gradient fill.
	fills map[int]map[int]RGB
	// callRows and putRows are the joint top-K row sets per side.
	callRows map[int]bool
	putRows  map[int]bool
}

// BuildPlan computes the colour-scale fills for the six scaled columns and
// the joint top-k highlight sets for both sides.
func BuildPlan(report models.Report, palette Palette, k int) Plan {
	fills := make(map[int]map[int]RGB)
	for col, scale := range palette.ColumnScales() {
		values := report.Column(col)
		stats := ColumnStats(values, scale)
		if !stats.Valid {
			continue
		}
		colFills := make(map[int]RGB, len(values))
		for row, v := range values {
			if c, ok := scale.ColorFor(v, stats); ok {
				colFills[row] = c
			}
		}
		fills[col] = colFills
	}

	return Plan{
		Palette:  palette,
		fills:    fills,
		callRows: JointTopK(report.Column(models.ColCEOIChange), report.Column(models.ColCEMoney), k),
		putRows:  JointTopK(report.Column(models.ColPEOIChange), report.Column(models.ColPEMoney), k),
	}
}

// FillFor returns the background for a data cell: a highlight fill on the
// breakeven columns of jointly top-ranked rows, otherwise the cell's
// gradient fill. The boolean is false when the cell keeps the default
// background.
func (p Plan) FillFor(row, col int) (RGB, bool) {
	switch col {
	case models.ColCEBEP:
		if p.callRows[row] {
			return p.Palette.CallHighlight, true
		}
	case models.ColPEBEP:
		if p.putRows[row] {
			return p.Palette.PutHighlight, true
		}
	}
	if c, ok := p.fills[col][row]; ok {
		return c, true
	}
	return RGB{}, false
}

// FontFor returns the font colour override for a data cell: the warning
// colour on negative OI-change values.
func (p Plan) FontFor(value float64, col int) (RGB, bool) {
	if col != models.ColCEOIChange && col != models.ColPEOIChange {
		return RGB{}, false
	}
	if models.IsMissing(value) || value >= 0 {
		return RGB{}, false
	}
	return p.Palette.NegativeFont, true
}

// CallHighlights returns the call-side joint top-K row set.
func (p Plan) CallHighlights() map[int]bool { return p.callRows }

// PutHighlights returns the put-side joint top-K row set.
func (p Plan) PutHighlights() map[int]bool { return p.putRows }
