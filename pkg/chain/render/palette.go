package render

import "chainfmt/pkg/chain/models"

// Palette carries every colour the render surfaces share. Both the workbook
// writer and the web preview consume the same palette and the same computed
// fills, so a value is guaranteed the same colour on either surface.
type Palette struct {
	// OIChange colours the OI-change pair, anchored at zero.
	OIChange Scale
	// Money colours the notional-flow pair, anchored at the median.
	Money Scale
	// OpenInterest colours the open-interest pair, anchored at the median.
	OpenInterest Scale

	// NegativeFont overrides the font colour of negative OI-change cells.
	NegativeFont RGB
	HeaderFill   RGB
	HeaderFont   RGB
	// CallHighlight fills the CE BEP cell of rows in the call side's
	// joint top-K; PutHighlight does the same for PE BEP.
	CallHighlight RGB
	PutHighlight  RGB
}

// DefaultPalette returns the standard report palette.
func DefaultPalette() Palette {
	return Palette{
		OIChange: Scale{
			Anchor: AnchorZero,
			Min:    mustHex("F8696B"),
			Mid:    mustHex("FFEB84"),
			Max:    mustHex("63BE7B"),
		},
		Money: Scale{
			Anchor: AnchorPercentile,
			Pct:    50,
			Min:    mustHex("9DC3E6"),
			Mid:    mustHex("FFFFFF"),
			Max:    mustHex("1F4E79"),
		},
		OpenInterest: Scale{
			Anchor: AnchorPercentile,
			Pct:    50,
			Min:    mustHex("FFF2CC"),
			Mid:    mustHex("F4B183"),
			Max:    mustHex("8B4513"),
		},
		NegativeFont:  mustHex("FF0000"),
		HeaderFill:    mustHex("4F81BD"),
		HeaderFont:    mustHex("FFFFFF"),
		CallHighlight: mustHex("FFD966"),
		PutHighlight:  mustHex("C6EFCE"),
	}
}

// ColumnScales pairs canonical column positions with their gradient.
func (p Palette) ColumnScales() map[int]Scale {
	return map[int]Scale{
		models.ColCEOIChange: p.OIChange,
		models.ColPEOIChange: p.OIChange,
		models.ColCEMoney:    p.Money,
		models.ColPEMoney:    p.Money,
		models.ColCEOI:       p.OpenInterest,
		models.ColPEOI:       p.OpenInterest,
	}
}
