package parser

import (
	"math"

	"chainfmt/pkg/chain/models"
)

// croreDivisor scales OI change × VWAP down to crores for the MONEY columns.
const croreDivisor = 10_000_000

// Inputs holds the eight extracted series the deriver consumes.
// All series are aligned to the same data rows.
type Inputs struct {
	Time       []string
	Strike     models.NamedSeries
	CEOIChange models.NamedSeries
	CEOI       models.NamedSeries
	CEVWAP     models.NamedSeries
	PEVWAP     models.NamedSeries
	PEOI       models.NamedSeries
	PEOIChange models.NamedSeries
}

// Derive computes the derived call/put metrics and assembles the canonical
// table. It is pure: the same inputs always produce the same report.
//
// Row-wise formulas:
//
//	CE MONEY = round(CE OI change × CE VWAP / 1e7)
//	CE BEP   = round(strike + CE VWAP)
//	PE BEP   = round(strike − PE VWAP)
//	PE MONEY = round(PE OI change × PE VWAP / 1e7)
//
// Rounding is math.Round, i.e. half away from zero. A missing operand makes
// the result missing; NaN arithmetic gives that for free.
func Derive(in Inputs) models.Report {
	rows := make([]models.CanonicalRow, len(in.Time))
	for i := range rows {
		strike := in.Strike.Values[i]
		ceChange := in.CEOIChange.Values[i]
		ceVWAP := in.CEVWAP.Values[i]
		peChange := in.PEOIChange.Values[i]
		peVWAP := in.PEVWAP.Values[i]

		rows[i] = models.CanonicalRow{
			Time:       in.Time[i],
			CEOIChange: ceChange,
			CEOI:       in.CEOI.Values[i],
			CEMoney:    math.Round(ceChange * ceVWAP / croreDivisor),
			CEBEP:      math.Round(strike + ceVWAP),
			CEVWAP:     ceVWAP,
			Strike:     strike,
			PEVWAP:     peVWAP,
			PEBEP:      math.Round(strike - peVWAP),
			PEMoney:    math.Round(peChange * peVWAP / croreDivisor),
			PEOI:       in.PEOI.Values[i],
			PEOIChange: peChange,
		}
	}
	return models.Report{Rows: rows}
}
