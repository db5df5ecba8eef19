package models

// Canonical column positions. Styling rules address columns by position,
// so this order is a contract: changing it breaks every downstream rule.
const (
	ColTime = iota
	ColCEOIChange
	ColCEOI
	ColCEMoney
	ColCEBEP
	ColCEVWAP
	ColStrike
	ColPEVWAP
	ColPEBEP
	ColPEMoney
	ColPEOI
	ColPEOIChange

	ColumnCount = 12
)

// ColumnNames holds the canonical output header in fixed order.
var ColumnNames = [ColumnCount]string{
	"Time",
	"CE OI CHANGE",
	"CE OI",
	"CE MONEY",
	"CE BEP",
	"CE VWAP",
	"Strike Price",
	"PE VWAP",
	"PE BEP",
	"PE MONEY",
	"PE OI",
	"PE OI CHANGE",
}

// CanonicalRow is one output record. All fields except Time are numeric and
// may carry the missing marker.
type CanonicalRow struct {
	Time       string
	CEOIChange float64
	CEOI       float64
	CEMoney    float64
	CEBEP      float64
	CEVWAP     float64
	Strike     float64
	PEVWAP     float64
	PEBEP      float64
	PEMoney    float64
	PEOI       float64
	PEOIChange float64
}

// Numeric returns the value at the canonical column position col.
// ColTime is not numeric; asking for it returns the missing marker.
func (r CanonicalRow) Numeric(col int) float64 {
	switch col {
	case ColCEOIChange:
		return r.CEOIChange
	case ColCEOI:
		return r.CEOI
	case ColCEMoney:
		return r.CEMoney
	case ColCEBEP:
		return r.CEBEP
	case ColCEVWAP:
		return r.CEVWAP
	case ColStrike:
		return r.Strike
	case ColPEVWAP:
		return r.PEVWAP
	case ColPEBEP:
		return r.PEBEP
	case ColPEMoney:
		return r.PEMoney
	case ColPEOI:
		return r.PEOI
	case ColPEOIChange:
		return r.PEOIChange
	default:
		return Missing()
	}
}

// Report is the canonical table that crosses the core/rendering boundary.
// Row order equals input data-row order and is immutable once produced.
type Report struct {
	Rows []CanonicalRow
}

// Column returns the numeric values of one canonical column across all rows.
func (t Report) Column(col int) []float64 {
	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Numeric(col)
	}
	return values
}
