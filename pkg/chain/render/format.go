package render

import (
	"fmt"
	"math"

	"chainfmt/pkg/chain/models"
)

// numberFormat is the workbook number format for numeric cells.
const numberFormat = "#,##0"

// FormatCell renders a numeric cell the way the workbook's number format
// displays it: rounded to an integer with thousands separators. Missing
// values render as the empty string.
func FormatCell(v float64) string {
	if models.IsMissing(v) {
		return ""
	}
	return groupThousands(int64(math.Round(v)))
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	start := 0
	if s[0] == '-' {
		start = 1
	}

	digits := len(s) - start
	if digits <= 3 {
		return s
	}

	grouped := s[len(s)-3:]
	rest := s[start : len(s)-3]
	for len(rest) > 3 {
		grouped = rest[len(rest)-3:] + "," + grouped
		rest = rest[:len(rest)-3]
	}
	return s[:start] + rest + "," + grouped
}
