// Package models defines the data structures shared by the option-chain pipeline.
package models

import "math"

// Missing returns the marker used for cells that could not be coerced to a
// number. Derived metrics propagate the marker instead of computing a
// misleading zero: "no data" and "zero" mean different things to a reviewer.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v carries the missing-value marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}
