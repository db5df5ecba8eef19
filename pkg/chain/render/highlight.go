package render

import (
	"math"
	"sort"

	"chainfmt/pkg/chain/models"
)

// DefaultHighlightK is the joint top-K depth used per side.
const DefaultHighlightK = 4

// JointTopK returns the rows that rank in the top k of both columns.
// Each column is ranked descending with a stable sort, so rows with equal
// values keep their original order; missing values rank last. An empty
// intersection is a valid result.
func JointTopK(a, b []float64, k int) map[int]bool {
	topA := topK(a, k)
	topB := topK(b, k)

	joint := make(map[int]bool)
	for row := range topA {
		if topB[row] {
			joint[row] = true
		}
	}
	return joint
}

func topK(values []float64, k int) map[int]bool {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return sortKey(values[order[x]]) > sortKey(values[order[y]])
	})

	if k > len(order) {
		k = len(order)
	}
	top := make(map[int]bool, k)
	for _, row := range order[:k] {
		top[row] = true
	}
	return top
}

// sortKey makes missing values comparable: they sink below every number.
func sortKey(v float64) float64 {
	if models.IsMissing(v) {
		return math.Inf(-1)
	}
	return v
}
