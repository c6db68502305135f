package selection

import (
	"math"
	"slices"
)

// MinSelectSize is the window length at or below which the remaining
// elements are sorted instead of partitioned.
const MinSelectSize = 15

// Selector answers rank queries with a fixed pivot strategy.
type Selector struct {
	strategy PivotStrategy
}

// New returns a Selector using strategy. A nil strategy selects MedianOf3.
func New(strategy PivotStrategy) *Selector {
	if strategy == nil {
		strategy = MedianOf3{}
	}
	return &Selector{strategy: strategy}
}

// Strategy returns the pivot strategy in use.
func (s *Selector) Strategy() PivotStrategy {
	return s.strategy
}

// Select returns the k-th smallest element of work, counting from zero.
//
// work is reordered in place: on return, work[k] holds the result and the
// elements before it are not greater. pivots is an optional pivot cache from
// NewPivotCache; nil disables caching. k must lie in [0, len(work)); nothing
// checks it.
func (s *Selector) Select(work []float64, pivots []int, k int) float64 {
	begin := 0
	end := len(work)
	node := 0
	usePivots := pivots != nil

	for end-begin > MinSelectSize {
		var pivot int
		if usePivots && node < len(pivots) && pivots[node] >= 0 {
			pivot = pivots[node]
		} else {
			pivot = partition(work, begin, end, s.strategy.PivotIndex(work, begin, end))
			if usePivots && node < len(pivots) {
				pivots[node] = pivot
			}
		}

		switch {
		case k == pivot:
			return work[k]
		case k < pivot:
			end = pivot
			node = min(2*node+1, childBound(pivots, usePivots, end))
		default:
			begin = pivot + 1
			node = min(2*node+2, childBound(pivots, usePivots, end))
		}
	}

	slices.SortFunc(work[begin:end], compareDoubles)
	return work[k]
}

func childBound(pivots []int, usePivots bool, end int) int {
	if usePivots {
		return len(pivots)
	}
	return end
}

// partition moves the value at pivot into its final position within
// [begin, end) and returns that position. Elements before it are not greater
// and elements after it are not smaller.
func partition(work []float64, begin, end, pivot int) int {
	value := work[pivot]
	work[pivot] = work[begin]

	i := begin + 1
	j := end - 1
	for i < j {
		for i < j && work[j] > value {
			j--
		}
		for i < j && work[i] < value {
			i++
		}
		if i < j {
			work[i], work[j] = work[j], work[i]
			i++
			j--
		}
	}

	if i >= end || work[i] > value {
		i--
	}
	work[begin] = work[i]
	work[i] = value
	return i
}

// compareDoubles orders numbers ascending with -0 before +0 and NaN after
// everything else.
func compareDoubles(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}

	aNeg, bNeg := math.Signbit(a), math.Signbit(b)
	switch {
	case aNeg == bNeg:
		return 0
	case aNeg:
		return -1
	}
	return 1
}
