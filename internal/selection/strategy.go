//go:generate mockgen -source=strategy.go -destination=mocks/mock_strategy.go -package=mocks

package selection

import "math/rand/v2"

// PivotStrategy chooses the index of the pivot for the window [begin, end) of
// work. The window holds more than MinSelectSize elements.
type PivotStrategy interface {
	PivotIndex(work []float64, begin, end int) int
}

// MedianOf3 picks the median of the first, middle and last elements.
type MedianOf3 struct{}

// PivotIndex implements PivotStrategy.
func (MedianOf3) PivotIndex(work []float64, begin, end int) int {
	inclusiveEnd := end - 1
	middle := begin + (inclusiveEnd-begin)/2
	wBegin := work[begin]
	wMiddle := work[middle]
	wEnd := work[inclusiveEnd]

	if wBegin < wMiddle {
		if wMiddle < wEnd {
			return middle
		}
		if wBegin < wEnd {
			return inclusiveEnd
		}
		return begin
	}

	if wBegin < wEnd {
		return begin
	}
	if wMiddle < wEnd {
		return inclusiveEnd
	}
	return middle
}

// Central picks the middle of the window.
type Central struct{}

// PivotIndex implements PivotStrategy.
func (Central) PivotIndex(_ []float64, begin, end int) int {
	return begin + (end-begin)/2
}

// Random picks a uniformly distributed index in [begin, end-1). The last
// element of the window is never chosen.
//
// A Random is not safe for concurrent use.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random strategy with a deterministic source.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// PivotIndex implements PivotStrategy.
func (r *Random) PivotIndex(_ []float64, begin, end int) int {
	return begin + r.rng.IntN(end-begin-1)
}
