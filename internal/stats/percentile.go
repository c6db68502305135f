package stats

import (
	"math"

	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/selection"
)

// DefaultCacheLevels is the depth of the pivot cache kept with a data set.
const DefaultCacheLevels = 10

// Percentile estimates quantiles of a data set.
//
// The stored data set is copied on SetData, with NaN values removed. Its pivot
// cache lives as long as the data set. A Percentile is not safe for
// concurrent use.
type Percentile struct {
	estimation EstimationType
	selector   *selection.Selector

	data   []float64
	pivots []int
}

// New returns a Percentile with the given estimation type and pivot strategy.
// A nil strategy selects median-of-three.
func New(estimation EstimationType, strategy selection.PivotStrategy) *Percentile {
	return &Percentile{
		estimation: estimation,
		selector:   selection.New(strategy),
	}
}

// Estimation returns the estimation type in use.
func (pc *Percentile) Estimation() EstimationType { return pc.estimation }

// SetData stores a NaN-free copy of values and resets the pivot cache.
func (pc *Percentile) SetData(values []float64) {
	pc.data = removeNaN(values)
	pc.pivots = selection.NewPivotCache(DefaultCacheLevels)
}

// Len returns the number of stored values.
func (pc *Percentile) Len() int { return len(pc.data) }

// CachedPivots reports how many partitions of the stored data are cached.
func (pc *Percentile) CachedPivots() int { return selection.CachedPivots(pc.pivots) }

// Evaluate returns the quantile p of the stored data set. The stored copy is
// reordered and the pivot cache updated.
//
// Parameters:
//   - p: The quantile in percent, in (0, 100].
//
// Returns:
//   - float64: The estimate, or NaN when no value is stored.
//   - error: An OutOfRangeError when p is outside (0, 100].
func (pc *Percentile) Evaluate(p float64) (float64, error) {
	if err := checkQuantile(p); err != nil {
		return math.NaN(), err
	}
	switch len(pc.data) {
	case 0:
		return math.NaN(), nil
	case 1:
		return pc.data[0], nil
	}
	return pc.estimation.evaluate(pc.data, pc.pivots, p, pc.selector), nil
}

// EvaluateSlice returns the quantile p of values without touching the stored
// data set. values itself is not modified.
//
// An empty slice yields NaN and a single value is returned as is, NaN
// included. Otherwise NaN values are dropped first.
func (pc *Percentile) EvaluateSlice(values []float64, p float64) (float64, error) {
	if err := checkQuantile(p); err != nil {
		return math.NaN(), err
	}
	switch len(values) {
	case 0:
		return math.NaN(), nil
	case 1:
		return values[0], nil
	}

	work := removeNaN(values)
	if len(work) == 0 {
		return math.NaN(), nil
	}
	pivots := selection.NewPivotCache(DefaultCacheLevels)
	return pc.estimation.evaluate(work, pivots, p, pc.selector), nil
}

// Median returns the legacy 50th percentile of values.
func Median(values []float64) float64 {
	m, _ := New(Legacy, nil).EvaluateSlice(values, 50)
	return m
}

func checkQuantile(p float64) error {
	if p > 100 || !(p > 0) {
		return apperrors.OutOfRangeError{Value: p, Lo: 0, Hi: 100}
	}
	return nil
}

func removeNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
