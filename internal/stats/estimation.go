package stats

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/agbru/fastmath/internal/selection"
)

// EstimationType selects how a quantile p is mapped to a position in the
// sorted sample and how neighbouring order statistics are combined.
type EstimationType int

const (
	// Legacy uses position p(n+1) with linear interpolation.
	Legacy EstimationType = iota
	// R1 is the inverse of the empirical distribution function.
	R1
	// R2 averages the two order statistics at discontinuities.
	R2
	// R3 takes the nearest even order statistic.
	R3
	// R4 interpolates the empirical distribution function linearly.
	R4
	// R5 uses the midpoints of the empirical steps.
	R5
	// R6 uses position p(n+1), clamped at both ends.
	R6
	// R7 uses position 1+(n-1)p, the common spreadsheet definition.
	R7
	// R8 is approximately median-unbiased.
	R8
	// R9 is approximately unbiased for normal data.
	R9
)

var estimationNames = [...]string{"legacy", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "r9"}

// String returns the lower-case name of the estimation type.
func (e EstimationType) String() string {
	if e < 0 || int(e) >= len(estimationNames) {
		return fmt.Sprintf("EstimationType(%d)", int(e))
	}
	return estimationNames[e]
}

// EstimationNames lists the names accepted by ParseEstimationType.
func EstimationNames() []string {
	return slices.Clone(estimationNames[:])
}

// ParseEstimationType returns the estimation type called name. Matching is
// case-insensitive and accepts "r-7" and "r_7" as well as "r7".
func ParseEstimationType(name string) (EstimationType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "", "_", "").Replace(n)
	for i, known := range estimationNames {
		if n == known {
			return EstimationType(i), nil
		}
	}
	return Legacy, fmt.Errorf("unknown estimation type %q (valid: %s)", name, strings.Join(estimationNames[:], ", "))
}

// index maps p in [0, 1] to a one-based position in a sample of n values.
func (e EstimationType) index(p float64, n int) float64 {
	length := float64(n)

	switch e {
	case R1:
		if p == 0 {
			return 0
		}
		return length*p + 0.5
	case R2:
		switch p {
		case 0:
			return 0
		case 1:
			return length
		}
		return length*p + 0.5
	case R3:
		if p <= 0.5/length {
			return 0
		}
		return math.RoundToEven(length * p)
	case R4:
		switch {
		case p < 1/length:
			return 0
		case p == 1:
			return length
		}
		return length * p
	case R5:
		switch {
		case p < 0.5/length:
			return 0
		case p >= (length-0.5)/length:
			return length
		}
		return length*p + 0.5
	case R6:
		switch {
		case p < 1/(length+1):
			return 0
		case p >= length/(length+1):
			return length
		}
		return (length + 1) * p
	case R7:
		switch p {
		case 0:
			return 0
		case 1:
			return length
		}
		return 1 + (length-1)*p
	case R8:
		third := 1.0 / 3
		switch {
		case p < 2*third/(length+third):
			return 0
		case p >= (length-third)/(length+third):
			return length
		}
		return (length+third)*p + third
	case R9:
		switch {
		case p < 5.0/8/(length+0.25):
			return 0
		case p >= (length-3.0/8)/(length+0.25):
			return length
		}
		return (length+0.25)*p + 3.0/8
	default:
		switch p {
		case 0:
			return 0
		case 1:
			return length
		}
		return p * (length + 1)
	}
}

// estimate interpolates between the order statistics around the one-based
// position pos, clamping to the extremes outside [1, n).
func estimate(work []float64, pivots []int, pos float64, sel *selection.Selector) float64 {
	n := len(work)
	if pos < 1 {
		return sel.Select(work, pivots, 0)
	}
	if pos >= float64(n) {
		return sel.Select(work, pivots, n-1)
	}

	fpos := math.Floor(pos)
	intPos := int(fpos)
	dif := pos - fpos
	lower := sel.Select(work, pivots, intPos-1)
	upper := sel.Select(work, pivots, intPos)
	return lower + dif*(upper-lower)
}

// evaluate returns the quantile p, given in (0, 100], of the NaN-free work
// array.
func (e EstimationType) evaluate(work []float64, pivots []int, p float64, sel *selection.Selector) float64 {
	pos := e.index(p/100, len(work))

	switch e {
	case R1:
		return estimate(work, pivots, math.Ceil(pos-0.5), sel)
	case R2:
		low := estimate(work, pivots, math.Ceil(pos-0.5), sel)
		high := estimate(work, pivots, math.Floor(pos+0.5), sel)
		return (low + high) / 2
	default:
		return estimate(work, pivots, pos, sel)
	}
}
