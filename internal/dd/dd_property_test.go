package dd

import (
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestSplit_PropertyBased verifies that the two halves of a split always add
// back to the original value.
func TestSplit_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("Hi+Lo recombines exactly", prop.ForAll(
		func(d float64) bool {
			p := Split(d)
			return p.Hi+p.Lo == d
		},
		gen.Float64Range(-1e10, 1e10),
	))

	properties.Property("Resplit of a split is lossless", prop.ForAll(
		func(d float64) bool {
			p := Split(d).Resplit()
			return p.Hi+p.Lo == d
		},
		gen.Float64Range(-1e200, 1e200),
	))

	properties.TestingRun(t)
}

// TestSplitMult_PropertyBased checks the product of two split values against a
// 512-bit reference.
func TestSplitMult_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("SplitMult is accurate beyond float64", prop.ForAll(
		func(x, y float64) bool {
			a, b := Split(x), Split(y)
			want := new(big.Float).SetPrec(512).Mul(bigPair(a), bigPair(b))
			e := relErr(bigPair(SplitMult(a, b)), want)
			if e > 1e-20 {
				t.Logf("SplitMult(%v, %v): relative error %g", x, y, e)
				return false
			}
			return true
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

// TestPythagoreanIdentity_PropertyBased verifies sin²x + cos²x = 1 on the
// table domain, evaluated entirely in double-double arithmetic.
func TestPythagoreanIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("sin² + cos² = 1", prop.ForAll(
		func(x float64) bool {
			_, s := SlowSin(x)
			_, c := SlowCos(x)
			sum := SplitAdd(SplitMult(s, s), SplitMult(c, c))
			residual := (sum.Hi - 1.0) + sum.Lo
			if math.Abs(residual) > 1e-18 {
				t.Logf("x=%v: residual %g", x, residual)
				return false
			}
			return true
		},
		gen.Float64Range(0, 0.75),
	))

	properties.TestingRun(t)
}

// TestExpint_PropertyBased verifies e^(p+q) = e^p * e^q.
func TestExpint_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Expint is additive in the exponent", prop.ForAll(
		func(p, q int) bool {
			sum, _ := Expint(p + q)
			ep, _ := Expint(p)
			eq, _ := Expint(q)
			prod := ep * eq
			return math.Abs(sum-prod)/sum <= 1e-13
		},
		gen.IntRange(0, 300),
		gen.IntRange(0, 300),
	))

	properties.TestingRun(t)
}
