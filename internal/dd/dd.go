package dd

// ─────────────────────────────────────────────────────────────────────────────
// Split Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// splitFactor is 2^30. Adding and subtracting d*2^30 clears the low 30
	// mantissa bits of d.
	splitFactor = 1073741824.0

	// splitFactorInv is 2^-30, used on the pre-scaled path for huge inputs.
	splitFactorInv = 9.31322574615478515625e-10

	// SplitLimit is the magnitude above which d*2^30 could overflow. Inputs at
	// or beyond it are pre-scaled by 2^-30 before the bits are cleared.
	SplitLimit = 8e298

	// reciprocalB is 2^-22 and reciprocalA is 1 - 2^-22. They seed the
	// reciprocal so that the first approximation is already split.
	reciprocalB = 1.0 / 4194304.0
	reciprocalA = 1.0 - reciprocalB
)

// Pair is a double-double number whose value is Hi + Lo.
type Pair struct {
	Hi float64
	Lo float64
}

// Float64 returns the pair recombined into a single float64.
func (p Pair) Float64() float64 {
	return p.Hi + p.Lo
}

// Neg returns -p, component-wise.
func (p Pair) Neg() Pair {
	return Pair{Hi: -p.Hi, Lo: -p.Lo}
}

// Scale multiplies both components by f without renormalizing. It is exact
// when f is a power of two.
func (p Pair) Scale(f float64) Pair {
	return Pair{Hi: p.Hi * f, Lo: p.Lo * f}
}

// Split decomposes d into a high part with its low 30 mantissa bits cleared
// and the exact residual.
func Split(d float64) Pair {
	if d < SplitLimit && d > -SplitLimit {
		a := float64(d * splitFactor)
		hi := (d + a) - a
		return Pair{Hi: hi, Lo: d - hi}
	}
	a := float64(d * splitFactorInv)
	hi := float64((d+a-d)*splitFactor)
	return Pair{Hi: hi, Lo: d - hi}
}

// Resplit renormalizes p so that Hi has cleared low bits and Lo absorbs the
// remainder, including the rounding error of the initial Hi + Lo sum.
func (p Pair) Resplit() Pair {
	c := p.Hi + p.Lo
	d := -(c - p.Hi - p.Lo)

	if c < SplitLimit && c > -SplitLimit {
		z := float64(c * splitFactor)
		hi := (c + z) - z
		return Pair{Hi: hi, Lo: c - hi + d}
	}
	z := float64(c * splitFactorInv)
	hi := float64((c+z-c)*splitFactor)
	return Pair{Hi: hi, Lo: c - hi + d}
}

// SplitMult returns a*b. Hi*Hi is exact for split operands; the three
// cross terms are summed into Lo before the result is renormalized.
func SplitMult(a, b Pair) Pair {
	ans := Pair{
		Hi: a.Hi * b.Hi,
		Lo: float64(a.Hi*b.Lo) + float64(a.Lo*b.Hi) + float64(a.Lo*b.Lo),
	}
	return ans.Resplit()
}

// SplitAdd returns a+b, component-wise then renormalized.
func SplitAdd(a, b Pair) Pair {
	ans := Pair{Hi: a.Hi + b.Hi, Lo: a.Lo + b.Lo}
	return ans.Resplit()
}

// SplitReciprocal returns 1/in.
//
// A pair whose Hi is zero is first rotated so Lo becomes Hi. If Lo is zero as
// well the result is not finite; no error is reported.
func SplitReciprocal(in Pair) Pair {
	if in.Hi == 0.0 {
		in = Pair{Hi: in.Lo}
	}

	result := Pair{
		Hi: reciprocalA / in.Hi,
		Lo: (float64(reciprocalB*in.Hi) - float64(reciprocalA*in.Lo)) /
			(float64(in.Hi*in.Hi) + float64(in.Hi*in.Lo)),
	}
	if result.Lo != result.Lo {
		result.Lo = 0.0
	}
	result = result.Resplit()

	for i := 0; i < 2; i++ {
		err := 1.0 - float64(result.Hi*in.Hi) - float64(result.Hi*in.Lo) -
			float64(result.Lo*in.Hi) - float64(result.Lo*in.Lo)
		err *= result.Hi + result.Lo
		result.Lo += err
	}
	return result
}

// QuadMult returns (a.Hi+a.Lo)*(b.Hi+b.Lo) as the sum of four split products,
// each accumulated with its own rounding residual.
func QuadMult(a, b Pair) Pair {
	xs := Split(a.Hi)
	ys := Split(b.Hi)
	zs := SplitMult(xs, ys)
	result := zs

	ys = Split(b.Lo)
	zs = SplitMult(xs, ys)
	result = accumulate(result, zs)

	xs = Split(a.Lo)
	ys = Split(b.Hi)
	zs = SplitMult(xs, ys)
	result = accumulate(result, zs)

	ys = Split(b.Lo)
	zs = SplitMult(xs, ys)
	return accumulate(result, zs)
}

// accumulate adds both components of z into r, carrying each addition's
// rounding error into r.Lo.
func accumulate(r, z Pair) Pair {
	tmp := r.Hi + z.Hi
	r.Lo -= tmp - r.Hi - z.Hi
	r.Hi = tmp

	tmp = r.Hi + z.Lo
	r.Lo -= tmp - r.Hi - z.Lo
	r.Hi = tmp
	return r
}
