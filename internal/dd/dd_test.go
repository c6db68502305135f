package dd

import (
	"math"
	"math/big"
	"testing"
)

// bigPair returns Hi+Lo exactly, as a 512-bit float.
func bigPair(p Pair) *big.Float {
	hi := new(big.Float).SetPrec(512).SetFloat64(p.Hi)
	lo := new(big.Float).SetPrec(512).SetFloat64(p.Lo)
	return hi.Add(hi, lo)
}

// relErr returns |got-want|/|want| computed at 512 bits.
func relErr(got, want *big.Float) float64 {
	diff := new(big.Float).SetPrec(512).Sub(got, want)
	if want.Sign() == 0 {
		f, _ := diff.Abs(diff).Float64()
		return f
	}
	diff.Quo(diff, want)
	f, _ := diff.Abs(diff).Float64()
	return f
}

func TestSplit_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		d      float64
		wantHi float64
		wantLo float64
	}{
		{"one", 1.0, 1.0, 0.0},
		{"zero", 0.0, 0.0, 0.0},
		{"negative short mantissa", -3.5, -3.5, 0.0},
		{"power of two", 1024.0, 1024.0, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Split(tc.d)
			if got.Hi != tc.wantHi || got.Lo != tc.wantLo {
				t.Errorf("Split(%v) = %+v, want {Hi:%v Lo:%v}", tc.d, got, tc.wantHi, tc.wantLo)
			}
		})
	}
}

func TestSplit_RecombinesExactly(t *testing.T) {
	t.Parallel()

	inputs := []float64{
		math.Pi, -math.E, 1.0 / 3.0, 0.1, 123456789.123456789,
		1e-300, 5e-324, 7.9e298, -7.9e298,
		// pre-scaled path
		8e298, -8e298, 1e300, -1e305, 1e307,
	}

	for _, d := range inputs {
		p := Split(d)
		if p.Hi+p.Lo != d {
			t.Errorf("Split(%v): Hi+Lo = %v, want exact", d, p.Hi+p.Lo)
		}
		if d != 0 && math.Abs(p.Lo) > math.Abs(p.Hi)*0x1p-21 {
			t.Errorf("Split(%v): |Lo| = %v is not small relative to Hi = %v", d, p.Lo, p.Hi)
		}
	}
}

func TestSplit_HighPartProductIsExact(t *testing.T) {
	t.Parallel()

	a := Split(math.Pi)
	b := Split(math.Sqrt2)

	prod := a.Hi * b.Hi
	want := new(big.Float).SetPrec(512).SetFloat64(a.Hi)
	want.Mul(want, new(big.Float).SetPrec(512).SetFloat64(b.Hi))
	got := new(big.Float).SetPrec(512).SetFloat64(prod)
	if got.Cmp(want) != 0 {
		t.Errorf("Hi*Hi was rounded: got %v, want %v", got, want)
	}
}

func TestResplit_CapturesSumRoundingError(t *testing.T) {
	t.Parallel()

	// 1 + 2^-60 is not representable; Resplit must keep the tail in Lo.
	p := Pair{Hi: 1.0, Lo: 0x1p-60}.Resplit()
	if p.Hi != 1.0 {
		t.Fatalf("Hi = %v, want 1", p.Hi)
	}
	if p.Lo != 0x1p-60 {
		t.Errorf("Lo = %v, want 2^-60", p.Lo)
	}
}

func TestResplit_LargeMagnitudePath(t *testing.T) {
	t.Parallel()

	p := Pair{Hi: 1e300, Lo: 1e283}.Resplit()
	want := bigPair(Pair{Hi: 1e300, Lo: 1e283})
	if e := relErr(bigPair(p), want); e > 1e-20 {
		t.Errorf("relative error %g after resplit of large pair", e)
	}
}

func TestSplitMult_Precision(t *testing.T) {
	t.Parallel()

	cases := []struct{ x, y float64 }{
		{math.Pi, math.E},
		{1.0 / 3.0, 3.0},
		{-123.456, 0.001},
		{1e-100, 1e100},
		{0.0, 42.0},
	}

	for _, tc := range cases {
		a, b := Split(tc.x), Split(tc.y)
		got := SplitMult(a, b)
		want := new(big.Float).SetPrec(512).Mul(bigPair(a), bigPair(b))
		if e := relErr(bigPair(got), want); e > 1e-20 {
			t.Errorf("SplitMult(%v, %v): relative error %g", tc.x, tc.y, e)
		}
	}
}

func TestSplitAdd(t *testing.T) {
	t.Parallel()

	a := Pair{Hi: 1.0, Lo: 0x1p-70}
	b := Pair{Hi: 2.0, Lo: 0x1p-71}
	got := SplitAdd(a, b)
	want := new(big.Float).SetPrec(512).Add(bigPair(a), bigPair(b))
	if e := relErr(bigPair(got), want); e > 1e-30 {
		t.Errorf("SplitAdd relative error %g", e)
	}
}

func TestSplitReciprocal(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{1.0, 3.0, math.Pi, 0.1, 1e-100, -7.25, 6.402373705728e15} {
		r := SplitReciprocal(Split(x))
		prod := new(big.Float).SetPrec(512).Mul(bigPair(r), bigPair(Split(x)))
		one := new(big.Float).SetPrec(512).SetFloat64(1.0)
		if e := relErr(prod, one); e > 1e-20 {
			t.Errorf("SplitReciprocal(%v): x*(1/x) off by %g", x, e)
		}
	}
}

func TestSplitReciprocal_ZeroHighPart(t *testing.T) {
	t.Parallel()

	r := SplitReciprocal(Pair{Hi: 0.0, Lo: 4.0})
	if math.Abs(r.Float64()-0.25) > 1e-16 {
		t.Errorf("SplitReciprocal({0,4}) = %v, want 0.25", r.Float64())
	}

	// Both parts zero: no panic, no error, a non-finite value.
	z := SplitReciprocal(Pair{})
	v := z.Float64()
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		t.Errorf("SplitReciprocal(0) = %v, want a non-finite value", v)
	}
}

func TestSplitReciprocal_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := Pair{Hi: 0.0, Lo: 2.0}
	_ = SplitReciprocal(in)
	if in.Hi != 0.0 || in.Lo != 2.0 {
		t.Errorf("input changed to %+v", in)
	}
}

func TestQuadMult(t *testing.T) {
	t.Parallel()

	a := Pair{Hi: math.Pi, Lo: 1.2246467991473532e-16}
	b := Pair{Hi: math.E, Lo: 1.4456468917292502e-16}
	got := QuadMult(a, b)
	want := new(big.Float).SetPrec(512).Mul(bigPair(a), bigPair(b))
	if e := relErr(bigPair(got), want); e > 1e-20 {
		t.Errorf("QuadMult relative error %g", e)
	}
}

func TestPairHelpers(t *testing.T) {
	t.Parallel()

	p := Pair{Hi: 1.5, Lo: -0.25}
	if p.Float64() != 1.25 {
		t.Errorf("Float64() = %v", p.Float64())
	}
	if n := p.Neg(); n.Hi != -1.5 || n.Lo != 0.25 {
		t.Errorf("Neg() = %+v", n)
	}
	if s := p.Scale(2.0); s.Hi != 3.0 || s.Lo != -0.5 {
		t.Errorf("Scale(2) = %+v", s)
	}
}
