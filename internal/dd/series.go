package dd

// factorials holds 0! through 19!. Every entry up to 18! is exact in a float64.
var factorials = [...]float64{
	+1.0,                 // 0
	+1.0,                 // 1
	+2.0,                 // 2
	+6.0,                 // 3
	+24.0,                // 4
	+120.0,               // 5
	+720.0,               // 6
	+5040.0,              // 7
	+40320.0,             // 8
	+362880.0,            // 9
	+3628800.0,           // 10
	+39916800.0,          // 11
	+479001600.0,         // 12
	+6.2270208e9,         // 13
	+8.71782912e10,       // 14
	+1.307674368e12,      // 15
	+2.0922789888e13,     // 16
	+3.55687428096e14,    // 17
	+6.402373705728e15,   // 18
	+1.21645100408832e17, // 19
}

// lnSplitCoef holds the Remez coefficients, already split, of the even
// polynomial approximating ln((1+x)/(1-x))/x in powers of x^2.
var lnSplitCoef = [...]Pair{
	{2.0, 0.0},
	{0.6666666269302368, 3.9736429850260626e-8},
	{0.3999999761581421, 2.3841857910019882e-8},
	{0.2857142686843872, 1.7029898543501842e-8},
	{0.2222222089767456, 1.3245471311735498e-8},
	{0.1818181574344635, 2.4384203044354907e-8},
	{0.1538461446762085, 9.140260083262505e-9},
	{0.13333332538604736, 9.220590270857665e-9},
	{0.11764700710773468, 1.2393345855018391e-8},
	{0.10526403784751892, 8.251545029714408e-9},
	{0.0952233225107193, 1.2675934823758863e-8},
	{0.08713622391223907, 1.1430250008909141e-8},
	{0.07842259109020233, 2.404307984052299e-9},
	{0.08371849358081818, 1.176342548272881e-8},
	{0.030589580535888672, 1.2958646899018938e-9},
	{0.14982303977012634, 1.225743062930824e-8},
}

// Factorial returns i! from the lookup table. It panics when i is outside
// [0, 19].
func Factorial(i int) float64 {
	return factorials[i]
}

// FactorialCount is the number of Taylor terms the slow evaluators use.
const FactorialCount = len(factorials)

// termParity selects which Taylor terms a series keeps.
type termParity int

const (
	allTerms termParity = iota
	evenTerms
	oddTerms
)

// taylor evaluates sum(±x^i/i!) from the highest factorial down, Horner style.
// Signed series negate terms whose index has bit 1 set (i = 2, 3, 6, 7, ...),
// which for the even or odd subsequence alternates the sign.
func taylor(x float64, parity termParity, signed bool) Pair {
	xs := Split(x)
	var ys Pair

	for i := len(factorials) - 1; i >= 0; i-- {
		ys = SplitMult(xs, ys)

		switch parity {
		case evenTerms:
			if i&1 != 0 {
				continue
			}
		case oddTerms:
			if i&1 == 0 {
				continue
			}
		}

		facts := SplitReciprocal(Split(factorials[i]))
		if signed && i&2 != 0 {
			facts = facts.Neg()
		}
		ys = SplitAdd(ys, facts)
	}
	return ys
}

// SlowSin returns sin(x) from its Taylor series at double-double precision,
// both recombined and as a pair. Intended for table generation, where x lies in
// [0, 6/8].
func SlowSin(x float64) (float64, Pair) {
	ys := taylor(x, oddTerms, true)
	return ys.Hi + ys.Lo, ys
}

// SlowCos returns cos(x) from its Taylor series at double-double precision.
func SlowCos(x float64) (float64, Pair) {
	ys := taylor(x, evenTerms, true)
	return ys.Hi + ys.Lo, ys
}

// SlowExp returns e^x from its Taylor series at double-double precision.
func SlowExp(x float64) (float64, Pair) {
	ys := taylor(x, allTerms, false)
	return ys.Hi + ys.Lo, ys
}

// SlowLog returns ln(xi) at double-double precision.
//
// The series is evaluated in x = (xi-1)/(xi+1), which must lie in [0, 1/3].
// Nothing checks that range: an argument outside it yields a wrong value, not
// an error.
func SlowLog(xi float64) Pair {
	x := Split(xi)

	x.Hi += 1.0
	x = x.Resplit()
	// SplitReciprocal rotates a zero Hi into place; the subtraction below
	// must see the operand in the same shape.
	if x.Hi == 0.0 {
		x = Pair{Hi: x.Lo}
	}
	a := SplitReciprocal(x)
	x.Hi -= 2.0
	x = x.Resplit()
	x = SplitMult(x, a)

	x2 := SplitMult(x, x)

	y := lnSplitCoef[len(lnSplitCoef)-1]
	for i := len(lnSplitCoef) - 2; i >= 0; i-- {
		y = SplitMult(y, x2)
		y = SplitAdd(y, lnSplitCoef[i])
	}

	return SplitMult(y, x)
}
