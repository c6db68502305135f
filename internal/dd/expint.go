package dd

// e is Euler's number as a double-double constant.
var e = Pair{Hi: 2.718281828459045, Lo: 1.4456468917292502e-16}

// E returns Euler's number as a pair.
func E() Pair {
	return e
}

// Expint returns e^p for an integer p by binary exponentiation over QuadMult.
// The pair result is renormalized; the float64 result is the raw sum.
//
// A negative p leaves the loop unexecuted and yields 1.
func Expint(p int) (float64, Pair) {
	xs := e
	ys := Split(1.0)

	for p > 0 {
		if p&1 != 0 {
			ys = QuadMult(ys, xs)
		}
		xs = QuadMult(xs, xs)
		p >>= 1
	}

	return ys.Hi + ys.Lo, ys.Resplit()
}
