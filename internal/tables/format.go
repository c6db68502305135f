package tables

import (
	"math"
	"strconv"
	"strings"
)

// FormatEntry renders d as one array element: a "+" in front of every value
// that compares >= 0, the decimal form of d and a "d," suffix. NaN is rendered
// as the bare token "NaN,".
//
// -0 compares equal to 0 and so prints as "+-0.0d,"; the generated sources have
// always carried that form.
func FormatEntry(d float64) string {
	if math.IsNaN(d) {
		return "NaN,"
	}
	sign := ""
	if d >= 0 {
		sign = "+"
	}
	return sign + formatDouble(d) + "d,"
}

// formatDouble prints the shortest decimal that round-trips to d. Magnitudes
// in [1e-3, 1e7) and zero use plain notation with at least one fractional
// digit ("1.0", "0.125"); everything else uses a mantissa with at least one
// fractional digit and an unpadded exponent ("1.0E-5", "6.2270208E9").
func formatDouble(d float64) string {
	switch {
	case math.IsInf(d, 1):
		return "Infinity"
	case math.IsInf(d, -1):
		return "-Infinity"
	}

	abs := math.Abs(d)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(d, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(d, 'E', -1, 64), "E")
	if !strings.Contains(mant, ".") {
		// Two digits are always printed. Among the two-digit decimals that
		// still round-trip, take the one nearest d: for the smallest
		// subnormal that is 4.9E-324, not 5.0E-324.
		mant += ".0"
		near := strconv.FormatFloat(d, 'E', 1, 64)
		if v, err := strconv.ParseFloat(near, 64); err == nil && v == d {
			mant, exp, _ = strings.Cut(near, "E")
		}
	}
	e, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(e)
}
