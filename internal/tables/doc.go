// Package tables builds the interpolation tables used by fast transcendental
// functions and prints them as source-ready array literals.
//
// Every table is computed with the double-double kernel of package dd and is
// stored as two parallel float64 slices, A holding the split high parts and B
// the remainders. The log-mantissa table is the exception: it is printed as a
// two-column array whose rows are the (high, low) pairs.
//
// Building is strictly sequential. The sine and cosine recurrences read
// entries produced earlier in the same loop, so indices are filled in
// increasing order.
package tables
