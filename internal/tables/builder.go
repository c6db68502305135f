package tables

import (
	"math"

	"github.com/agbru/fastmath/internal/dd"
)

// directTerms is the number of leading sine and cosine entries computed from
// the Taylor series. Later entries come from angle-addition identities.
const directTerms = 7

// SinCos holds the sine, cosine and tangent tables at x = i/8.
type SinCos struct {
	Sine    Table
	Cosine  Table
	Tangent Table
}

// BuildSinCos computes n entries of the sine, cosine and tangent tables.
//
// Entries 0 to 6 are evaluated directly. From index 7 on, an even index uses
// the double-angle identities on entry i/2 and an odd index the sum identities
// on entries i/2 and i/2+1, so every entry only depends on earlier ones.
func BuildSinCos(n int) SinCos {
	t := SinCos{Sine: NewTable(n), Cosine: NewTable(n), Tangent: NewTable(n)}

	for i := 0; i < min(directTerms, n); i++ {
		x := float64(i) / 8.0
		_, s := dd.SlowSin(x)
		_, c := dd.SlowCos(x)
		t.Sine.Set(i, s)
		t.Cosine.Set(i, c)
	}

	for i := directTerms; i < n; i++ {
		xs := t.Sine.At(i / 2)
		ys := t.Cosine.At(i / 2)

		if i&1 == 0 {
			// sin(2x) = 2 sin x cos x
			t.Sine.Set(i, dd.SplitMult(xs, ys).Scale(2.0))
			// cos(2x) = cos²x - sin²x
			t.Cosine.Set(i, dd.SplitAdd(dd.SplitMult(ys, ys), dd.SplitMult(xs, xs).Neg()))
			continue
		}

		as := t.Sine.At(i/2 + 1)
		bs := t.Cosine.At(i/2 + 1)
		// sin(x+y) = cos x sin y + sin x cos y
		t.Sine.Set(i, dd.SplitAdd(dd.SplitMult(ys, as), dd.SplitMult(xs, bs)))
		// cos(x+y) = cos x cos y - sin x sin y
		t.Cosine.Set(i, dd.SplitAdd(dd.SplitMult(ys, bs), dd.SplitMult(xs, as).Neg()))
	}

	for i := 0; i < n; i++ {
		recip := dd.SplitReciprocal(t.Cosine.At(i))
		t.Tangent.Set(i, dd.SplitMult(t.Sine.At(i), recip))
	}

	return t
}

// BuildExpInt computes e^i for integer i in (-ExpIntMaxIndex, ExpIntMaxIndex),
// stored at index ExpIntMaxIndex+i. Index 0 and the last index are left zero.
// Powers beyond the float64 range come out infinite, and their reciprocals
// carry no usable value.
func BuildExpInt() Table {
	t := NewTable(ExpIntTableLen)

	for i := 0; i < ExpIntMaxIndex; i++ {
		_, p := dd.Expint(i)
		t.Set(ExpIntMaxIndex+i, p)
		if i != 0 {
			t.Set(ExpIntMaxIndex-i, dd.SplitReciprocal(p))
		}
	}
	return t
}

// BuildExpFrac computes e^(i/1024) for i in [0, 1024].
func BuildExpFrac() Table {
	t := NewTable(ExpFracTableLen)
	factor := 1.0 / float64(ExpFracTableLen-1)

	for i := 0; i < ExpFracTableLen; i++ {
		_, p := dd.SlowExp(float64(i) * factor)
		t.Set(i, p)
	}
	return t
}

// BuildLnMant computes ln(1 + i/1024) for i in [0, 1024), the argument being
// assembled from i as the top ten mantissa bits of a value in [1, 2).
func BuildLnMant() []dd.Pair {
	rows := make([]dd.Pair, LnMantLen)
	for i := range rows {
		d := math.Float64frombits(uint64(i)<<42 | 0x3ff0000000000000)
		rows[i] = dd.SlowLog(d)
	}
	return rows
}
