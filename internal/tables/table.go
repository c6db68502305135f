package tables

import (
	"fmt"
	"strings"

	"github.com/agbru/fastmath/internal/dd"
)

// Table sizes of the complete set.
const (
	// SineTableLen is the default number of sine, cosine and tangent entries,
	// covering [0, 13/8] in steps of 1/8.
	SineTableLen = 14

	// ExpIntMaxIndex is the offset of e^0 in the exponential integer table.
	ExpIntMaxIndex = 750
	// ExpIntTableLen is the length of the exponential integer table.
	ExpIntTableLen = ExpIntMaxIndex * 2

	// ExpFracTableBits is the number of fraction bits resolved by the
	// exponential fraction table.
	ExpFracTableBits = 10
	// ExpFracTableLen holds e^(i/1024) for i in [0, 1024].
	ExpFracTableLen = 1<<ExpFracTableBits + 1

	// LnMantLen is the number of rows of the log-mantissa table, one per
	// value of the 10 leading mantissa bits.
	LnMantLen = 1024
)

// Table is a function table stored as two parallel arrays whose sum A[i]+B[i]
// is the extended precision value of entry i.
type Table struct {
	A []float64
	B []float64
}

// NewTable returns a zeroed table of n entries.
func NewTable(n int) Table {
	return Table{A: make([]float64, n), B: make([]float64, n)}
}

// Len returns the number of entries.
func (t Table) Len() int { return len(t.A) }

// Set stores p at index i.
func (t Table) Set(i int, p dd.Pair) {
	t.A[i] = p.Hi
	t.B[i] = p.Lo
}

// At returns entry i as a pair.
func (t Table) At(i int) dd.Pair {
	return dd.Pair{Hi: t.A[i], Lo: t.B[i]}
}

// Kind names one family of tables that can be generated.
type Kind string

// Table families, listed in generation order.
const (
	KindExpInt  Kind = "expint"
	KindExpFrac Kind = "expfrac"
	KindLnMant  Kind = "lnmant"
	KindSinCos  Kind = "sincos"
)

// AllKinds returns every table family in the order Generate prints them.
func AllKinds() []Kind {
	return []Kind{KindExpInt, KindExpFrac, KindLnMant, KindSinCos}
}

// ParseKinds parses a comma-separated list of table families. "all" or an
// empty string selects every family. The result follows generation order
// regardless of the order in s, and duplicates are ignored.
func ParseKinds(s string) ([]Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllKinds(), nil
	}

	requested := make(map[Kind]bool)
	for _, part := range strings.Split(s, ",") {
		k := Kind(strings.ToLower(strings.TrimSpace(part)))
		if !k.valid() {
			return nil, fmt.Errorf("unknown table %q (valid: %s)", part, kindNames())
		}
		requested[k] = true
	}

	kinds := make([]Kind, 0, len(requested))
	for _, k := range AllKinds() {
		if requested[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

func (k Kind) valid() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

func kindNames() string {
	names := make([]string, 0, len(AllKinds()))
	for _, k := range AllKinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
