package tables

import (
	"context"
	"io"

	"github.com/agbru/fastmath/internal/dd"
)

// Options selects what Generate builds.
type Options struct {
	// Kinds lists the table families to build. Empty means all.
	Kinds []Kind
	// SineLen is the number of sine, cosine and tangent entries. Zero means
	// SineTableLen.
	SineLen int
}

// Emitted describes one array written by Generate.
type Emitted struct {
	Kind    Kind
	Name    string
	Entries int
}

// Generate builds the requested tables and prints them to w in a fixed order:
// EXP_INT, EXP_FRAC, LN_MANT, then SINE, COSINE and TANGENT, each A before B.
// The context is checked between families; a family already started is
// finished first.
//
// Returns the arrays written, in order, even when an error stops the run.
func Generate(ctx context.Context, w io.Writer, opts Options) ([]Emitted, error) {
	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = AllKinds()
	}
	sineLen := opts.SineLen
	if sineLen == 0 {
		sineLen = SineTableLen
	}

	p := NewPrinter(w)
	var emitted []Emitted

	emit := func(kind Kind, name string, expected int, values []float64) error {
		if err := p.PrintArray(name, expected, values); err != nil {
			return err
		}
		emitted = append(emitted, Emitted{Kind: kind, Name: name, Entries: len(values)})
		return nil
	}

	for _, kind := range kinds {
		if err := ctx.Err(); err != nil {
			return emitted, err
		}

		var err error
		switch kind {
		case KindExpInt:
			t := BuildExpInt()
			err = emitPair(emit, kind, "EXP_INT_TABLE", ExpIntTableLen, t)
		case KindExpFrac:
			t := BuildExpFrac()
			err = emitPair(emit, kind, "EXP_FRAC_TABLE", ExpFracTableLen, t)
		case KindLnMant:
			rows := BuildLnMant()
			if err = p.PrintArray2D("LN_MANT", LnMantLen, pairRows(rows)); err == nil {
				emitted = append(emitted, Emitted{Kind: kind, Name: "LN_MANT", Entries: len(rows)})
			}
		case KindSinCos:
			t := BuildSinCos(sineLen)
			if err = emitPair(emit, kind, "SINE_TABLE", sineLen, t.Sine); err != nil {
				break
			}
			if err = emitPair(emit, kind, "COSINE_TABLE", sineLen, t.Cosine); err != nil {
				break
			}
			err = emitPair(emit, kind, "TANGENT_TABLE", sineLen, t.Tangent)
		}
		if err != nil {
			return emitted, err
		}
	}
	return emitted, nil
}

func emitPair(emit func(Kind, string, int, []float64) error, kind Kind, prefix string, expected int, t Table) error {
	if err := emit(kind, prefix+"_A", expected, t.A); err != nil {
		return err
	}
	return emit(kind, prefix+"_B", expected, t.B)
}

func pairRows(pairs []dd.Pair) [][]float64 {
	rows := make([][]float64, len(pairs))
	for i, p := range pairs {
		rows[i] = []float64{p.Hi, p.Lo}
	}
	return rows
}
