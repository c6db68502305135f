package tables

import (
	"fmt"
	"io"

	apperrors "github.com/agbru/fastmath/internal/errors"
)

const (
	tableStart = "    {"
	tableEnd   = "    };"
)

// Printer writes tables as array literals. The first write error is kept and
// returned by every later call, so a sequence of prints can be checked once.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error { return p.err }

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// PrintArray writes a one-dimensional table:
//
//	NAME=
//	    {
//	        +1.0d,
//	    };
//
// The name line is written before the length check, so a mismatch leaves it
// behind in the output.
//
// Parameters:
//   - name: The identifier printed on the first line.
//   - expectedLen: The length values must have.
//   - values: The table entries.
//
// Returns:
//   - error: A DimensionMismatchError when len(values) != expectedLen, or the
//     first write error.
func (p *Printer) PrintArray(name string, expectedLen int, values []float64) error {
	p.printf("%s=\n", name)
	if err := checkLen(expectedLen, len(values)); err != nil {
		return err
	}
	p.printf("%s\n", tableStart)
	for _, d := range values {
		p.printf("        %s\n", FormatEntry(d))
	}
	p.printf("%s\n", tableEnd)
	return p.err
}

// PrintArray2D writes a two-dimensional table, one row per line, each entry
// padded or truncated to 25 columns and each row followed by its index.
func (p *Printer) PrintArray2D(name string, expectedLen int, rows [][]float64) error {
	p.printf("%s\n", name)
	if err := checkLen(expectedLen, len(rows)); err != nil {
		return err
	}
	p.printf("%s \n", tableStart)
	for i, row := range rows {
		p.printf("        {")
		for _, d := range row {
			p.printf("%-25.25s", FormatEntry(d))
		}
		p.printf("}, // %d\n", i)
	}
	p.printf("%s\n", tableEnd)
	return p.err
}

func checkLen(expected, actual int) error {
	if expected != actual {
		return apperrors.DimensionMismatchError{Actual: actual, Expected: expected}
	}
	return nil
}
