package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/agbru/fastmath/internal/format"
	"github.com/agbru/fastmath/internal/orchestration"
	"github.com/agbru/fastmath/internal/ui"
)

// FormatValue renders v with the fewest digits that read back exactly.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// DisplayResult prints the answer of every rank. Unless verbose, lists longer
// than ValueDisplayLimit are elided in the middle.
//
// Parameters:
//   - result: The result whose values are shown.
//   - ks: The ranks, in the order of result.Values.
//   - verbose: Show every value.
//   - out: The output writer.
func DisplayResult(result orchestration.SelectionResult, ks []int, verbose bool, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Results (%s, %s) ---%s\n", ui.ColorBold(), result.Name,
		format.FormatExecutionDuration(result.Duration), ui.ColorReset())

	n := len(result.Values)
	for i, v := range result.Values {
		if !verbose && n > ValueDisplayLimit && i == ValueDisplayLimit/2 {
			skip := n - ValueDisplayLimit
			fmt.Fprintf(out, "  %s... %d more (use -v to show all)%s\n", ui.ColorGrey(), skip, ui.ColorReset())
		}
		if !verbose && n > ValueDisplayLimit && i >= ValueDisplayLimit/2 && i < n-ValueDisplayLimit/2 {
			continue
		}
		k := i
		if i < len(ks) {
			k = ks[i]
		}
		fmt.Fprintf(out, "  k=%s%-8d%s %s%s%s\n", ui.ColorCyan(), k, ui.ColorReset(), ui.ColorGreen(), FormatValue(v), ui.ColorReset())
	}
}

// DisplayQuietResult prints one value per line, for scripts.
func DisplayQuietResult(out io.Writer, values []float64) {
	for _, v := range values {
		fmt.Fprintln(out, FormatValue(v))
	}
}

// DisplayPercentiles prints the estimate of every quantile.
//
// Parameters:
//   - out: The output writer.
//   - ps: The quantiles.
//   - values: The estimates, in the order of ps.
//   - estimation: The estimation type name.
//   - duration: The time the estimates took.
//   - quiet: Print bare values only.
func DisplayPercentiles(out io.Writer, ps, values []float64, estimation string, duration time.Duration, quiet bool) {
	if quiet {
		DisplayQuietResult(out, values)
		return
	}
	fmt.Fprintf(out, "\n%s--- Percentiles (%s, %s) ---%s\n", ui.ColorBold(), estimation,
		format.FormatExecutionDuration(duration), ui.ColorReset())
	for i, v := range values {
		fmt.Fprintf(out, "  p=%s%-8s%s %s%s%s\n", ui.ColorCyan(), FormatValue(ps[i]), ui.ColorReset(),
			ui.ColorGreen(), FormatValue(v), ui.ColorReset())
	}
}
