package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/format"
	"github.com/agbru/fastmath/internal/metrics"
	"github.com/agbru/fastmath/internal/orchestration"
	"github.com/agbru/fastmath/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a spinner
// and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numJobs int, out io.Writer) {
	DisplayProgress(wg, progressChan, numJobs, out)
}

// CLIColorProvider implements apperrors.ColorProvider with the current theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter with colored
// terminal output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable displays one row per strategy with its duration,
// cached pivot count and status. Padding is done by hand because the cells
// carry ANSI codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.SelectionResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Strategy")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(displayDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sPivots%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Strategy")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := displayDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %6d   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			res.CachedPivots, status)
	}
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the agreed answers.
func (CLIResultPresenter) PresentResult(result orchestration.SelectionResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts.Ks, opts.Verbose, out)
}

// FormatDuration implements orchestration.DurationFormatter.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError implements orchestration.ErrorHandler.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows the runtime memory counters, typically a delta
// from metrics.RuntimeStats.Since covering one run.
func DisplayMemoryStats(stats metrics.RuntimeStats, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Allocated:       %s\n", humanize.IBytes(stats.TotalAlloc))
	fmt.Fprintf(out, "  Heap in use:     %s\n", humanize.IBytes(stats.HeapAlloc))
	fmt.Fprintf(out, "  Obtained:        %s\n", humanize.IBytes(stats.Sys))
	fmt.Fprintf(out, "  Heap objects:    %s\n", humanize.Comma(int64(stats.HeapObjects)))
	fmt.Fprintf(out, "  GC cycles:       %d\n", stats.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %s\n", format.FormatExecutionDuration(stats.GCPause))
}
