package orchestration

import (
	"io"
	"sync"
	"time"
)

// SelectionResult is the outcome of one selection job. It is the shared domain
// type between orchestration and presentation.
type SelectionResult struct {
	// Name is the pivot strategy the job ran with.
	Name string
	// Values holds the answer for each requested rank, in request order. It is
	// nil if an error occurred.
	Values []float64
	// CachedPivots is the number of pivot heap slots filled by the end of the
	// job.
	CachedPivots int
	// Duration is the time the job took.
	Duration time.Duration
	// Err contains any error that occurred during the job.
	Err error
}

// PresentationOptions configures how results are presented.
type PresentationOptions struct {
	// Ks are the ranks that were queried, matching SelectionResult.Values.
	Ks      []int
	Verbose bool
}

// ProgressReporter displays job progress. It decouples orchestration from the
// presentation layer.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from the jobs.
	//   - numJobs: The number of concurrent jobs being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numJobs int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numJobs int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numJobs int, out io.Writer) {
	f(wg, progressChan, numJobs, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter presents the results of a comparison run.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-strategy summary table.
	PresentComparisonTable(results []SelectionResult, out io.Writer)

	// PresentResult displays the agreed answers.
	PresentResult(result SelectionResult, opts PresentationOptions, out io.Writer)

	ErrorHandler
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles job errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// Observer is notified of finished jobs. The metrics recorder implements it.
type Observer interface {
	OnSelection(strategy string, ranks int, d time.Duration, err error)
}
