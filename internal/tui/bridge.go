package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/format"
	"github.com/agbru/fastmath/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so the bridge goroutines hold this pointer instead.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program messages are sent to.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. Without a program it does nothing.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// sender is the part of programRef the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// ProgressReporter forwards aggregated progress to the dashboard.
type ProgressReporter struct {
	ref        sender
	generation uint64
}

var _ orchestration.ProgressReporter = (*ProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends a ProgressMsg per
// update, then a ProgressDoneMsg.
func (r *ProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numJobs int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numJobs)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		ap := agg.Update(update)
		r.ref.Send(ProgressMsg{
			JobIndex:        ap.JobIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
			Generation:      r.generation,
		})
	}
	r.ref.Send(ProgressDoneMsg{Generation: r.generation})
}

// ResultPresenter sends the outcome of a run to the dashboard instead of
// writing it.
type ResultPresenter struct {
	ref        sender
	generation uint64
}

var (
	_ orchestration.ResultPresenter   = (*ResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*ResultPresenter)(nil)
)

// PresentComparisonTable sends a copy of the sorted results.
func (p *ResultPresenter) PresentComparisonTable(results []orchestration.SelectionResult, _ io.Writer) {
	p.ref.Send(ComparisonResultsMsg{
		Results:    append([]orchestration.SelectionResult(nil), results...),
		Generation: p.generation,
	})
}

// PresentResult sends the agreed answers.
func (p *ResultPresenter) PresentResult(result orchestration.SelectionResult, opts orchestration.PresentationOptions, _ io.Writer) {
	p.ref.Send(FinalResultMsg{Result: result, Ks: opts.Ks, Generation: p.generation})
}

// FormatDuration delegates to the shared formatter.
func (p *ResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError sends the error to the dashboard and returns its exit code.
func (p *ResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	p.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: p.generation})
	return apperrors.HandleError(err, duration, io.Discard, plainColors{})
}

// plainColors satisfies apperrors.ColorProvider for discarded output.
type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }
