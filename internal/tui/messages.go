package tui

import (
	"time"

	"github.com/agbru/fastmath/internal/metrics"
	"github.com/agbru/fastmath/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update of a strategy.
type ProgressMsg struct {
	JobIndex        int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	Generation      uint64
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// ComparisonResultsMsg carries the per-strategy results, sorted as the
// comparison table shows them.
type ComparisonResultsMsg struct {
	Results    []orchestration.SelectionResult
	Generation uint64
}

// FinalResultMsg carries the agreed answers.
type FinalResultMsg struct {
	Result     orchestration.SelectionResult
	Ks         []int
	Generation uint64
}

// ErrorMsg reports that no strategy completed.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// RunCompleteMsg ends a run with its exit code.
type RunCompleteMsg struct {
	ExitCode   int
	Results    []orchestration.SelectionResult
	Generation uint64
}

// ContextCancelledMsg reports that the run context ended before the run did.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives the periodic host sampling.
type TickMsg time.Time

// HostStatsMsg carries one host and runtime sample.
type HostStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	Runtime    metrics.RuntimeStats
}
