package orchestration

import (
	"time"

	"github.com/agbru/fastmath/internal/format"
)

// ProgressUpdate is the progress of one job: the fraction of its ranks
// answered so far.
type ProgressUpdate struct {
	JobIndex int
	Value    float64
}

// ProgressAggregator folds the updates of several jobs into an average and an
// ETA. It wraps format.ProgressWithETA.
type ProgressAggregator struct {
	state   *format.ProgressWithETA
	numJobs int
}

// NewProgressAggregator returns an aggregator for numJobs jobs, or nil if
// numJobs <= 0.
func NewProgressAggregator(numJobs int) *ProgressAggregator {
	if numJobs <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:   format.NewProgressWithETA(numJobs),
		numJobs: numJobs,
	}
}

// AggregatedProgress is the result of processing one update.
type AggregatedProgress struct {
	// JobIndex is the index of the job that sent the update.
	JobIndex int
	// Value is the raw progress value of the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the average across all jobs.
	AverageProgress float64
	// ETA is the estimated time remaining.
	ETA time.Duration
}

// Update processes a single update.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.JobIndex, update.Value)
	return AggregatedProgress{
		JobIndex:        update.JobIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumJobs returns the number of jobs being tracked.
func (a *ProgressAggregator) NumJobs() int {
	return a.numJobs
}

// IsMultiJob reports whether more than one job is tracked.
func (a *ProgressAggregator) IsMultiJob() bool {
	return a.numJobs > 1
}

// DrainChannel reads all updates from the channel until it is closed.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
