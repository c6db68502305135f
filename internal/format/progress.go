package format

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// maxETA caps estimates produced from a very slow progress rate.
const maxETA = 24 * time.Hour

// ProgressState tracks the completion fraction of a fixed number of jobs.
type ProgressState struct {
	mu         sync.Mutex
	progresses []float64
	numJobs    int
}

// NewProgressState returns a state for numJobs jobs, all at zero.
func NewProgressState(numJobs int) *ProgressState {
	if numJobs < 0 {
		numJobs = 0
	}
	return &ProgressState{progresses: make([]float64, numJobs), numJobs: numJobs}
}

// Update records the progress of job index, clamped to [0, 1]. Out of range
// indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= ps.numJobs {
		return
	}
	ps.mu.Lock()
	ps.progresses[index] = clamp01(value)
	ps.mu.Unlock()
}

// CalculateAverage returns the mean progress over all jobs, 0 when there are
// none.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.numJobs == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numJobs)
}

// ProgressWithETA extends ProgressState with a completion time estimate based
// on the average progress rate since creation.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	progressRate float64 // average progress per second
}

// NewProgressWithETA returns a tracker for numJobs jobs starting now.
func NewProgressWithETA(numJobs int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numJobs),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records the progress of job index and returns the new average
// and the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.GetETA()
}

// GetETA returns the estimated time remaining, 0 while no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	seconds := remaining / p.progressRate
	if seconds > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(seconds * float64(time.Second))
}

// FormatETA renders an estimate as "45s", "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		if s := int(eta.Seconds()) % 60; s != 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	default:
		h := int(eta.Hours())
		if m := int(eta.Minutes()) % 60; m != 0 {
			return fmt.Sprintf("%dh%dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
}

// ProgressBar renders progress as a bar of length runes.
func ProgressBar(progress float64, length int) string {
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  50.0% ETA: 30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
