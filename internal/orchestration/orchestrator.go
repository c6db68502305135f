package orchestration

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/selection"
)

// ProgressBufferMultiplier sizes the progress channel per job so that slow
// display does not stall the jobs.
const ProgressBufferMultiplier = 5

var tracer = otel.Tracer("github.com/agbru/fastmath/internal/orchestration")

// Job is one selection run: a pivot strategy and the name it is reported under.
type Job struct {
	Name     string
	Strategy selection.PivotStrategy
}

// RunOptions configures ExecuteSelections.
type RunOptions struct {
	// CacheLevels is the depth of the pivot heap each job keeps across its
	// ranks. Zero runs without a cache.
	CacheLevels int
	// Observer, when set, is notified of every finished job.
	Observer Observer
}

// ValidateRanks checks that every rank addresses an element of a data set of
// length n.
func ValidateRanks(ks []int, n int) error {
	if n == 0 {
		return apperrors.ValidationError{Field: "data", Message: "the data set is empty"}
	}
	for _, k := range ks {
		if k < 0 || k >= n {
			return apperrors.ValidationError{
				Field:   "k",
				Message: fmt.Sprintf("rank %d outside [0, %d)", k, n),
			}
		}
	}
	return nil
}

// ExecuteSelections runs one job per strategy concurrently. Every job works on
// its own copy of data with its own pivot cache and answers ks in order, so
// jobs never share state. data itself is not modified.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines, checked between ranks.
//   - jobs: The strategies to run.
//   - data: The values to select from.
//   - ks: The zero-based ranks to answer.
//   - opts: Cache depth and observer.
//   - progressReporter: The progress display (NullProgressReporter for quiet mode).
//   - out: The writer for progress output.
//
// Returns:
//   - []SelectionResult: One result per job, in job order.
func ExecuteSelections(ctx context.Context, jobs []Job, data []float64, ks []int, opts RunOptions, progressReporter ProgressReporter, out io.Writer) []SelectionResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SelectionResult, len(jobs))
	progressChan := make(chan ProgressUpdate, len(jobs)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(jobs), out)

	for i, job := range jobs {
		idx, job := i, job
		g.Go(func() error {
			start := time.Now()
			values, cached, err := runJob(ctx, job, data, ks, opts.CacheLevels, idx, progressChan)
			results[idx] = SelectionResult{
				Name:         job.Name,
				Values:       values,
				CachedPivots: cached,
				Duration:     time.Since(start),
				Err:          err,
			}
			if opts.Observer != nil {
				opts.Observer.OnSelection(job.Name, len(ks), results[idx].Duration, err)
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runJob(ctx context.Context, job Job, data []float64, ks []int, cacheLevels, idx int, progressChan chan<- ProgressUpdate) ([]float64, int, error) {
	ctx, span := tracer.Start(ctx, "selection.job", trace.WithAttributes(
		attribute.String("strategy", job.Name),
		attribute.Int("data.len", len(data)),
		attribute.Int("ranks", len(ks)),
	))
	defer span.End()

	fail := func(err error) ([]float64, int, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, apperrors.SelectionError{Strategy: job.Name, Cause: err}
	}

	if err := ValidateRanks(ks, len(data)); err != nil {
		return fail(err)
	}

	work := make([]float64, len(data))
	copy(work, data)
	pivots := selection.NewPivotCache(cacheLevels)
	sel := selection.New(job.Strategy)

	values := make([]float64, len(ks))
	for i, k := range ks {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		values[i] = sel.Select(work, pivots, k)

		select {
		case progressChan <- ProgressUpdate{JobIndex: idx, Value: float64(i+1) / float64(len(ks))}:
		default:
		}
	}
	cached := selection.CachedPivots(pivots)
	span.SetAttributes(attribute.Int("pivots.cached", cached))
	return values, cached, nil
}

// AnalyzeComparisonResults sorts the results by duration, presents the
// comparison table and checks that every successful job gave the same answers.
//
// Returns:
//   - int: ExitSuccess, ExitErrorMismatch when strategies disagree, or the
//     code of the first error when no job succeeded.
func AnalyzeComparisonResults(results []SelectionResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *SelectionResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValid == nil {
				firstValid = &results[i]
			}
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the selection.\n")
		return presenter.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !SameValues(res.Values, firstValid.Values) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Pivot strategies disagree on at least one rank.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All strategies agree.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// SameValues reports whether a and b hold equal values position by position.
// NaN equals NaN; -0 equals +0.
func SameValues(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}
