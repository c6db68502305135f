package orchestration

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/selection"
)

// MockResultPresenter records what it was asked to present.
type MockResultPresenter struct {
	mu      sync.Mutex
	tables  int
	results []SelectionResult
}

func (m *MockResultPresenter) PresentComparisonTable(results []SelectionResult, out io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables++
}

func (m *MockResultPresenter) PresentResult(result SelectionResult, opts PresentationOptions, out io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func (m *MockResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.ExitErrorGeneric
}

// slowStrategy delays every pivot choice.
type slowStrategy struct {
	delay time.Duration
}

func (s slowStrategy) PivotIndex(work []float64, begin, end int) int {
	time.Sleep(s.delay)
	return selection.Central{}.PivotIndex(work, begin, end)
}

// recordingObserver counts finished jobs.
type recordingObserver struct {
	mu   sync.Mutex
	seen map[string]error
}

func (o *recordingObserver) OnSelection(strategy string, ranks int, d time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seen == nil {
		o.seen = make(map[string]error)
	}
	o.seen[strategy] = err
}

func testData(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Round(rng.NormFloat64()*1000) / 10
	}
	return data
}

func defaultJobs(t *testing.T) []Job {
	t.Helper()
	jobs := GetJobsToRun([]string{selection.NameMedianOf3, selection.NameCentral, selection.NameRandom}, selection.NewDefaultFactory(7))
	if len(jobs) != 3 {
		t.Fatalf("GetJobsToRun returned %d jobs, want 3", len(jobs))
	}
	return jobs
}

// TestExecuteSelections verifies every strategy answers every rank correctly
// and leaves the input untouched.
func TestExecuteSelections(t *testing.T) {
	t.Parallel()

	data := testData(2000, 3)
	orig := slices.Clone(data)
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	ks := []int{0, 1999, 1000, 10, 500, 1500, 1000}
	want := make([]float64, len(ks))
	for i, k := range ks {
		want[i] = sorted[k]
	}

	obs := &recordingObserver{}
	results := ExecuteSelections(context.Background(), defaultJobs(t), data, ks,
		RunOptions{CacheLevels: 10, Observer: obs}, NullProgressReporter{}, io.Discard)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s: unexpected error %v", res.Name, res.Err)
			continue
		}
		if diff := cmp.Diff(want, res.Values); diff != "" {
			t.Errorf("%s: values mismatch (-want +got):\n%s", res.Name, diff)
		}
		if res.CachedPivots == 0 {
			t.Errorf("%s: no pivot was cached", res.Name)
		}
	}
	if diff := cmp.Diff(orig, data); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
	if len(obs.seen) != 3 {
		t.Errorf("observer saw %d jobs, want 3", len(obs.seen))
	}
}

// TestExecuteSelections_WithoutCache verifies a zero-depth cache still
// answers correctly.
func TestExecuteSelections_WithoutCache(t *testing.T) {
	t.Parallel()

	data := testData(300, 9)
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	results := ExecuteSelections(context.Background(), defaultJobs(t), data, []int{150, 0},
		RunOptions{}, NullProgressReporter{}, io.Discard)
	for _, res := range results {
		if res.Err != nil || res.Values[0] != sorted[150] || res.Values[1] != sorted[0] {
			t.Errorf("%s: values %v, err %v", res.Name, res.Values, res.Err)
		}
		if res.CachedPivots != 0 {
			t.Errorf("%s: CachedPivots = %d without a cache", res.Name, res.CachedPivots)
		}
	}
}

// TestExecuteSelections_InvalidRank verifies out of range ranks fail every
// job with a SelectionError wrapping a ValidationError.
func TestExecuteSelections_InvalidRank(t *testing.T) {
	t.Parallel()

	results := ExecuteSelections(context.Background(), defaultJobs(t), testData(10, 1), []int{3, 10},
		RunOptions{CacheLevels: 4}, NullProgressReporter{}, io.Discard)
	for _, res := range results {
		var selErr apperrors.SelectionError
		if !errors.As(res.Err, &selErr) || selErr.Strategy != res.Name {
			t.Errorf("%s: error = %v, want SelectionError", res.Name, res.Err)
		}
		var valErr apperrors.ValidationError
		if !errors.As(res.Err, &valErr) {
			t.Errorf("%s: error = %v, want a wrapped ValidationError", res.Name, res.Err)
		}
	}
}

// TestExecuteSelections_ProgressReachesOne verifies every job reports its
// final update.
func TestExecuteSelections_ProgressReachesOne(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	final := map[int]float64{}
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, numJobs int, out io.Writer) {
		defer wg.Done()
		for u := range ch {
			mu.Lock()
			final[u.JobIndex] = max(final[u.JobIndex], u.Value)
			mu.Unlock()
		}
	})

	jobs := defaultJobs(t)[:2]
	ExecuteSelections(context.Background(), jobs, testData(100, 2), []int{1, 2}, RunOptions{CacheLevels: 3}, reporter, io.Discard)

	for i := range jobs {
		if final[i] != 1 {
			t.Errorf("job %d last progress = %v, want 1", i, final[i])
		}
	}
}

// TestOrchestrationNoDeadlock_ContextCancellation verifies canceling the
// context stops slow jobs and reports the cancellation.
func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	jobs := []Job{
		{Name: "slow1", Strategy: slowStrategy{delay: time.Millisecond}},
		{Name: "slow2", Strategy: slowStrategy{delay: time.Millisecond}},
	}
	ks := make([]int, 5000)
	for i := range ks {
		ks[i] = i % 1000
	}

	done := make(chan []SelectionResult)
	go func() {
		done <- ExecuteSelections(ctx, jobs, testData(1000, 5), ks, RunOptions{}, NullProgressReporter{}, io.Discard)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case results := <-done:
		for _, res := range results {
			if !errors.Is(res.Err, context.Canceled) {
				t.Errorf("%s: error = %v, want context.Canceled", res.Name, res.Err)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
}

// TestOrchestrationNoDeadlock_ProgressFlood verifies a reporter that never
// reads until the end does not block the jobs.
func TestOrchestrationNoDeadlock_ProgressFlood(t *testing.T) {
	release := make(chan struct{})
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, _ int, _ io.Writer) {
		defer wg.Done()
		<-release
		DrainChannel(ch)
	})

	ks := make([]int, 10000)
	for i := range ks {
		ks[i] = i % 50
	}

	jobs := defaultJobs(t)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ExecuteSelections(context.Background(), jobs, testData(50, 4), ks, RunOptions{CacheLevels: 6}, reporter, io.Discard)
	}()
	close(release)

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("DEADLOCK: ExecuteSelections did not complete within timeout")
	}
}

// TestAnalyzeComparisonResults verifies consistency checking, failure
// handling and mismatch detection.
func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	nan := math.NaN()
	tests := []struct {
		name           string
		results        []SelectionResult
		expectedStatus int
	}{
		{
			name: "All success",
			results: []SelectionResult{
				{Name: "A", Values: []float64{1, 5}, Duration: time.Millisecond},
				{Name: "B", Values: []float64{1, 5}, Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "NaN and signed zero agree",
			results: []SelectionResult{
				{Name: "A", Values: []float64{math.Copysign(0, -1), nan}},
				{Name: "B", Values: []float64{0, nan}},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Mismatch",
			results: []SelectionResult{
				{Name: "A", Values: []float64{1, 5}},
				{Name: "B", Values: []float64{1, 6}},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "All failure",
			results: []SelectionResult{
				{Name: "A", Err: errors.New("fail")},
				{Name: "B", Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
		{
			name: "Mixed success/failure",
			results: []SelectionResult{
				{Name: "A", Values: []float64{5}},
				{Name: "B", Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			presenter := &MockResultPresenter{}
			status := AnalyzeComparisonResults(tt.results, PresentationOptions{}, presenter, io.Discard)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
			if presenter.tables != 1 {
				t.Errorf("comparison table presented %d times, want 1", presenter.tables)
			}
			if (status == apperrors.ExitSuccess) != (len(presenter.results) == 1) {
				t.Errorf("PresentResult called %d times for status %d", len(presenter.results), status)
			}
		})
	}
}

func TestAnalyzeComparisonResults_SortsSuccessFirst(t *testing.T) {
	t.Parallel()

	results := []SelectionResult{
		{Name: "failed", Err: errors.New("x"), Duration: time.Nanosecond},
		{Name: "slow", Values: []float64{1}, Duration: time.Second},
		{Name: "fast", Values: []float64{1}, Duration: time.Millisecond},
	}
	AnalyzeComparisonResults(results, PresentationOptions{}, &MockResultPresenter{}, io.Discard)

	var got []string
	for _, r := range results {
		got = append(got, r.Name)
	}
	if diff := cmp.Diff([]string{"fast", "slow", "failed"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRanks(t *testing.T) {
	t.Parallel()

	if err := ValidateRanks([]int{0, 4}, 5); err != nil {
		t.Errorf("ValidateRanks: %v", err)
	}
	for _, tc := range []struct {
		ks []int
		n  int
	}{
		{[]int{5}, 5},
		{[]int{-1}, 5},
		{[]int{0}, 0},
	} {
		if err := ValidateRanks(tc.ks, tc.n); err == nil {
			t.Errorf("ValidateRanks(%v, %d) should fail", tc.ks, tc.n)
		}
	}
}

func TestGetJobsToRun(t *testing.T) {
	t.Parallel()

	jobs := GetJobsToRun([]string{"central", "bogus", "median3"}, selection.NewDefaultFactory(1))
	var names []string
	for _, j := range jobs {
		names = append(names, j.Name)
	}
	if diff := cmp.Diff([]string{"central", "median3"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
