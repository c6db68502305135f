package stats

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"gonum.org/v1/gonum/stat"

	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/selection"
)

func TestPercentile_EdgeCases(t *testing.T) {
	t.Parallel()

	pc := New(Legacy, nil)

	if got, err := pc.EvaluateSlice(nil, 50); err != nil || !math.IsNaN(got) {
		t.Errorf("empty: got %v, %v; want NaN, nil", got, err)
	}
	if got, _ := pc.EvaluateSlice([]float64{42}, 10); got != 42 {
		t.Errorf("single: got %v, want 42", got)
	}
	if got, _ := pc.EvaluateSlice([]float64{math.NaN()}, 10); !math.IsNaN(got) {
		t.Errorf("single NaN: got %v, want NaN", got)
	}
	if got, _ := pc.EvaluateSlice([]float64{math.NaN(), math.NaN()}, 10); !math.IsNaN(got) {
		t.Errorf("all NaN: got %v, want NaN", got)
	}
	if got, _ := pc.EvaluateSlice([]float64{math.NaN(), 3, 1, 2}, 50); got != 2 {
		t.Errorf("NaN removed: got %v, want 2", got)
	}
}

func TestPercentile_QuantileOutOfRange(t *testing.T) {
	t.Parallel()

	pc := New(R7, nil)
	for _, p := range []float64{0, -1, 100.5, math.NaN(), math.Inf(1)} {
		_, err := pc.EvaluateSlice(oneToTen(), p)
		var rangeErr apperrors.OutOfRangeError
		if !errors.As(err, &rangeErr) {
			t.Errorf("p=%v: expected OutOfRangeError, got %v", p, err)
			continue
		}
		if rangeErr.Lo != 0 || rangeErr.Hi != 100 {
			t.Errorf("p=%v: bounds = (%v, %v]", p, rangeErr.Lo, rangeErr.Hi)
		}
	}

	// The range is checked even when there is no data.
	if _, err := pc.EvaluateSlice(nil, 0); err == nil {
		t.Error("expected an error for p=0 on empty data")
	}
}

func TestPercentile_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	values := []float64{9, 3, 7, 1, 5, 8, 2, 6, 4, 0, 11, 15, 13, 12, 14, 10, 19, 17, 18, 16}
	orig := slices.Clone(values)
	if _, err := New(Legacy, nil).EvaluateSlice(values, 30); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(values, orig) {
		t.Error("EvaluateSlice reordered its input")
	}
}

func TestPercentile_StoredDataReusesCache(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	values := make([]float64, 5000)
	for i := range values {
		values[i] = rng.ExpFloat64()
	}
	values[17] = math.NaN()

	pc := New(R7, selection.Central{})
	pc.SetData(values)
	if pc.Len() != len(values)-1 {
		t.Fatalf("Len() = %d, want %d", pc.Len(), len(values)-1)
	}

	fresh := New(R7, selection.Central{})
	for p := 5.0; p <= 100; p += 5 {
		got, err := pc.Evaluate(p)
		if err != nil {
			t.Fatal(err)
		}
		want, _ := fresh.EvaluateSlice(values, p)
		if got != want {
			t.Errorf("p=%v: stored %v, one-off %v", p, got, want)
		}
	}
	if pc.CachedPivots() == 0 {
		t.Error("expected pivots to be cached across evaluations")
	}

	pc.SetData([]float64{1, 2, 3})
	if pc.CachedPivots() != 0 {
		t.Error("SetData must reset the pivot cache")
	}
	if got, _ := pc.Evaluate(100); got != 3 {
		t.Errorf("after SetData: got %v, want 3", got)
	}
}

func TestPercentile_EvaluateWithoutData(t *testing.T) {
	t.Parallel()

	got, err := New(Legacy, nil).Evaluate(50)
	if err != nil || !math.IsNaN(got) {
		t.Errorf("got %v, %v; want NaN, nil", got, err)
	}
}

// TestPercentile_R1MatchesGonum checks the empirical quantile against gonum on
// quarter percentiles, where np is an exact integer.
func TestPercentile_R1MatchesGonum(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 4))
	for _, n := range []int{4, 16, 100, 1000, 4096} {
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.NormFloat64()
		}
		sorted := slices.Clone(values)
		slices.Sort(sorted)

		pc := New(R1, nil)
		pc.SetData(values)
		for _, q := range []float64{0.25, 0.5, 0.75, 1} {
			want := stat.Quantile(q, stat.Empirical, sorted, nil)
			got, err := pc.Evaluate(q * 100)
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("n=%d q=%v: got %v, gonum %v", n, q, got, want)
			}
		}
	}
}

func TestMedian(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"with NaN", []float64{math.NaN(), 4, 1, 3, 2}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Median(tt.values); got != tt.want {
				t.Errorf("Median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
	if !math.IsNaN(Median(nil)) {
		t.Error("Median(nil) should be NaN")
	}
}
