package stats

import (
	"math"
	"testing"
)

func oneToTen() []float64 {
	return []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
}

func TestEstimationTypes_KnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		est  EstimationType
		p    float64
		want float64
	}{
		{Legacy, 50, 5.5},
		{R1, 50, 5},
		{R2, 50, 5.5},
		{R3, 50, 5},
		{R4, 50, 5},
		{R5, 50, 5.5},
		{R6, 50, 5.5},
		{R7, 50, 5.5},
		{R8, 50, 5.5},
		{R9, 50, 5.5},

		{Legacy, 25, 2.75},
		{R1, 25, 3},
		{R2, 25, 3},
		{R3, 25, 2},
		{R4, 25, 2.5},
		{R5, 25, 3},
		{R6, 25, 2.75},
		{R7, 25, 3.25},
		{R8, 25, 2.9166666666666665},
		{R9, 25, 2.9375},

		{Legacy, 100, 10},
		{R1, 100, 10},
		{R3, 100, 10},
		{R7, 100, 10},
		{R9, 100, 10},

		{Legacy, 1, 1},
		{R1, 1, 1},
		{R7, 1, 1.09},
	}

	for _, tt := range tests {
		t.Run(tt.est.String(), func(t *testing.T) {
			t.Parallel()
			got, err := New(tt.est, nil).EvaluateSlice(oneToTen(), tt.p)
			if err != nil {
				t.Fatalf("EvaluateSlice: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("%s p=%v: got %v, want %v", tt.est, tt.p, got, tt.want)
			}
		})
	}
}

func TestParseEstimationType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    EstimationType
		wantErr bool
	}{
		{"legacy", Legacy, false},
		{"LEGACY", Legacy, false},
		{"r1", R1, false},
		{"R-7", R7, false},
		{"r_9", R9, false},
		{" r5 ", R5, false},
		{"r10", Legacy, true},
		{"", Legacy, true},
	}

	for _, tt := range tests {
		got, err := ParseEstimationType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEstimationType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEstimationType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEstimationType_String(t *testing.T) {
	t.Parallel()

	if R7.String() != "r7" || Legacy.String() != "legacy" {
		t.Errorf("unexpected names %q %q", R7, Legacy)
	}
	if got := EstimationType(42).String(); got != "EstimationType(42)" {
		t.Errorf("out of range String() = %q", got)
	}
	names := EstimationNames()
	names[0] = "changed"
	if Legacy.String() != "legacy" {
		t.Error("EstimationNames must return a copy")
	}
}

func TestIndex_Boundaries(t *testing.T) {
	t.Parallel()

	n := 10
	for _, est := range []EstimationType{Legacy, R1, R2, R3, R4, R5, R6, R7, R8, R9} {
		if got := est.index(0, n); got != 0 {
			t.Errorf("%s: index(0) = %v, want 0", est, got)
		}
		if got := est.index(1, n); got < float64(n) {
			t.Errorf("%s: index(1) = %v, want >= %d", est, got, n)
		}
	}
}
