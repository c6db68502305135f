package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRingBuffer_Overflow(t *testing.T) {
	rb := NewRingBuffer(3)
	for _, v := range []float64{1, 2, 3, 4} {
		rb.Push(v)
	}
	if diff := cmp.Diff([]float64{2, 3, 4}, rb.Slice()); diff != "" {
		t.Errorf("Slice() mismatch (-want +got):\n%s", diff)
	}
	if rb.Last() != 4 {
		t.Errorf("Last() = %v, want 4", rb.Last())
	}
}

func TestRingBuffer_EmptyAndReset(t *testing.T) {
	rb := NewRingBuffer(0)
	if rb.Last() != 0 || rb.Slice() != nil {
		t.Error("an empty buffer must report no samples")
	}
	rb.Push(5)
	rb.Push(6)
	if rb.Len() != 1 || rb.Last() != 6 {
		t.Errorf("capacity 0 rounds up to 1: len %d last %v", rb.Len(), rb.Last())
	}
	rb.Reset()
	if rb.Len() != 0 {
		t.Errorf("Len() after Reset = %d", rb.Len())
	}
}

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"bounds", []float64{0, 100}, "▁█"},
		{"clamped", []float64{-10, 250}, "▁█"},
		{"middle", []float64{50}, "▄"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
