package tables

import (
	"math"
	"testing"
)

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"one", 1.0, "+1.0d,"},
		{"zero", 0.0, "+0.0d,"},
		{"negative zero", math.Copysign(0, -1), "+-0.0d,"},
		{"negative", -2.5, "-2.5d,"},
		{"fraction", 0.125, "+0.125d,"},
		{"lower plain bound", 0.001, "+0.001d,"},
		{"below plain range", 1.5e-5, "+1.5E-5d,"},
		{"upper plain bound", 9999999.0, "+9999999.0d,"},
		{"at scientific threshold", 1e7, "+1.0E7d,"},
		{"factorial", 6.2270208e9, "+6.2270208E9d,"},
		{"tiny negative", -4.0738586e-9, "-4.0738586E-9d,"},
		{"huge", 1.7976931348623157e308, "+1.7976931348623157E308d,"},
		{"smallest subnormal", math.SmallestNonzeroFloat64, "+4.9E-324d,"},
		{"negative smallest subnormal", -math.SmallestNonzeroFloat64, "-4.9E-324d,"},
		{"two subnormal steps", 2 * math.SmallestNonzeroFloat64, "+9.9E-324d,"},
		{"single digit exponent form", 2e-5, "+2.0E-5d,"},
		{"NaN", math.NaN(), "NaN,"},
		{"positive infinity", math.Inf(1), "+Infinityd,"},
		{"negative infinity", math.Inf(-1), "-Infinityd,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatEntry(tt.in); got != tt.want {
				t.Errorf("FormatEntry(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
