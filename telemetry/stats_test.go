package telemetry

import (
	"math"
	"testing"
)

func TestComputeMassStats(t *testing.T) {
	tests := []struct {
		name                           string
		values                         []float64
		mean, std, p10, p50, p90, peak float64
	}{
		{"empty", nil, 0, 0, 0, 0, 0, 0},
		{"single", []float64{0.5}, 0.5, 0, 0.5, 0.5, 0.5, 0.5},
		{
			"ten values",
			[]float64{10, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			5.5, math.Sqrt(82.5 / 9), 1, 5, 9, 10,
		},
		{
			"classic spread",
			[]float64{2, 4, 4, 4, 5, 5, 7, 9},
			5, math.Sqrt(32.0 / 7), 2, 4, 9, 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p10, p50, p90, peak := ComputeMassStats(tt.values)
			got := []float64{mean, std, p10, p50, p90, peak}
			want := []float64{tt.mean, tt.std, tt.p10, tt.p50, tt.p90, tt.peak}
			names := []string{"mean", "std", "p10", "p50", "p90", "max"}
			for i := range got {
				if math.Abs(got[i]-want[i]) > 0.001 {
					t.Errorf("%s = %v, want %v", names[i], got[i], want[i])
				}
			}
		})
	}
}

func TestComputeMassStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeMassStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}
