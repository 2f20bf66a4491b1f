package srpo

import "testing"

func TestDeepestIndex(t *testing.T) {
	tests := []struct {
		name    string
		offsets []float64
		want    int
	}{
		{"single element", []float64{120}, 0},
		// Duplicate area labels: the one further down the tree wins.
		{"parent above child", []float64{80, 342}, 1},
		{"child above parent in slice order", []float64{342, 80}, 0},
		{"tie keeps later render order", []float64{100, 100}, 1},
		{"three occurrences", []float64{40, 260, 180}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deepestIndex(tt.offsets); got != tt.want {
				t.Errorf("deepestIndex(%v) = %d, want %d", tt.offsets, got, tt.want)
			}
		})
	}
}
