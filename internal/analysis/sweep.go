package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/newsorbit/internal/sim"
)

// SweepPoint holds the distinct anchor distances seen for one parameter value.
type SweepPoint struct {
	Param  float64
	Values []float64
}

// SweepBuilder returns a fresh world configured for one parameter value.
type SweepBuilder func(param float64) (*sim.World, error)

// Sweep builds one world per parameter value, lets it settle for transient
// ticks, then records the distinct distances of every orbiting body over the
// next record ticks. Distances are bucketed to a resolution of 0.01.
func Sweep(ctx context.Context, build SweepBuilder, params []float64, transient, record int) ([]SweepPoint, error) {
	results := make([]SweepPoint, 0, len(params))

	for _, param := range params {
		w, err := build(param)
		if err != nil {
			return nil, fmt.Errorf("build world for %v: %w", param, err)
		}
		if _, err := sim.Run(ctx, w, transient, nil); err != nil {
			return nil, err
		}

		seen := make(map[int64]bool)
		point := SweepPoint{Param: param}
		_, err = sim.Run(ctx, w, record, func(s sim.Snapshot) bool {
			for _, b := range s.Orbiting() {
				d := s.DistanceToAnchor(b)
				key := int64(math.Round(d * 100))
				if !seen[key] {
					seen[key] = true
					point.Values = append(point.Values, d)
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		results = append(results, point)
	}

	return results, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// SweepToASCII plots each parameter value as a column of recorded distances.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, p := range data {
		for _, v := range p.Values {
			minVal, maxVal = math.Min(minVal, v), math.Max(maxVal, v)
		}
	}
	if math.IsInf(minVal, 1) {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	grid := newGrid(width, height)
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				grid[row][col] = '•'
			}
		}
	}
	return gridString(grid)
}
