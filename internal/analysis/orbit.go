package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// OrbitStats summarises one body's distance to the anchor over a run.
type OrbitStats struct {
	Samples int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	// Eccentricity is estimated from the extremes as (max-min)/(max+min).
	Eccentricity float64
}

// Orbit computes OrbitStats for a distance series. An empty series yields the
// zero value.
func Orbit(distances []float64) OrbitStats {
	if len(distances) == 0 {
		return OrbitStats{}
	}

	s := OrbitStats{
		Samples: len(distances),
		Min:     floats.Min(distances),
		Max:     floats.Max(distances),
	}
	s.Mean, s.StdDev = stat.MeanStdDev(distances, nil)
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	if sum := s.Max + s.Min; sum > 0 {
		s.Eccentricity = (s.Max - s.Min) / sum
	}
	return s
}

// RadialSpeeds differentiates a distance series sampled every sampleEvery
// ticks. The result is one shorter than the input.
func RadialSpeeds(distances []float64, sampleEvery int) []float64 {
	if len(distances) < 2 {
		return nil
	}
	if sampleEvery <= 0 {
		sampleEvery = 1
	}
	out := make([]float64, len(distances)-1)
	for i := range out {
		out[i] = (distances[i+1] - distances[i]) / float64(sampleEvery)
	}
	return out
}
