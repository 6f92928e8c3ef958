package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of the first half of the DFT of data,
// after removing its mean.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := stat.Mean(data, nil)
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantPeriod returns the period, in ticks, of the strongest non-constant
// frequency in series. sampleEvery is the tick spacing between samples. It
// reports false for series too short or too flat to have a peak.
func DominantPeriod(series []float64, sampleEvery int) (float64, bool) {
	if sampleEvery <= 0 {
		sampleEvery = 1
	}
	ps := PowerSpectrum(series)
	if len(ps) < 2 {
		return 0, false
	}

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] < 1e-12 {
		return 0, false
	}
	return float64(len(series)*sampleEvery) / float64(best), true
}
