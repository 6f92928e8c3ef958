// Package analysis inspects recorded orbit tracks after a run.
//
//   - [PowerSpectrum] and [DominantPeriod]: spectral view of a distance series
//   - [Orbit]: summary statistics of one body's distance to the anchor
//   - [NewPhasePortrait]: distance against radial speed
//   - [Sweep]: final distances across a range of one world parameter
//
// A body that settles into a closed orbit shows a clear spectral peak:
//
//	period, ok := analysis.DominantPeriod(distances, 1)
//	if ok {
//	    fmt.Printf("orbit repeats every %.0f ticks\n", period)
//	}
package analysis
