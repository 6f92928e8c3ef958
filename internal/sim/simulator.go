package sim

import (
	"context"
	"fmt"
)

// Run is the external clock: it calls Tick ticks times, checking ctx between
// ticks. If callback is non-nil it receives a snapshot after every tick and
// can stop the run early by returning false. It returns the number of ticks
// issued.
func Run(ctx context.Context, w *World, ticks int, callback func(Snapshot) bool) (int, error) {
	if ticks < 0 {
		return 0, fmt.Errorf("ticks must not be negative, got %d", ticks)
	}

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return i, ctx.Err()
		default:
		}

		w.Tick()

		if callback != nil && !callback(w.Snapshot()) {
			return i + 1, nil
		}
	}
	return ticks, nil
}
