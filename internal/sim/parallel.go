package sim

import (
	"context"
	"sync"
)

// Builder constructs an independent world for one ensemble member.
type Builder func(seed int64) (*World, error)

// Ensemble runs several worlds side by side, one goroutine each. Worlds
// share nothing, so members never observe each other.
type Ensemble struct {
	build     Builder
	numRuns   int
	seedStart int64
}

func NewEnsemble(build Builder, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

// Run advances every member by ticks and returns their final snapshots in
// seed order.
func (e *Ensemble) Run(ctx context.Context, ticks int) ([]Snapshot, error) {
	results := make([]Snapshot, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			w, err := e.build(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			if _, err := Run(ctx, w, ticks, nil); err != nil {
				errs[idx] = err
				return
			}
			results[idx] = w.Snapshot()
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
