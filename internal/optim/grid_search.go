package optim

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/newsorbit/internal/config"
	"github.com/san-kum/newsorbit/internal/experiment"
)

var ErrNoCandidate = errors.New("optim: no candidate produced the metric")

// Runner runs one experiment for a candidate config.
type Runner func(ctx context.Context, cfg *config.Config) (*experiment.Result, error)

// GridSearch tries every combination of values for a set of config keys and
// keeps the one with the lowest (or, with Maximize, highest) metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	Maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Best is the winning candidate.
type Best struct {
	Params map[string]float64
	Value  float64
	Tried  int
}

// Search runs every candidate derived from base. A candidate that fails to
// run is skipped. The metric may be any name in Result.Metrics, or
// "absorbed" for the number of collisions.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, run Runner, metric string) (Best, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Best{}, fmt.Errorf("%d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Best{Value: math.Inf(1)}
	if g.Maximize {
		best.Value = math.Inf(-1)
	}
	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, run, metric, &best)
	if err != nil {
		return best, err
	}
	if best.Params == nil {
		return best, fmt.Errorf("%w %q", ErrNoCandidate, metric)
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	run Runner,
	metric string,
	best *Best,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := base.Clone()
		for k, v := range current {
			if err := cfg.Set(k, v); err != nil {
				return err
			}
		}
		best.Tried++

		result, err := run(ctx, cfg)
		if err != nil {
			return nil
		}

		val, ok := result.Metrics[metric]
		if metric == "absorbed" {
			val, ok = float64(result.Absorbed), true
		}
		if !ok {
			return nil
		}
		if (g.Maximize && val > best.Value) || (!g.Maximize && val < best.Value) {
			best.Value = val
			best.Params = maps.Clone(current)
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := maps.Clone(current)
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, run, metric, best); err != nil {
			return err
		}
	}
	return nil
}
