package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/newsorbit/internal/metrics"
	"github.com/san-kum/newsorbit/internal/sim"
)

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["max_speed"] = func() sim.Metric { return metrics.NewMaxSpeed() }
	r.metrics["min_anchor_distance"] = func() sim.Metric { return metrics.NewMinAnchorDistance() }
	r.metrics["total_mass"] = func() sim.Metric { return metrics.NewTotalMass() }
	r.metrics["angular_momentum"] = func() sim.Metric { return metrics.NewAngularMomentum() }
	r.metrics["distance_spread"] = func() sim.Metric { return metrics.NewDistanceSpread() }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// Metrics builds a fresh metric for every name, failing on the first unknown.
func (r *Registry) Metrics(names []string) ([]sim.Metric, error) {
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
