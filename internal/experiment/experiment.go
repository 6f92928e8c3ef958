package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/san-kum/newsorbit/internal/config"
	"github.com/san-kum/newsorbit/internal/dynamo"
	"github.com/san-kum/newsorbit/internal/ingest"
	"github.com/san-kum/newsorbit/internal/placement"
	"github.com/san-kum/newsorbit/internal/sim"
)

// Sample is one body's state at one recorded tick.
type Sample struct {
	Tick     int64
	BodyID   string
	Distance float64
	Speed    float64
	Position dynamo.Vector3
}

type Result struct {
	Ticks       int
	SampleEvery int
	Samples     []Sample
	Final       sim.Snapshot
	Metrics     map[string]float64
	Absorbed    int
}

// Distances returns the recorded distance series for one body, in tick order.
func (r *Result) Distances(id string) []float64 {
	var out []float64
	for _, s := range r.Samples {
		if s.BodyID == id {
			out = append(out, s.Distance)
		}
	}
	return out
}

// BodyIDs lists every body that appears in the samples.
func (r *Result) BodyIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range r.Samples {
		if !seen[s.BodyID] {
			seen[s.BodyID] = true
			ids = append(ids, s.BodyID)
		}
	}
	sort.Strings(ids)
	return ids
}

type Experiment struct {
	cfg         *config.Config
	log         *slog.Logger
	sampleEvery int
	registry    *Registry

	world    *sim.World
	metrics  []sim.Metric
	recorder *sim.Recorder
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.log = l }
}

// WithSampleEvery sets how many ticks pass between recorded samples.
func WithSampleEvery(n int) Option {
	return func(e *Experiment) {
		if n > 0 {
			e.sampleEvery = n
		}
	}
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:         cfg,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sampleEvery: dynamo.DefaultTrailInterval,
		registry:    NewRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Setup builds the world, adds the anchor, and places the articles around
// it. With no articles, cfg.Bodies synthetic ones are generated.
func (e *Experiment) Setup(articles []ingest.Article) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	mets, err := e.registry.Metrics(e.cfg.Metrics)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(e.cfg.Seed))
	w, err := sim.New(e.cfg.Params(),
		sim.WithLogger(e.log),
		sim.WithRand(rand.New(rand.NewSource(e.cfg.Seed+1))))
	if err != nil {
		return err
	}

	e.recorder = &sim.Recorder{}
	w.AddObserver(e.recorder)
	if e.log.Enabled(context.Background(), slog.LevelDebug) {
		w.AddObserver(sim.NewLogObserver(e.log))
	}
	for _, m := range mets {
		w.AddMetric(m)
	}

	if err := w.Add(e.cfg.NewAnchor()); err != nil {
		return err
	}

	if len(articles) == 0 {
		articles = ingest.Synthetic(e.cfg.Bodies, rng)
	}
	added, err := ingest.Populate(w, articles, placement.New(e.cfg.Params(), rng))
	if err != nil {
		e.log.Warn("some articles were skipped", "error", err)
	}
	e.log.Info("world ready", "bodies", added, "seed", e.cfg.Seed)

	e.world = w
	e.metrics = mets
	return nil
}

// Run ticks the world cfg.Ticks times, sampling every orbiting body.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.world == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	res := &Result{
		SampleEvery: e.sampleEvery,
		Metrics:     make(map[string]float64),
	}
	e.record(res, e.world.Snapshot())

	n, err := sim.Run(ctx, e.world, e.cfg.Ticks, func(s sim.Snapshot) bool {
		if s.Tick%int64(e.sampleEvery) == 0 {
			e.record(res, s)
		}
		return true
	})
	res.Ticks = n
	if err != nil {
		return res, err
	}

	res.Final = e.world.Snapshot()
	res.Absorbed = e.recorder.Count(dynamo.EventCollisionResolved)
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	e.log.Info("run complete", "ticks", n, "absorbed", res.Absorbed, "bodies", len(res.Final.Bodies))
	return res, nil
}

func (e *Experiment) record(res *Result, s sim.Snapshot) {
	for _, b := range s.Orbiting() {
		res.Samples = append(res.Samples, Sample{
			Tick:     s.Tick,
			BodyID:   b.ID,
			Distance: s.DistanceToAnchor(b),
			Speed:    b.Velocity.Magnitude(),
			Position: b.Position,
		})
	}
}

// World returns the underlying world for adding observers or driving it live.
func (e *Experiment) World() *sim.World {
	return e.world
}
