package sim

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"sync"

	"github.com/san-kum/newsorbit/internal/collision"
	"github.com/san-kum/newsorbit/internal/dynamo"
	"github.com/san-kum/newsorbit/internal/integrators"
)

// World owns a set of bodies around at most one anchor and advances them one
// logical tick at a time. All methods are safe for concurrent use; a Tick
// holds the world lock for its whole duration, metrics included, so registry
// changes never interleave with one.
//
// Observers are invoked after the lock is released and may call back into the
// world. Metrics are not; they only see the snapshot they are handed.
type World struct {
	mu sync.Mutex

	params   dynamo.Params
	stepper  Stepper
	resolver *collision.Resolver
	log      *slog.Logger

	bodies   map[string]*dynamo.Body
	order    []string
	dirty    bool
	anchorID string
	followed string
	hovered  string
	paused   bool
	tick     int64

	observers []dynamo.Observer
	metrics   []Metric
	pending   []dynamo.Event
}

type Option func(*World)

func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithRand sets the coin used to break equal-mass collisions.
func WithRand(r Rand) Option {
	return func(w *World) { w.resolver = collision.NewResolver(r) }
}

// WithStepper replaces the default orbital integrator.
func WithStepper(s Stepper) Option {
	return func(w *World) { w.stepper = s }
}

func New(params dynamo.Params, opts ...Option) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		params: params,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		bodies: make(map[string]*dynamo.Body),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.resolver == nil {
		w.resolver = collision.NewResolver(rand.New(rand.NewSource(1)))
	}
	if w.stepper == nil {
		w.stepper = integrators.NewOrbital(params, w.log)
	}
	return w, nil
}

func (w *World) AddObserver(o dynamo.Observer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, o)
}

func (w *World) AddMetric(m Metric) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.metrics = append(w.metrics, m)
}

func (w *World) Params() dynamo.Params { return w.params }

// Add registers a copy of b. It fails without changing anything if b is
// invalid, its id is taken, or it is a second anchor. Later changes to b do
// not reach the world.
func (w *World) Add(b *dynamo.Body) error {
	if b == nil {
		return fmt.Errorf("%w: nil body", dynamo.ErrInvalidBody)
	}
	if err := b.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if _, ok := w.bodies[b.ID]; ok {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", dynamo.ErrDuplicateID, b.ID)
	}
	if b.IsAnchor() && w.anchorID != "" {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s, cannot add %s", dynamo.ErrAnchorExists, w.anchorID, b.ID)
	}

	owned := *b
	if b.Trail != nil {
		owned.Trail = b.Trail.Clone()
	} else {
		owned.Trail = dynamo.NewTrail(w.params.TrailCapacity)
	}
	w.bodies[owned.ID] = &owned
	w.dirty = true
	if owned.IsAnchor() {
		w.anchorID = owned.ID
	}
	w.emit(dynamo.Event{Kind: dynamo.EventBodyAdded, ID: owned.ID})
	w.unlockAndDispatch()
	return nil
}

// Remove deletes the body with the given id and reports whether it existed.
func (w *World) Remove(id string) bool {
	w.mu.Lock()
	if _, ok := w.bodies[id]; !ok {
		w.mu.Unlock()
		return false
	}
	w.removeLocked(id, dynamo.Event{Kind: dynamo.EventBodyRemoved, ID: id, Reason: dynamo.RemovedExplicit})
	w.unlockAndDispatch()
	return true
}

// SetFollowed marks id as the followed body. An empty id clears it.
func (w *World) SetFollowed(id string) error {
	return w.setRef(&w.followed, id, dynamo.EventFollowedChanged)
}

// SetHovered marks id as the hovered body. An empty id clears it.
func (w *World) SetHovered(id string) error {
	return w.setRef(&w.hovered, id, dynamo.EventHoveredChanged)
}

func (w *World) setRef(ref *string, id string, kind dynamo.EventKind) error {
	w.mu.Lock()
	if id != "" {
		if _, ok := w.bodies[id]; !ok {
			w.mu.Unlock()
			return fmt.Errorf("%w: %s", dynamo.ErrNotFound, id)
		}
	}
	if *ref != id {
		*ref = id
		w.emit(dynamo.Event{Kind: kind, ID: id})
	}
	w.unlockAndDispatch()
	return nil
}

// TogglePause flips the paused flag, or sets it when force is non-nil, and
// returns the new state.
func (w *World) TogglePause(force *bool) bool {
	w.mu.Lock()
	next := !w.paused
	if force != nil {
		next = *force
	}
	if next != w.paused {
		w.paused = next
		w.emit(dynamo.Event{Kind: dynamo.EventPausedChanged, Paused: next})
	}
	w.unlockAndDispatch()
	return next
}

// Tick advances the world by one step: every orbiting body is integrated,
// then collisions are resolved across all bodies. A paused world does
// nothing.
func (w *World) Tick() {
	w.mu.Lock()
	if w.paused {
		w.mu.Unlock()
		return
	}
	w.tick++

	anchor := w.bodies[w.anchorID]
	ids := w.sortedIDs()
	for _, id := range ids {
		b := w.bodies[id]
		if b.IsAnchor() {
			continue
		}
		w.stepper.Step(b, anchor, id == w.hovered)
	}

	if w.params.Collisions {
		w.resolveLocked(ids)
	}

	if len(w.metrics) > 0 {
		snap := w.snapshotLocked()
		for _, m := range w.metrics {
			m.Observe(snap)
		}
	}
	w.unlockAndDispatch()
}

func (w *World) resolveLocked(ids []string) {
	list := make([]*dynamo.Body, 0, len(ids))
	for _, id := range ids {
		list = append(list, w.bodies[id])
	}

	for _, ab := range w.resolver.Resolve(list) {
		w.log.Debug("collision resolved",
			"loser", ab.Loser.ID, "winner", ab.Winner.ID,
			"loser_mass", ab.LoserMass, "winner_mass", ab.Winner.Mass)
		w.emit(dynamo.Event{Kind: dynamo.EventCollisionResolved, ID: ab.Loser.ID, OtherID: ab.Winner.ID})
		w.removeLocked(ab.Loser.ID, dynamo.Event{
			Kind:    dynamo.EventBodyRemoved,
			ID:      ab.Loser.ID,
			OtherID: ab.Winner.ID,
			Reason:  dynamo.RemovedAbsorbed,
		})
	}
}

func (w *World) removeLocked(id string, ev dynamo.Event) {
	delete(w.bodies, id)
	w.dirty = true
	if w.anchorID == id {
		w.anchorID = ""
	}
	w.emit(ev)
	if w.followed == id {
		w.followed = ""
		w.emit(dynamo.Event{Kind: dynamo.EventFollowedChanged})
	}
	if w.hovered == id {
		w.hovered = ""
		w.emit(dynamo.Event{Kind: dynamo.EventHoveredChanged})
	}
}

// Snapshot returns a deep copy of the renderable state.
func (w *World) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *World) snapshotLocked() Snapshot {
	ids := w.sortedIDs()
	s := Snapshot{
		Tick:       w.tick,
		Paused:     w.paused,
		AnchorID:   w.anchorID,
		FollowedID: w.followed,
		HoveredID:  w.hovered,
		Bodies:     make([]BodyState, 0, len(ids)),
	}
	for _, id := range ids {
		s.Bodies = append(s.Bodies, stateOf(w.bodies[id], w.followed, w.hovered))
	}
	return s
}

// Body returns a copy of one body's state.
func (w *World) Body(id string) (BodyState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok {
		return BodyState{}, false
	}
	return stateOf(b, w.followed, w.hovered), true
}

// Anchor returns a copy of the anchor body, or nil if there is none. It is
// meant for placing new bodies around the anchor.
func (w *World) Anchor() *dynamo.Body {
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.bodies[w.anchorID]
	if !ok {
		return nil
	}
	c := *a
	c.Trail = nil
	return &c
}

func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.bodies)
}

func (w *World) AnchorID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.anchorID
}

func (w *World) FollowedID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.followed
}

func (w *World) HoveredID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hovered
}

func (w *World) Paused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paused
}

// TickCount is the number of ticks that did work.
func (w *World) TickCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tick
}

// IDs returns all body ids in ascending order.
func (w *World) IDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.sortedIDs()...)
}

func (w *World) sortedIDs() []string {
	if !w.dirty && w.order != nil {
		return w.order
	}
	w.order = make([]string, 0, len(w.bodies))
	for id := range w.bodies {
		w.order = append(w.order, id)
	}
	sort.Strings(w.order)
	w.dirty = false
	return w.order
}

func (w *World) emit(e dynamo.Event) {
	e.Tick = w.tick
	w.pending = append(w.pending, e)
}

// unlockAndDispatch releases the lock and delivers queued events.
func (w *World) unlockAndDispatch() {
	events := w.pending
	w.pending = nil
	observers := w.observers
	w.mu.Unlock()

	for _, e := range events {
		for _, o := range observers {
			o.OnEvent(e)
		}
	}
}
