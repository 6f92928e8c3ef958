package sim

import "github.com/san-kum/newsorbit/internal/dynamo"

// Stepper advances one orbiting body by one tick.
type Stepper interface {
	Step(b, anchor *dynamo.Body, hovered bool)
}

// Metric accumulates a value from the snapshot taken after every tick that
// did work. Observe runs under the world lock, so it must not call back into
// the world.
type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// Rand is the random source for collision tie-breaks.
type Rand interface {
	Float64() float64
}
