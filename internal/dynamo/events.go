package dynamo

import "fmt"

type EventKind int

const (
	EventBodyAdded EventKind = iota
	EventBodyRemoved
	EventCollisionResolved
	EventFollowedChanged
	EventHoveredChanged
	EventPausedChanged
)

func (k EventKind) String() string {
	switch k {
	case EventBodyAdded:
		return "body_added"
	case EventBodyRemoved:
		return "body_removed"
	case EventCollisionResolved:
		return "collision_resolved"
	case EventFollowedChanged:
		return "followed_changed"
	case EventHoveredChanged:
		return "hovered_changed"
	case EventPausedChanged:
		return "paused_changed"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

type RemovalReason int

const (
	RemovedExplicit RemovalReason = iota
	RemovedAbsorbed
)

func (r RemovalReason) String() string {
	if r == RemovedAbsorbed {
		return "absorbed"
	}
	return "explicit"
}

// Event describes a change to a world.
//
//	BodyAdded          ID
//	BodyRemoved        ID, Reason (OtherID is the absorber when absorbed)
//	CollisionResolved  ID is the loser, OtherID the winner
//	Followed/Hovered   ID, empty for none
//	PausedChanged      Paused
type Event struct {
	Kind    EventKind
	Tick    int64
	ID      string
	OtherID string
	Reason  RemovalReason
	Paused  bool
}

func (e Event) String() string {
	switch e.Kind {
	case EventBodyRemoved:
		return fmt.Sprintf("%s id=%s reason=%s", e.Kind, e.ID, e.Reason)
	case EventCollisionResolved:
		return fmt.Sprintf("%s loser=%s winner=%s", e.Kind, e.ID, e.OtherID)
	case EventPausedChanged:
		return fmt.Sprintf("%s paused=%t", e.Kind, e.Paused)
	}
	return fmt.Sprintf("%s id=%q", e.Kind, e.ID)
}

type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }
