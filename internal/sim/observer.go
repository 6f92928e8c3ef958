package sim

import (
	"log/slog"

	"github.com/san-kum/newsorbit/internal/dynamo"
)

// LogObserver writes every world event as a structured log record.
type LogObserver struct {
	log *slog.Logger
}

func NewLogObserver(l *slog.Logger) *LogObserver {
	return &LogObserver{log: l}
}

func (o *LogObserver) OnEvent(e dynamo.Event) {
	attrs := []any{"tick", e.Tick}
	switch e.Kind {
	case dynamo.EventBodyRemoved:
		attrs = append(attrs, "id", e.ID, "reason", e.Reason.String())
		if e.OtherID != "" {
			attrs = append(attrs, "absorber", e.OtherID)
		}
	case dynamo.EventCollisionResolved:
		attrs = append(attrs, "loser", e.ID, "winner", e.OtherID)
	case dynamo.EventPausedChanged:
		attrs = append(attrs, "paused", e.Paused)
	default:
		attrs = append(attrs, "id", e.ID)
	}
	o.log.Info(e.Kind.String(), attrs...)
}

// Recorder keeps every event it sees, for tests and run summaries.
type Recorder struct {
	Events []dynamo.Event
}

func (r *Recorder) OnEvent(e dynamo.Event) { r.Events = append(r.Events, e) }

// Count returns how many recorded events are of kind k.
func (r *Recorder) Count(k dynamo.EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
