package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/newsorbit/internal/sim"
)

type ExportBody struct {
	ID       string       `json:"id"`
	Name     string       `json:"name,omitempty"`
	Role     string       `json:"role"`
	Tier     string       `json:"tier,omitempty"`
	Mass     float64      `json:"mass"`
	Radius   float64      `json:"radius"`
	Position [3]float64   `json:"position"`
	Velocity [3]float64   `json:"velocity"`
	Distance float64      `json:"distance"`
	Trail    [][3]float64 `json:"trail,omitempty"`
}

type ExportData struct {
	Tick       int64              `json:"tick"`
	Paused     bool               `json:"paused"`
	AnchorID   string             `json:"anchor_id,omitempty"`
	FollowedID string             `json:"followed_id,omitempty"`
	Bodies     []ExportBody       `json:"bodies"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// ExportJSON writes a snapshot, with trails when withTrails is set, as
// indented JSON.
func ExportJSON(w io.Writer, snap sim.Snapshot, metrics map[string]float64, withTrails bool) error {
	data := ExportData{
		Tick:       snap.Tick,
		Paused:     snap.Paused,
		AnchorID:   snap.AnchorID,
		FollowedID: snap.FollowedID,
		Bodies:     make([]ExportBody, 0, len(snap.Bodies)),
		Metrics:    metrics,
	}

	for _, b := range snap.Bodies {
		eb := ExportBody{
			ID:       b.ID,
			Name:     b.Name,
			Role:     b.Role.String(),
			Mass:     b.Mass,
			Radius:   b.Radius,
			Position: [3]float64{b.Position.X, b.Position.Y, b.Position.Z},
			Velocity: [3]float64{b.Velocity.X, b.Velocity.Y, b.Velocity.Z},
		}
		if !b.IsAnchor() {
			eb.Tier = b.Tier.String()
			eb.Distance = snap.DistanceToAnchor(b)
		}
		if withTrails {
			for _, p := range b.Trail {
				eb.Trail = append(eb.Trail, [3]float64{p.X, p.Y, p.Z})
			}
		}
		data.Bodies = append(data.Bodies, eb)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
