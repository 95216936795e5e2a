package game

import (
	"time"
)

// Input is one timestamped lane transition, in track time.
type Input struct {
	Lane    int           `json:"lane"`
	Time    time.Duration `json:"time"`
	Release bool          `json:"release,omitempty"`
}

// LaneState is a snapshot of which lanes are physically held down.
type LaneState interface {
	Pressed(lane int) bool
}
