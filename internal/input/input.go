// Package input turns keyboard events into lane presses and releases
// stamped with track time.
package input

import (
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
)

// Source delivers lane input to the host loop.
type Source interface {
	// Poll returns the input received since the last call, in arrival
	// order. quit is set once the player asks to stop.
	Poll() (inputs []game.Input, quit bool, err error)
	Close() error
}

// Clock is the track clock input is stamped with.
type Clock interface {
	Now() time.Duration
}

// Pressed is the set of lanes currently held down.
type Pressed []bool

func NewPressed(lanes int) Pressed {
	return make(Pressed, lanes)
}

func (p Pressed) Pressed(lane int) bool {
	return lane >= 0 && lane < len(p) && p[lane]
}

// Apply records a press or release.
func (p Pressed) Apply(in game.Input) {
	if in.Lane < 0 || in.Lane >= len(p) {
		return
	}
	p[in.Lane] = !in.Release
}
