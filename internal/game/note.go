package game

import (
	"time"
)

type Kind uint8

const (
	Tap Kind = iota
	Hold
)

func (k Kind) String() string {
	if k == Hold {
		return "hold"
	}
	return "tap"
}

type State uint8

const (
	Pending State = iota
	Holding       // Only hold notes, between an accepted press and resolution
	Resolved
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Holding:
		return "holding"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

type Note struct {
	Lane  int           // The chart column
	Kind  Kind          // Tap or hold
	Order int           // Position in chart definition order, breaks timing ties
	Denom int           // The beat division, as a denominator, 4 = 1/4 beat
	Time  time.Duration // The time the note should be hit
	End   time.Duration // The time a hold should be released, zero for taps

	// This is state
	State       State
	Grade       Grade         // Final judgement, NoGrade until Resolved
	StartGrade  Grade         // Provisional judgement of a hold head
	HitTime     time.Duration // When the note was pressed
	ReleaseTime time.Duration // When the hold was let go
}

func (n *Note) IsHold() bool {
	return n.Kind == Hold
}

// Resolve sets the final grade. It is a no-op on an already resolved note.
func (n *Note) Resolve(g Grade) bool {
	if n.State == Resolved {
		return false
	}
	n.State = Resolved
	n.Grade = g
	return true
}
