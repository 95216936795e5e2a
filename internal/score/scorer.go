// Package score accumulates score, combo and timing statistics.
package score

import (
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
)

type Scorer interface {
	// Apply counts a final judgement.
	Apply(g game.Grade)

	// Amend replaces a provisional judgement that was already applied.
	Amend(provisional, final game.Grade)

	// RecordError adds a signed hit error to the timing statistics.
	RecordError(d time.Duration)

	Stats() Stats
}

// ScoreTable gives the points of a grade.
type ScoreTable interface {
	ScoreFor(g game.Grade) int
}

type Stats struct {
	Score     int
	Combo     int
	MaxCombo  int
	LastGrade game.Grade
	Counts    [len(game.Grades)]int // Indexed by Grade.Index()

	Hits  int
	Mean  time.Duration // Mean signed hit error, positive is late
	Stdev time.Duration
}

func (s Stats) Count(g game.Grade) int {
	i := g.Index()
	if i < 0 {
		return 0
	}
	return s.Counts[i]
}

// Judged is the number of notes with a final grade.
func (s Stats) Judged() int {
	total := 0
	for _, c := range s.Counts {
		total += c
	}
	return total
}
