// Package judge maps timing errors to grades.
package judge

import (
	"time"

	"git.lost.host/meutraa/beatline/internal/config"
	"git.lost.host/meutraa/beatline/internal/game"
	"git.lost.host/meutraa/beatline/internal/timing"
)

type Judgement struct {
	Grade game.Grade
	Time  time.Duration // Largest absolute error still awarded this grade
	Score int
}

type Policy struct {
	judgements    [3]Judgement // Sick, Good, Bad, strictest first
	miss          int
	tailTolerance time.Duration
}

// New builds a policy from a validated config.
func New(cfg *config.Config) *Policy {
	return &Policy{
		judgements: [3]Judgement{
			{Grade: game.Sick, Time: cfg.Windows.Sick, Score: cfg.Scores.Sick},
			{Grade: game.Good, Time: cfg.Windows.Good, Score: cfg.Scores.Good},
			{Grade: game.Bad, Time: cfg.Windows.Bad, Score: cfg.Scores.Bad},
		},
		miss:          cfg.Scores.Miss,
		tailTolerance: cfg.TailTolerance,
	}
}

// GradeFor returns the strictest grade whose window contains the error.
// An error exactly on a threshold belongs to that threshold's grade.
func (p *Policy) GradeFor(d time.Duration) game.Grade {
	if d < 0 {
		d = -d
	}
	for _, j := range p.judgements {
		if d <= j.Time {
			return j.Grade
		}
	}
	return game.Miss
}

// ScoreFor is the score table value of a grade.
func (p *Policy) ScoreFor(g game.Grade) int {
	for _, j := range p.judgements {
		if j.Grade == g {
			return j.Score
		}
	}
	if g == game.Miss {
		return p.miss
	}
	return 0
}

// Window returns the threshold of a hit grade, zero for Miss and NoGrade.
func (p *Policy) Window(g game.Grade) time.Duration {
	for _, j := range p.judgements {
		if j.Grade == g {
			return j.Time
		}
	}
	return 0
}

func (p *Policy) BadWindow() time.Duration {
	return p.judgements[len(p.judgements)-1].Time
}

func (p *Policy) TailTolerance() time.Duration {
	return p.tailTolerance
}

// Better returns the stricter of two grades.
func Better(a, b game.Grade) game.Grade {
	if a == game.NoGrade {
		return b
	}
	if b == game.NoGrade || a < b {
		return a
	}
	return b
}

// Offset is the signed scroll distance still to travel before a note at
// noteTime reaches the hit bar at now. Positive is ahead of the bar.
func Offset(scroll *timing.ScrollMap, noteTime, now time.Duration) float64 {
	return scroll.DistanceBetween(now, noteTime)
}
