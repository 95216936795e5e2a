package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
)

// Tally is the default Scorer.
type Tally struct {
	table ScoreTable
	stats Stats

	// Welford running variance of hit errors, in nanoseconds
	mean, m2 float64
}

func NewTally(table ScoreTable) *Tally {
	return &Tally{table: table}
}

func (t *Tally) Apply(g game.Grade) {
	if g == game.NoGrade {
		return
	}
	t.stats.Score += t.table.ScoreFor(g)
	t.stats.Counts[g.Index()]++
	t.stats.LastGrade = g
	if g.BreaksCombo() {
		t.stats.Combo = 0
		return
	}
	t.bump()
}

func (t *Tally) Amend(provisional, final game.Grade) {
	if provisional == game.NoGrade {
		t.Apply(final)
		return
	}
	if final == game.NoGrade {
		return
	}
	t.stats.Score += t.table.ScoreFor(final) - t.table.ScoreFor(provisional)
	t.stats.Counts[provisional.Index()]--
	t.stats.Counts[final.Index()]++
	t.stats.LastGrade = final
	switch {
	case final.BreaksCombo():
		t.stats.Combo = 0
	case provisional.BreaksCombo():
		t.bump()
	}
}

func (t *Tally) bump() {
	t.stats.Combo++
	if t.stats.Combo > t.stats.MaxCombo {
		t.stats.MaxCombo = t.stats.Combo
	}
}

func (t *Tally) RecordError(d time.Duration) {
	t.stats.Hits++
	x := float64(d)
	delta := x - t.mean
	t.mean += delta / float64(t.stats.Hits)
	t.m2 += delta * (x - t.mean)

	t.stats.Mean = time.Duration(math.Round(t.mean))
	if t.stats.Hits > 1 {
		t.stats.Stdev = time.Duration(math.Round(math.Sqrt(t.m2 / float64(t.stats.Hits-1))))
	}
}

func (t *Tally) Stats() Stats {
	return t.stats
}
