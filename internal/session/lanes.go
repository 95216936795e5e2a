package session

import (
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
	"golang.org/x/exp/slices"
)

// lane indexes the judgeable notes of one column. pending stays sorted by
// time, ties in chart order, so the front is always the oldest note.
type lane struct {
	pending []*game.Note
	holding *game.Note
}

func byTime(n *game.Note, t time.Duration) int {
	switch {
	case n.Time < t:
		return -1
	case n.Time > t:
		return 1
	}
	return 0
}

// nearest returns the pending note closest to t and its index. Equal
// distances go to the note defined first in the chart.
func (l *lane) nearest(t time.Duration) (*game.Note, int) {
	if len(l.pending) == 0 {
		return nil, -1
	}
	after, _ := slices.BinarySearchFunc(l.pending, t, byTime)
	if after == 0 {
		return l.pending[0], 0
	}

	// The first note of the run sharing the time just before t
	before := after - 1
	for before > 0 && l.pending[before-1].Time == l.pending[before].Time {
		before--
	}
	if after == len(l.pending) {
		return l.pending[before], before
	}

	b, a := l.pending[before], l.pending[after]
	db, da := t-b.Time, a.Time-t
	switch {
	case db < da:
		return b, before
	case da < db:
		return a, after
	case a.Order < b.Order:
		return a, after
	}
	return b, before
}

func (l *lane) remove(i int) {
	l.pending = slices.Delete(l.pending, i, i+1)
}
