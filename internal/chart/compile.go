// Package chart compiles parsed chart data into timed notes ready for play.
package chart

import (
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
	"git.lost.host/meutraa/beatline/internal/timing"
	"golang.org/x/exp/slices"
)

// Options carry the configuration a chart may fall back on.
type Options struct {
	Lanes      int
	DefaultBPM float64
}

type Chart struct {
	Title  string
	Music  string
	Lanes  int
	Offset time.Duration // Track time of beat 0

	Tempo  *timing.TempoMap
	Scroll *timing.ScrollMap
	Notes  []*game.Note // Sorted by time, ties in chart order

	TapCount  int
	HoldCount int
}

// Compile converts beats to times and validates the chart. Nothing is
// returned unless the whole chart is valid.
func Compile(raw *game.RawChart, opts Options) (*Chart, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: no chart", game.ErrInvalidChart)
	}

	lanes := raw.Lanes
	if lanes <= 0 {
		lanes = opts.Lanes
	}
	if lanes <= 0 {
		return nil, fmt.Errorf("%w: lane count %d", game.ErrInvalidChart, lanes)
	}

	tempoEvents := raw.BPMEvents
	if len(tempoEvents) == 0 {
		bpm := raw.BPM
		if bpm == 0 {
			bpm = opts.DefaultBPM
		}
		tempoEvents = []game.TempoEvent{{Beat: 0, BPM: bpm}}
	}
	tempo, err := timing.NewTempoMap(tempoEvents)
	if nil != err {
		return nil, err
	}

	scrollEvents := raw.ScrollEvents
	if len(scrollEvents) == 0 {
		scrollEvents = []game.ScrollEvent{{Beat: 0, Speed: 1.0}}
	}
	scroll, err := timing.NewScrollMap(scrollEvents, tempo)
	if nil != err {
		return nil, err
	}

	c := &Chart{
		Title:  raw.Title,
		Music:  raw.Music,
		Lanes:  lanes,
		Offset: timing.FromSeconds(raw.Offset),
		Tempo:  tempo,
		Scroll: scroll,
		Notes:  make([]*game.Note, 0, len(raw.Notes)),
	}

	for i, rn := range raw.Notes {
		note, err := compileNote(tempo, lanes, i, rn)
		if nil != err {
			return nil, err
		}
		if note.IsHold() {
			c.HoldCount++
		} else {
			c.TapCount++
		}
		c.Notes = append(c.Notes, note)
	}

	slices.SortStableFunc(c.Notes, func(a, b *game.Note) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})

	return c, nil
}

func compileNote(tempo *timing.TempoMap, lanes, order int, rn game.RawNote) (*game.Note, error) {
	if rn.Lane < 0 || rn.Lane >= lanes {
		return nil, fmt.Errorf("%w: note %d lane %d outside [0, %d)", game.ErrInvalidChart, order, rn.Lane, lanes)
	}
	if rn.Beat < 0 || math.IsNaN(rn.Beat) || math.IsInf(rn.Beat, 0) {
		return nil, fmt.Errorf("%w: note %d at beat %v", game.ErrInvalidChart, order, rn.Beat)
	}

	note := &game.Note{
		Lane:  rn.Lane,
		Order: order,
		Denom: denominator(rn.Beat),
		Time:  tempo.TimeAtBeat(rn.Beat),
	}

	switch rn.Type {
	case "", "tap":
		if rn.Length == nil {
			return note, nil
		}
	case "hold":
		if rn.Length == nil {
			return nil, fmt.Errorf("%w: note %d is a hold without a length", game.ErrInvalidChart, order)
		}
	default:
		return nil, fmt.Errorf("%w: note %d has unknown type %q", game.ErrInvalidChart, order, rn.Type)
	}

	note.Kind = game.Hold
	note.End = tempo.TimeAtBeat(rn.Beat + *rn.Length)
	if note.End <= note.Time {
		return nil, fmt.Errorf("%w: note %d hold ends at %v, not after %v", game.ErrInvalidChart, order, note.End, note.Time)
	}
	return note, nil
}

var denominators = [...]int{1, 2, 3, 4, 6, 8, 12, 16, 24, 32, 48, 64}

// denominator returns the beat division a note falls on, 1 = on the beat,
// 2 = an 1/8th, 4 = a 1/16th, or -1 for anything finer.
func denominator(beat float64) int {
	for _, d := range denominators {
		x := beat * float64(d)
		if math.Abs(x-math.Round(x)) < 1e-6 {
			return d
		}
	}
	return -1
}

// CloneNotes returns an unplayed copy of the notes for a new session.
func (c *Chart) CloneNotes() []*game.Note {
	notes := make([]*game.Note, len(c.Notes))
	for i, n := range c.Notes {
		nn := *n
		nn.State = game.Pending
		nn.Grade = game.NoGrade
		nn.StartGrade = game.NoGrade
		nn.HitTime = 0
		nn.ReleaseTime = 0
		notes[i] = &nn
	}
	return notes
}

// Length is the chart time at which the last note ends.
func (c *Chart) Length() time.Duration {
	var end time.Duration
	for _, n := range c.Notes {
		if n.Time > end {
			end = n.Time
		}
		if n.End > end {
			end = n.End
		}
	}
	return end
}
