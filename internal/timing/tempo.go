// Package timing converts musical beats into track time and track time into
// scroll distance.
package timing

import (
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
)

// TempoMap integrates seconds-per-beat across a piecewise constant tempo.
type TempoMap struct {
	events []game.TempoEvent
}

// NewTempoMap fails with ErrInvalidChart when events is empty, holds a
// non-positive or non-finite BPM, starts at a negative beat or is not strictly
// increasing.
func NewTempoMap(events []game.TempoEvent) (*TempoMap, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: tempo map has no events", game.ErrInvalidChart)
	}
	for i, e := range events {
		if e.BPM <= 0 || math.IsNaN(e.BPM) || math.IsInf(e.BPM, 0) {
			return nil, fmt.Errorf("%w: bpm %v at beat %v", game.ErrInvalidChart, e.BPM, e.Beat)
		}
		if e.Beat < 0 {
			return nil, fmt.Errorf("%w: tempo event at negative beat %v", game.ErrInvalidChart, e.Beat)
		}
		if i > 0 && e.Beat <= events[i-1].Beat {
			return nil, fmt.Errorf("%w: tempo events not increasing at beat %v", game.ErrInvalidChart, e.Beat)
		}
	}
	evs := make([]game.TempoEvent, len(events))
	copy(evs, events)
	return &TempoMap{events: evs}, nil
}

func secondsPerBeat(bpm float64) float64 {
	return 60.0 / bpm
}

// Seconds is TimeAtBeat without rounding to a duration.
func (m *TempoMap) Seconds(beat float64) float64 {
	seconds := 0.0
	for i, e := range m.events {
		if beat <= e.Beat {
			break
		}
		end := beat
		if i+1 < len(m.events) && m.events[i+1].Beat < end {
			end = m.events[i+1].Beat
		}
		seconds += (end - e.Beat) * secondsPerBeat(e.BPM)
	}
	return seconds
}

// TimeAtBeat returns the time elapsed from beat 0 to beat.
func (m *TempoMap) TimeAtBeat(beat float64) time.Duration {
	return FromSeconds(m.Seconds(beat))
}

// BeatAt is the inverse of TimeAtBeat. Times before 0 extend the first
// tempo backwards.
func (m *TempoMap) BeatAt(t time.Duration) float64 {
	s := t.Seconds()
	first := m.events[0]
	if s <= 0 {
		return first.Beat + s/secondsPerBeat(first.BPM)
	}
	last := len(m.events) - 1
	for i, e := range m.events[:last] {
		spb := secondsPerBeat(e.BPM)
		span := (m.events[i+1].Beat - e.Beat) * spb
		if s < span {
			return e.Beat + s/spb
		}
		s -= span
	}
	return m.events[last].Beat + s/secondsPerBeat(m.events[last].BPM)
}

// BPMAt returns the tempo in effect at beat.
func (m *TempoMap) BPMAt(beat float64) float64 {
	bpm := m.events[0].BPM
	for _, e := range m.events {
		if beat < e.Beat {
			break
		}
		bpm = e.BPM
	}
	return bpm
}

// Events returns the validated tempo events in beat order.
func (m *TempoMap) Events() []game.TempoEvent {
	return m.events
}

// FromSeconds rounds real seconds to the nearest nanosecond.
func FromSeconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
