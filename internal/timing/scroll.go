package timing

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
)

type scrollSegment struct {
	start time.Duration
	speed float64
}

// ScrollMap integrates scroll speed over track time. Segments are declared in
// beats and anchored to time through a TempoMap once, at construction.
type ScrollMap struct {
	segments []scrollSegment
}

// NewScrollMap fails with ErrInvalidChart when events is empty, starts at a
// negative beat or is not strictly increasing.
func NewScrollMap(events []game.ScrollEvent, tempo *TempoMap) (*ScrollMap, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: scroll map has no events", game.ErrInvalidChart)
	}
	segments := make([]scrollSegment, 0, len(events))
	for i, e := range events {
		if e.Beat < 0 {
			return nil, fmt.Errorf("%w: scroll event at negative beat %v", game.ErrInvalidChart, e.Beat)
		}
		if i > 0 && e.Beat <= events[i-1].Beat {
			return nil, fmt.Errorf("%w: scroll events not increasing at beat %v", game.ErrInvalidChart, e.Beat)
		}
		segments = append(segments, scrollSegment{
			start: tempo.TimeAtBeat(e.Beat),
			speed: e.Speed,
		})
	}
	return &ScrollMap{segments: segments}, nil
}

// DistanceBetween is the signed, speed weighted time travelled from a to b.
// The first speed extends back before its own start.
func (m *ScrollMap) DistanceBetween(a, b time.Duration) float64 {
	if a == b {
		return 0
	}
	t0, t1, dir := a, b, 1.0
	if b < a {
		t0, t1, dir = b, a, -1.0
	}

	distance := 0.0
	for i, s := range m.segments {
		start := s.start
		if i == 0 && t0 < start {
			start = t0
		}
		if start >= t1 {
			break
		}
		end := t1
		if i+1 < len(m.segments) {
			end = m.segments[i+1].start
		}
		if end <= t0 {
			continue
		}
		from, to := start, end
		if from < t0 {
			from = t0
		}
		if to > t1 {
			to = t1
		}
		distance += (to - from).Seconds() * s.speed
	}
	return distance * dir
}

// SpeedAt returns the multiplier in effect at t.
func (m *ScrollMap) SpeedAt(t time.Duration) float64 {
	speed := m.segments[0].speed
	for _, s := range m.segments {
		if t < s.start {
			break
		}
		speed = s.speed
	}
	return speed
}
