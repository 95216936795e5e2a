// Package audio provides the track clock a session is judged against.
package audio

import (
	"errors"
	"time"

	"k8s.io/utils/clock"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Track reports the current playback position. Successive calls never go
// back. Before playback begins the position is negative.
type Track interface {
	Now() time.Duration
	Close() error
}

// monotonic clamps a position so it never goes back.
type monotonic struct {
	last    time.Duration
	started bool
}

func (m *monotonic) clamp(d time.Duration) time.Duration {
	if m.started && d < m.last {
		return m.last
	}
	m.started = true
	m.last = d
	return d
}

// WallTrack is a silent track that starts playing after a delay.
type WallTrack struct {
	clock clock.PassiveClock
	start time.Time
	mono  monotonic
}

func NewWallTrack(c clock.PassiveClock, delay time.Duration) *WallTrack {
	return &WallTrack{
		clock: c,
		start: c.Now().Add(delay),
	}
}

func (t *WallTrack) Now() time.Duration {
	return t.mono.clamp(t.clock.Since(t.start))
}

func (t *WallTrack) Close() error {
	return nil
}
