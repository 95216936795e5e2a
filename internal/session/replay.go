package session

import (
	"time"

	"git.lost.host/meutraa/beatline/internal/chart"
	"git.lost.host/meutraa/beatline/internal/game"
	"git.lost.host/meutraa/beatline/internal/judge"
	"git.lost.host/meutraa/beatline/internal/score"
	"golang.org/x/exp/slices"
)

// tapRelease is how long autoplay keeps a lane down after a tap.
const tapRelease = time.Millisecond

// lanes is a LaneState rebuilt from recorded input.
type lanes []bool

func (l lanes) Pressed(lane int) bool {
	return lane >= 0 && lane < len(l) && l[lane]
}

// Replay plays recorded input against a fresh session and returns the final
// stats. The clock advances to each input before it is applied and finally
// past the end of the chart, so every note ends up resolved.
func Replay(ch *chart.Chart, policy *judge.Policy, offset time.Duration, inputs []game.Input, opts ...Option) (score.Stats, error) {
	s := New(ch, policy, opts...)
	if err := s.Start(offset); nil != err {
		return score.Stats{}, err
	}

	ordered := make([]game.Input, len(inputs))
	copy(ordered, inputs)
	slices.SortStableFunc(ordered, func(a, b game.Input) int {
		return byInputTime(a, b)
	})

	held := make(lanes, ch.Lanes)
	for _, in := range ordered {
		if err := s.Advance(in.Time, held); nil != err {
			return s.Stats(), err
		}
		var err error
		if in.Release {
			err = s.Release(in.Lane, in.Time)
		} else {
			err = s.Press(in.Lane, in.Time)
		}
		if nil != err {
			return s.Stats(), err
		}
		if in.Lane >= 0 && in.Lane < len(held) {
			held[in.Lane] = !in.Release
		}
	}

	end := offset + ch.Length() + policy.BadWindow() + time.Nanosecond
	if n := len(ordered); n > 0 && ordered[n-1].Time > end {
		end = ordered[n-1].Time
	}
	if err := s.Advance(end, held); nil != err {
		return s.Stats(), err
	}
	return s.Stats(), nil
}

func byInputTime(a, b game.Input) int {
	switch {
	case a.Time < b.Time:
		return -1
	case a.Time > b.Time:
		return 1
	}
	return 0
}

// Autoplay returns input that hits every note dead on, in track time for a
// session started at offset. Releases sort before presses at the same time.
func Autoplay(ch *chart.Chart, offset time.Duration) []game.Input {
	inputs := make([]game.Input, 0, 2*len(ch.Notes))
	for _, n := range ch.Notes {
		release := n.Time + tapRelease
		if n.IsHold() {
			release = n.End
		}
		inputs = append(inputs,
			game.Input{Lane: n.Lane, Time: offset + n.Time},
			game.Input{Lane: n.Lane, Time: offset + release, Release: true},
		)
	}
	slices.SortStableFunc(inputs, func(a, b game.Input) int {
		if c := byInputTime(a, b); c != 0 {
			return c
		}
		switch {
		case a.Release && !b.Release:
			return -1
		case b.Release && !a.Release:
			return 1
		}
		return 0
	})
	return inputs
}
