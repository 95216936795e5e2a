// Package session judges lane input against a compiled chart as a track
// plays.
//
// A Session is driven by a single host loop: Advance once per frame,
// interleaved with Press and Release as input arrives. It is not safe for
// concurrent use. All times passed in are track times; the session clock is
// the track time minus the offset given to Start.
package session

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/beatline/internal/chart"
	"git.lost.host/meutraa/beatline/internal/game"
	"git.lost.host/meutraa/beatline/internal/judge"
	"git.lost.host/meutraa/beatline/internal/score"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Session struct {
	id     uuid.UUID
	chart  *chart.Chart
	policy *judge.Policy
	scorer score.Scorer
	log    logrus.FieldLogger

	notes     []*game.Note
	lanes     []lane
	remaining int

	started  bool
	aborted  bool
	ticked   bool
	offset   time.Duration
	lastTick time.Duration
	inputs   []game.Input

	onResolved []func(n *game.Note, stats score.Stats)
	onHit      []func(n *game.Note, d time.Duration)
}

// New prepares a session over a private copy of the chart's notes.
func New(ch *chart.Chart, policy *judge.Policy, opts ...Option) *Session {
	s := &Session{
		id:     uuid.New(),
		chart:  ch,
		policy: policy,
		scorer: score.NewTally(policy),
		log:    logrus.StandardLogger(),
		notes:  ch.CloneNotes(),
		lanes:  make([]lane, ch.Lanes),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("session", s.id.String())

	// Chart notes are sorted by time with ties in chart order
	for _, n := range s.notes {
		s.lanes[n.Lane].pending = append(s.lanes[n.Lane].pending, n)
	}
	s.remaining = len(s.notes)
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Chart() *chart.Chart {
	return s.chart
}

// Start establishes the clock offset, the track time at which chart time 0
// plays.
func (s *Session) Start(offset time.Duration) error {
	if s.started {
		return fmt.Errorf("%w: session already started", game.ErrInvalidState)
	}
	s.started = true
	s.offset = offset
	s.log.WithFields(logrus.Fields{
		"offset": offset,
		"notes":  len(s.notes),
		"lanes":  len(s.lanes),
	}).Debug("session started")
	return nil
}

// Abort ends the session. Every later call fails with ErrInvalidState.
func (s *Session) Abort() {
	if s.aborted {
		return
	}
	s.aborted = true
	s.log.WithField("remaining", s.remaining).Debug("session aborted")
}

// Done reports whether every note has been resolved.
func (s *Session) Done() bool {
	return s.remaining == 0
}

func (s *Session) Aborted() bool {
	return s.aborted
}

// Clock converts a track time to chart time.
func (s *Session) Clock(trackTime time.Duration) time.Duration {
	return trackTime - s.offset
}

func (s *Session) Offset() time.Duration {
	return s.offset
}

func (s *Session) Stats() score.Stats {
	return s.scorer.Stats()
}

// Notes returns every note in time order. Callers must not modify them.
func (s *Session) Notes() []*game.Note {
	return s.notes
}

// Active returns the notes that are still pending or being held.
func (s *Session) Active() []*game.Note {
	active := make([]*game.Note, 0, s.remaining)
	for _, n := range s.notes {
		if n.State != game.Resolved {
			active = append(active, n)
		}
	}
	return active
}

// ScrollDistance is how far the note still has to scroll before it reaches
// the hit bar at trackTime.
func (s *Session) ScrollDistance(n *game.Note, trackTime time.Duration) float64 {
	return judge.Offset(s.chart.Scroll, n.Time, s.Clock(trackTime))
}

// Inputs returns every press and release received, in arrival order.
func (s *Session) Inputs() []game.Input {
	return s.inputs
}

func (s *Session) usable() error {
	if !s.started {
		return fmt.Errorf("%w: session not started", game.ErrInvalidState)
	}
	if s.aborted {
		return fmt.Errorf("%w: session aborted", game.ErrInvalidState)
	}
	return nil
}

func (s *Session) lane(index int) (*lane, error) {
	if err := s.usable(); nil != err {
		return nil, err
	}
	if index < 0 || index >= len(s.lanes) {
		return nil, fmt.Errorf("%w: lane %d outside [0, %d)", game.ErrInvalidState, index, len(s.lanes))
	}
	return &s.lanes[index], nil
}

// Advance moves the clock to trackTime and misses every note whose window
// has closed. pressed is the set of lanes physically held down; a hold whose
// lane is no longer pressed is dropped. A track time earlier than the last
// one aborts the session.
func (s *Session) Advance(trackTime time.Duration, pressed game.LaneState) error {
	if err := s.usable(); nil != err {
		return err
	}
	if s.ticked && trackTime < s.lastTick {
		s.Abort()
		return fmt.Errorf("%w: track time went back from %v to %v", game.ErrInvalidState, s.lastTick, trackTime)
	}
	s.ticked = true
	s.lastTick = trackTime

	t := s.Clock(trackTime)
	bad := s.policy.BadWindow()
	for i := range s.lanes {
		l := &s.lanes[i]

		if h := l.holding; h != nil {
			switch {
			case t >= h.End:
				s.finishHold(l, game.Sick)
			case pressed == nil || !pressed.Pressed(i):
				h.ReleaseTime = t
				s.finishHold(l, game.Miss)
			}
		}

		for len(l.pending) > 0 {
			n := l.pending[0]
			if t <= n.Time+bad {
				break
			}
			l.remove(0)
			s.resolve(n, game.Miss)
		}
	}
	return nil
}

// Press judges a lane press against the closest pending note of the lane.
// A press outside every window leaves the notes untouched.
func (s *Session) Press(index int, trackTime time.Duration) error {
	l, err := s.lane(index)
	if nil != err {
		return err
	}
	s.inputs = append(s.inputs, game.Input{Lane: index, Time: trackTime})

	// The lane is already down for a hold
	if l.holding != nil {
		return nil
	}

	t := s.Clock(trackTime)
	n, i := l.nearest(t)
	if n == nil {
		return nil
	}
	d := t - n.Time
	g := s.policy.GradeFor(d)
	if g == game.Miss {
		return nil
	}

	l.remove(i)
	n.HitTime = t
	s.scorer.RecordError(d)
	for _, fn := range s.onHit {
		fn(n, d)
	}

	if !n.IsHold() {
		s.resolve(n, g)
		return nil
	}

	n.State = game.Holding
	n.StartGrade = g
	l.holding = n
	s.scorer.Apply(g)
	s.log.WithFields(logrus.Fields{
		"lane":  n.Lane,
		"grade": g,
		"error": d,
	}).Debug("hold started")
	return nil
}

// Release ends the hold on a lane. Letting go earlier than the tail
// tolerance before the end is a Miss, inside the tolerance it is at least
// Good, and at or after the end it is a completed Sick.
func (s *Session) Release(index int, trackTime time.Duration) error {
	l, err := s.lane(index)
	if nil != err {
		return err
	}
	s.inputs = append(s.inputs, game.Input{Lane: index, Time: trackTime, Release: true})

	h := l.holding
	if h == nil {
		return nil
	}

	t := s.Clock(trackTime)
	h.ReleaseTime = t
	switch {
	case t >= h.End:
		s.finishHold(l, game.Sick)
	case t < h.End-s.policy.TailTolerance():
		s.finishHold(l, game.Miss)
	default:
		s.finishHold(l, judge.Better(game.Good, h.StartGrade))
	}
	return nil
}

func (s *Session) finishHold(l *lane, g game.Grade) {
	h := l.holding
	l.holding = nil
	if !h.Resolve(g) {
		return
	}
	s.remaining--
	s.scorer.Amend(h.StartGrade, g)
	s.notify(h)
}

func (s *Session) resolve(n *game.Note, g game.Grade) {
	if !n.Resolve(g) {
		return
	}
	s.remaining--
	s.scorer.Apply(g)
	s.notify(n)
}

func (s *Session) notify(n *game.Note) {
	stats := s.scorer.Stats()
	s.log.WithFields(logrus.Fields{
		"lane":  n.Lane,
		"kind":  n.Kind,
		"time":  n.Time,
		"grade": n.Grade,
		"combo": stats.Combo,
	}).Debug("note resolved")
	for _, fn := range s.onResolved {
		fn(n, stats)
	}
}
