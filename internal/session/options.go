package session

import (
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
	"git.lost.host/meutraa/beatline/internal/score"
	"github.com/sirupsen/logrus"
)

type Option func(*Session)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Session) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithScorer replaces the default score tally.
func WithScorer(scorer score.Scorer) Option {
	return func(s *Session) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// OnResolved is called each time a note receives its final grade, with the
// stats that include it.
func OnResolved(fn func(n *game.Note, stats score.Stats)) Option {
	return func(s *Session) {
		s.onResolved = append(s.onResolved, fn)
	}
}

// OnHit is called for every accepted press with its signed error, positive
// when late.
func OnHit(fn func(n *game.Note, d time.Duration)) Option {
	return func(s *Session) {
		s.onHit = append(s.onHit, fn)
	}
}
