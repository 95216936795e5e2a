package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveJudgement(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.ObserveJudgement(&game.Note{Kind: game.Tap, Grade: game.Sick}, 1000, 1, 1)
	m.ObserveJudgement(&game.Note{Kind: game.Hold, Grade: game.Miss}, 1000, 0, 1)
	m.ObserveJudgement(&game.Note{Kind: game.Tap, Grade: game.Sick}, 2000, 1, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.judgements.WithLabelValues("sick", "tap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.judgements.WithLabelValues("miss", "hold")))
	assert.Equal(t, 2000.0, testutil.ToFloat64(m.score))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.combo))
}

func TestSessionsAndErrors(t *testing.T) {
	t.Parallel()

	m := NewManager(WithNamespace("test"))
	m.SessionEnded("completed")
	m.SessionEnded("aborted")
	m.SessionEnded("completed")
	m.InvalidState()
	m.ObserveHitError(-20 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessions.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invalidStates))
	assert.Equal(t, 1, testutil.CollectAndCount(m.hitError))
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.SessionEnded("completed")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `beatline_sessions_total{outcome="completed"} 1`)
}
