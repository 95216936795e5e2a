package session_test

import (
	"testing"
	"time"

	"git.lost.host/meutraa/beatline/internal/chart"
	"git.lost.host/meutraa/beatline/internal/config"
	"git.lost.host/meutraa/beatline/internal/game"
	"git.lost.host/meutraa/beatline/internal/judge"
	"git.lost.host/meutraa/beatline/internal/logging"
	"git.lost.host/meutraa/beatline/internal/session"
	"git.lost.host/meutraa/beatline/internal/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) *chart.Chart {
	t.Helper()
	raw, err := testdata.GetChart()
	require.NoError(t, err)
	ch, err := chart.Compile(raw, chart.Options{Lanes: 4, DefaultBPM: 120})
	require.NoError(t, err)
	return ch
}

func TestAutoplayIsPerfect(t *testing.T) {
	ch := fixture(t)
	policy := judge.New(config.New())

	inputs := session.Autoplay(ch, ch.Offset)
	assert.Len(t, inputs, 2*len(ch.Notes))

	stats, err := session.Replay(ch, policy, ch.Offset, inputs, session.WithLogger(logging.Discard()))
	require.NoError(t, err)
	assert.Equal(t, 7000, stats.Score)
	assert.Equal(t, 7, stats.Combo)
	assert.Equal(t, 7, stats.MaxCombo)
	assert.Equal(t, 7, stats.Count(game.Sick))
	assert.Equal(t, 7, stats.Judged())
	assert.Equal(t, time.Duration(0), stats.Mean)
}

func TestAutoplayOrdering(t *testing.T) {
	ch := compileRaw(t,
		game.RawNote{Beat: 2, Lane: 0},
		game.RawNote{Beat: 2.002, Lane: 0},
	)
	inputs := session.Autoplay(ch, 0)
	require.Len(t, inputs, 4)
	for i := 1; i < len(inputs); i++ {
		assert.LessOrEqual(t, int64(inputs[i-1].Time), int64(inputs[i].Time))
	}
	assert.False(t, inputs[0].Release)
	assert.True(t, inputs[1].Release)
}

func TestReplayMatchesLivePlay(t *testing.T) {
	ch := fixture(t)
	policy := judge.New(config.New())
	s := session.New(ch, policy, session.WithLogger(logging.Discard()))
	require.NoError(t, s.Start(ch.Offset))

	ms := time.Millisecond
	at := func(d time.Duration) time.Duration { return ch.Offset + d }
	held := map[int]bool{}
	state := pressed(held)

	frames := []struct {
		at      time.Duration
		lane    int
		release bool
	}{
		{at(1010 * ms), 0, false},
		{at(1020 * ms), 0, true},
		{at(1540 * ms), 0, false},
		{at(1560 * ms), 0, true},
		{at(2060 * ms), 2, false},
		{at(2900 * ms), 2, true},
		{at(3800 * ms), 1, false},
		{at(3810 * ms), 1, true},
	}
	for _, f := range frames {
		require.NoError(t, s.Advance(f.at, state))
		if f.release {
			require.NoError(t, s.Release(f.lane, f.at))
		} else {
			require.NoError(t, s.Press(f.lane, f.at))
		}
		held[f.lane] = !f.release
	}
	require.NoError(t, s.Advance(at(ch.Length()+time.Second), state))
	require.True(t, s.Done())

	stats, err := session.Replay(ch, policy, ch.Offset, s.Inputs(), session.WithLogger(logging.Discard()))
	require.NoError(t, err)
	assert.Equal(t, s.Stats().Score, stats.Score)
	assert.Equal(t, s.Stats().MaxCombo, stats.MaxCombo)
	assert.Equal(t, s.Stats().Counts, stats.Counts)
	assert.Equal(t, s.Stats().Mean, stats.Mean)
}

func TestReplayRejectsBadLane(t *testing.T) {
	ch := fixture(t)
	_, err := session.Replay(ch, judge.New(config.New()), 0, []game.Input{{Lane: 9, Time: time.Second}},
		session.WithLogger(logging.Discard()))
	assert.ErrorIs(t, err, game.ErrInvalidState)
}

func compileRaw(t *testing.T, notes ...game.RawNote) *chart.Chart {
	t.Helper()
	ch, err := chart.Compile(&game.RawChart{BPM: 120, Notes: notes}, chart.Options{Lanes: 4, DefaultBPM: 120})
	require.NoError(t, err)
	return ch
}
