package judge

import (
	"testing"
	"time"

	"git.lost.host/meutraa/beatline/internal/config"
	"git.lost.host/meutraa/beatline/internal/game"
	"git.lost.host/meutraa/beatline/internal/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeForDefaultWindows(t *testing.T) {
	t.Parallel()

	p := New(config.New())
	tests := map[time.Duration]game.Grade{
		0:                                      game.Sick,
		20 * time.Millisecond:                  game.Sick,
		50 * time.Millisecond:                  game.Sick,
		50*time.Millisecond + 1:                game.Good,
		-80 * time.Millisecond:                 game.Good,
		100 * time.Millisecond:                 game.Good,
		100*time.Millisecond + 1:               game.Bad,
		150 * time.Millisecond:                 game.Bad,
		-150 * time.Millisecond:                game.Bad,
		150*time.Millisecond + time.Nanosecond: game.Miss,
		time.Second:                            game.Miss,
	}
	for d, expected := range tests {
		assert.Equal(t, expected, p.GradeFor(d), "error %v", d)
	}
}

func TestGradeForIsMonotone(t *testing.T) {
	t.Parallel()

	p := New(config.New())
	previous := p.GradeFor(0)
	for d := time.Duration(0); d < 300*time.Millisecond; d += 250 * time.Microsecond {
		current := p.GradeFor(d)
		assert.GreaterOrEqual(t, uint8(current), uint8(previous), "error %v", d)
		previous = current
	}
}

func TestGradeForCustomWindows(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.Windows = config.Windows{Sick: 10 * time.Millisecond, Good: 20 * time.Millisecond, Bad: 30 * time.Millisecond}
	cfg.Scores = config.Scores{Sick: 3, Good: 2, Bad: 1, Miss: 0}
	require.NoError(t, cfg.Validate())

	p := New(cfg)
	assert.Equal(t, game.Good, p.GradeFor(15*time.Millisecond))
	assert.Equal(t, game.Miss, p.GradeFor(31*time.Millisecond))
	assert.Equal(t, 30*time.Millisecond, p.BadWindow())
	assert.Equal(t, 3, p.ScoreFor(game.Sick))
	assert.Equal(t, 1, p.ScoreFor(game.Bad))
	assert.Equal(t, 0, p.ScoreFor(game.Miss))
	assert.Equal(t, 20*time.Millisecond, p.Window(game.Good))
}

func TestScoreForDefaults(t *testing.T) {
	t.Parallel()

	p := New(config.New())
	assert.Equal(t, 1000, p.ScoreFor(game.Sick))
	assert.Equal(t, 500, p.ScoreFor(game.Good))
	assert.Equal(t, 100, p.ScoreFor(game.Bad))
	assert.Equal(t, 0, p.ScoreFor(game.Miss))
	assert.Equal(t, 0, p.ScoreFor(game.NoGrade))
	assert.Equal(t, 150*time.Millisecond, p.TailTolerance())
}

func TestBetter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, game.Sick, Better(game.Good, game.Sick))
	assert.Equal(t, game.Good, Better(game.Good, game.Bad))
	assert.Equal(t, game.Good, Better(game.Good, game.NoGrade))
	assert.Equal(t, game.Bad, Better(game.NoGrade, game.Bad))
}

func TestOffset(t *testing.T) {
	t.Parallel()

	tempo, err := timing.NewTempoMap([]game.TempoEvent{{Beat: 0, BPM: 120}})
	require.NoError(t, err)
	scroll, err := timing.NewScrollMap([]game.ScrollEvent{{Beat: 0, Speed: 2}}, tempo)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, Offset(scroll, 2*time.Second, time.Second), 1e-9)
	assert.InDelta(t, -1.0, Offset(scroll, time.Second, 1500*time.Millisecond), 1e-9)
	assert.Equal(t, 0.0, Offset(scroll, time.Second, time.Second))
}
