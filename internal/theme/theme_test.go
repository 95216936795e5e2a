package theme

import (
	"testing"

	"git.lost.host/meutraa/beatline/internal/game"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestPaint(t *testing.T) {
	assert.Equal(t, "\033[38;2;236;30;0mx\033[0m", Paint(NoteColor(1), "x"))
	assert.Equal(t, "\033[38;2;255;255;255mx\033[0m", Paint(colorful.Color{R: 2, G: 1, B: 1}, "x"))
}

func TestNoteColor(t *testing.T) {
	assert.Equal(t, noteColors[2], NoteColor(2))
	assert.Equal(t, noteColors[-1], NoteColor(5))
	assert.Equal(t, noteColors[-1], NoteColor(-1))
}

func TestDefaultTheme(t *testing.T) {
	var th Theme = &DefaultTheme{}

	assert.Contains(t, th.RenderNote(0, 4), noteSym)
	assert.Contains(t, th.RenderHold(0, 4), holdSym)
	assert.Equal(t, barSym, th.RenderHitField(2, false))
	assert.Contains(t, th.RenderHitField(2, true), barPressedSym)

	assert.Equal(t, "SICK", th.GradeLabel(game.Sick))
	assert.Equal(t, "MISS", th.GradeLabel(game.Miss))
	assert.Equal(t, gradeColors[game.Good], th.GradeColor(game.Good))
	assert.Equal(t, colorful.Color{R: 1, G: 1, B: 1}, th.GradeColor(game.NoGrade))

	// The hold body sits between the background and the head color
	body := th.Background().BlendLab(NoteColor(4), 0.5)
	assert.Less(t, body.DistanceLab(th.Background()), NoteColor(4).DistanceLab(th.Background()))
}
