// Package theme decides how notes, lanes and judgements look on a terminal.
package theme

import (
	"git.lost.host/meutraa/beatline/internal/game"
	"github.com/lucasb-eyer/go-colorful"
)

type Theme interface {
	RenderNote(lane int, denom int) string
	RenderHold(lane int, denom int) string
	RenderHitField(lane int, pressed bool) string
	GradeColor(g game.Grade) colorful.Color
	GradeLabel(g game.Grade) string
	Background() colorful.Color
}
