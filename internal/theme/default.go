package theme

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/beatline/internal/game"
	"github.com/lucasb-eyer/go-colorful"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(lane int, denom int) string {
	return Paint(NoteColor(denom), noteSym)
}

// RenderHold draws a hold body, a darker shade of its head.
func (t *DefaultTheme) RenderHold(lane int, denom int) string {
	c := t.Background().BlendLab(NoteColor(denom), 0.5)
	return Paint(c, holdSym)
}

func (t *DefaultTheme) RenderHitField(lane int, pressed bool) string {
	if pressed {
		return Paint(colorful.Color{R: 1, G: 1, B: 1}, barPressedSym)
	}
	return barSym
}

func (t *DefaultTheme) GradeColor(g game.Grade) colorful.Color {
	if c, ok := gradeColors[g]; ok {
		return c
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

func (t *DefaultTheme) GradeLabel(g game.Grade) string {
	return strings.ToUpper(g.String())
}

func (t *DefaultTheme) Background() colorful.Color {
	return colorful.Color{}
}

// Paint wraps a message in a 24 bit foreground color escape.
func Paint(c colorful.Color, message string) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", r, g, b, message)
}

const (
	noteSym       = "⬤"
	holdSym       = "┃"
	barSym        = "-"
	barPressedSym = "━"
)

var (
	noteColors = map[int]colorful.Color{
		1:  colorful.MustParseHex("#ec1e00"), // 1/4 red
		2:  colorful.MustParseHex("#0076ec"), // 1/8 blue
		3:  colorful.MustParseHex("#6a00ec"), // 1/12 purple
		4:  colorful.MustParseHex("#ecc300"), // 1/16 yellow
		6:  colorful.MustParseHex("#ec006a"), // 1/24 pink
		8:  colorful.MustParseHex("#ec8000"), // 1/32 orange
		12: colorful.MustParseHex("#adecec"), // 1/48 light blue
		16: colorful.MustParseHex("#00ec80"), // 1/64 green
		24: colorful.MustParseHex("#6a6a6a"), // 1/96 grey
		32: colorful.MustParseHex("#6a6a6a"), // 1/128 grey
		48: colorful.MustParseHex("#6e9359"), // 1/192 olive
		64: colorful.MustParseHex("#6a6a6a"), // 1/256 grey
		-1: colorful.MustParseHex("#ffffff"), // other white
	}
	gradeColors = map[game.Grade]colorful.Color{
		game.Sick: colorful.MustParseHex("#00e5ff"),
		game.Good: colorful.MustParseHex("#4caf50"),
		game.Bad:  colorful.MustParseHex("#ff9800"),
		game.Miss: colorful.MustParseHex("#f44336"),
	}
)

// NoteColor is the color of a note by the beat division it falls on.
func NoteColor(denom int) colorful.Color {
	col, ok := noteColors[denom]
	if !ok {
		return noteColors[-1]
	}
	return col
}
