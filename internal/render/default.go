package render

import (
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"git.lost.host/meutraa/beatline/internal/theme"
	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"
	"k8s.io/utils/clock"
)

type DefaultRenderer struct {
	out          io.Writer
	fd           int
	background   colorful.Color
	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
}

type decoration struct {
	X, Y    int
	Content string
	Color   colorful.Color
	Frames  int // remaining frames until removed
	Total   int
}

// New renders to out. fd is the terminal put in raw mode by Init and
// measured by Size.
func New(out io.Writer, fd int, background colorful.Color) *DefaultRenderer {
	return &DefaultRenderer{
		out:        out,
		fd:         fd,
		background: background,
	}
}

func (r *DefaultRenderer) Init() error {
	state, err := term.MakeRaw(r.fd)
	if nil != err {
		return err
	}
	r.restoreState = state

	r.buffer.WriteString("\033[?1049h") // Enable alternate buffer
	r.buffer.WriteString("\033[?25l")   // Make the cursor invisible
	r.buffer.WriteString("\033[2J")     // Clear the screen
	return r.Flush()
}

func (r *DefaultRenderer) Deinit() error {
	r.buffer.WriteString("\033[?1049l") // Disable alternate buffer
	r.buffer.WriteString("\033[?25h")   // Make the cursor visible
	if err := r.Flush(); nil != err {
		return err
	}
	if r.restoreState == nil {
		return nil
	}
	return term.Restore(r.fd, r.restoreState)
}

func (r *DefaultRenderer) Size() (int, int, error) {
	return term.GetSize(r.fd)
}

// AddDecoration shows content for a number of frames, fading it out into
// the background.
func (r *DefaultRenderer) AddDecoration(col, row int, content string, color colorful.Color, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Color:   color,
		Frames:  frames,
		Total:   frames,
	})
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames <= 0 {
			r.Fill(d.Y, d.X, strings.Repeat(" ", utf8.RuneCountInString(d.Content)))
			continue
		}
		alpha := ease.InQuad(float64(d.Frames) / float64(d.Total))
		r.FillColor(d.Y, d.X, r.background.BlendLab(d.Color, alpha), d.Content)
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column int, c colorful.Color, message string) {
	r.Fill(row, column, theme.Paint(c, message))
}

func (r *DefaultRenderer) ClearRow(row int) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";1H\033[2K")
}

// Flush draws the decorations and writes the frame in one call.
func (r *DefaultRenderer) Flush() error {
	r.tickDecorations()
	_, err := io.WriteString(r.out, r.buffer.String())
	r.buffer.Reset()
	return err
}

// Loop calls frame once per period until it returns false.
func Loop(c clock.Clock, period time.Duration, frame func() bool) {
	ticker := c.NewTicker(period)
	defer ticker.Stop()
	for frame() {
		<-ticker.C()
	}
}
