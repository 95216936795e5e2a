package render

import (
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
	"git.lost.host/meutraa/beatline/internal/score"
	"git.lost.host/meutraa/beatline/internal/session"
	"git.lost.host/meutraa/beatline/internal/theme"
)

const (
	columnSpacing = 2
	barOffset     = 3
	sideWidth     = 36
	flashFrames   = 30
)

// Playfield lays lanes out around the middle of the terminal with notes
// scrolling down onto a hit bar near the bottom.
type Playfield struct {
	r          Renderer
	th         theme.Theme
	scrollRows float64

	rows    int
	bar     int
	center  int
	columns []int
	side    int
}

func NewPlayfield(r Renderer, th theme.Theme, lanes int, scrollRows float64, cols, rows int) *Playfield {
	p := &Playfield{
		r:          r,
		th:         th,
		scrollRows: scrollRows,
		rows:       rows,
		bar:        rows - barOffset,
		center:     cols >> 1,
		columns:    make([]int, lanes),
	}
	for i := range p.columns {
		p.columns[i] = p.center + columnSpacing*(2*i-(lanes-1))
	}
	p.side = p.columns[0] - sideWidth
	if p.side < 2 {
		p.side = 2
	}
	return p
}

// Row is the terminal row of something distance scroll units above the bar.
func (p *Playfield) Row(distance float64) int {
	return p.bar - int(math.Round(distance*p.scrollRows))
}

func (p *Playfield) visible(row int) bool {
	return row >= 1 && row <= p.rows
}

// Draw renders one frame.
func (p *Playfield) Draw(s *session.Session, trackTime time.Duration, pressed game.LaneState) error {
	for row := 1; row <= p.rows; row++ {
		p.r.ClearRow(row)
	}

	for i, col := range p.columns {
		p.r.Fill(p.bar, col, p.th.RenderHitField(i, pressed != nil && pressed.Pressed(i)))
	}

	clock := s.Clock(trackTime)
	scroll := s.Chart().Scroll
	for _, n := range s.Active() {
		col := p.columns[n.Lane]
		head := p.Row(s.ScrollDistance(n, trackTime))
		if n.State == game.Holding {
			head = p.bar
		}

		if n.IsHold() {
			tail := p.Row(scroll.DistanceBetween(clock, n.End))
			from, to := tail, head
			if from > to {
				from, to = to, from
			}
			for row := from; row <= to; row++ {
				if row != head && p.visible(row) {
					p.r.Fill(row, col, p.th.RenderHold(n.Lane, n.Denom))
				}
			}
		}

		if p.visible(head) {
			p.r.Fill(head, col, p.th.RenderNote(n.Lane, n.Denom))
		}
	}

	p.drawStats(s, trackTime)
	return p.r.Flush()
}

func (p *Playfield) drawStats(s *session.Session, trackTime time.Duration) {
	stats := s.Stats()
	tempo := s.Chart().Tempo
	lines := []string{
		s.Chart().Title,
		fmt.Sprintf("        BPM:  %8.2f", tempo.BPMAt(tempo.BeatAt(s.Clock(trackTime)))),
		fmt.Sprintf("      Score:  %8d", stats.Score),
		fmt.Sprintf("      Combo:  %8d", stats.Combo),
		fmt.Sprintf("  Max Combo:  %8d", stats.MaxCombo),
		fmt.Sprintf("       Mean:  %8.2fms", float64(stats.Mean)/float64(time.Millisecond)),
		fmt.Sprintf("      Stdev:  %8.2fms", float64(stats.Stdev)/float64(time.Millisecond)),
		"",
	}
	for _, g := range game.Grades {
		lines = append(lines, fmt.Sprintf("%11s:  %8d", p.th.GradeLabel(g), stats.Count(g)))
	}
	for i, line := range lines {
		p.r.Fill(2+i, p.side, line)
	}
}

// Judged flashes the grade of a resolved note above the bar.
func (p *Playfield) Judged(n *game.Note, stats score.Stats) {
	label := fmt.Sprintf("%-4s %4d", p.th.GradeLabel(n.Grade), stats.Combo)
	p.r.AddDecoration(p.center-len(label)/2, p.bar-4, label, p.th.GradeColor(n.Grade), flashFrames)
}
