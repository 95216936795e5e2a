package parser

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/beatline/internal/game"
)

// DefaultParser reads StepMania .sm files.
type DefaultParser struct{}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

func (p *DefaultParser) isHead(c byte) bool {
	return c == '2' || c == '4'
}

func (p *DefaultParser) Parse(file string) ([]*game.RawChart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	charts, err := p.ParseBytes(data)
	if nil != err {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return charts, nil
}

type smSection struct {
	difficulty game.Difficulty
	data       string
}

func (p *DefaultParser) ParseBytes(data []byte) ([]*game.RawChart, error) {
	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]

	difficulties := []smSection{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			return nil, fmt.Errorf("%w: truncated #NOTES section", game.ErrInvalidChart)
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		nKeys, ok := game.NKeyMap[chartType]
		if !ok {
			continue
		}
		difficulties = append(difficulties, smSection{
			difficulty: game.Difficulty{
				Name:  strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
				Meter: strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
				NKeys: nKeys,
			},
			data: lines[6],
		})
	}

	base := game.RawChart{}
	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		key, value, found := strings.Cut(mdl, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))
		switch key {
		case "TITLE":
			base.Title = value
		case "MUSIC":
			base.Music = value
		case "OFFSET":
			offs, err := strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, fmt.Errorf("%w: #OFFSET %q", game.ErrInvalidChart, value)
			}
			// StepMania gives the time of beat 0 negated
			base.Offset = -offs
		case "BPMS":
			bpms, err := p.parseBPMs(value)
			if nil != err {
				return nil, err
			}
			base.BPMEvents = bpms
		}
	}
	if len(base.BPMEvents) == 0 {
		return nil, fmt.Errorf("%w: missing #BPMS", game.ErrInvalidChart)
	}
	base.BPM = base.BPMEvents[0].BPM

	charts := []*game.RawChart{}
	for _, section := range difficulties {
		notes, err := p.parseNotes(section)
		if nil != err {
			return nil, fmt.Errorf("%s: %w", section.difficulty.Name, err)
		}
		chart := base
		chart.BPMEvents = append([]game.TempoEvent(nil), base.BPMEvents...)
		chart.Notes = notes
		chart.Lanes = int(section.difficulty.NKeys)
		chart.Difficulty = section.difficulty
		charts = append(charts, &chart)
	}
	return charts, nil
}

func (p *DefaultParser) parseBPMs(value string) ([]game.TempoEvent, error) {
	value = strings.ReplaceAll(value, "\n", "")
	events := []game.TempoEvent{}
	for _, bpm := range strings.Split(value, ",") {
		bpm = strings.TrimSpace(bpm)
		if bpm == "" {
			continue
		}
		beat, rate, found := strings.Cut(bpm, "=")
		if !found {
			return nil, fmt.Errorf("%w: #BPMS entry %q", game.ErrInvalidChart, bpm)
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(beat), 64)
		if nil != err {
			return nil, fmt.Errorf("%w: #BPMS beat %q", game.ErrInvalidChart, beat)
		}
		r, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
		if nil != err {
			return nil, fmt.Errorf("%w: #BPMS value %q", game.ErrInvalidChart, rate)
		}
		events = append(events, game.TempoEvent{Beat: b, BPM: r})
	}
	return events, nil
}

func (p *DefaultParser) parseNotes(section smSection) ([]game.RawNote, error) {
	body, _, _ := strings.Cut(section.data, ";")
	nKeys := int(section.difficulty.NKeys)

	notes := []game.RawNote{}
	// Index into notes of the open hold head per column
	heads := make([]int, nKeys)
	for i := range heads {
		heads[i] = -1
	}

	blocks := strings.Split(body, "\n,")
	for measure, block := range blocks {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			l, _, _ = strings.Cut(l, "//")
			l = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), ","))
			if len(l) >= nKeys {
				lines = append(lines, l[:nKeys])
			}
		}

		// Beat count is 4 per block
		lineCount := int64(len(lines))
		for i, line := range lines {
			beat, _ := big.NewRat(int64(measure)*4*lineCount+int64(i)*4, lineCount).Float64()

			for lane := 0; lane < nKeys; lane++ {
				c := line[lane]
				switch {
				case c == '1':
					notes = append(notes, game.RawNote{Beat: beat, Lane: lane, Type: "tap"})
				case p.isHead(c):
					heads[lane] = len(notes)
					notes = append(notes, game.RawNote{Beat: beat, Lane: lane, Type: "tap"})
				case c == '3':
					h := heads[lane]
					if h < 0 {
						return nil, fmt.Errorf("%w: tail without head in lane %d at beat %v", game.ErrInvalidChart, lane, beat)
					}
					length := beat - notes[h].Beat
					notes[h].Type = "hold"
					notes[h].Length = &length
					heads[lane] = -1
				}
			}
		}
	}
	return notes, nil
}
