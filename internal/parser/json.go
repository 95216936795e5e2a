package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"git.lost.host/meutraa/beatline/internal/game"
)

// JSONParser reads the native single difficulty chart format.
type JSONParser struct{}

func (p *JSONParser) Parse(file string) ([]*game.RawChart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	chart, err := p.ParseBytes(data)
	if nil != err {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return []*game.RawChart{chart}, nil
}

func (p *JSONParser) ParseBytes(data []byte) (*game.RawChart, error) {
	var chart game.RawChart
	if err := json.Unmarshal(data, &chart); nil != err {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidChart, err)
	}
	if chart.Notes == nil {
		return nil, fmt.Errorf("%w: no notes", game.ErrInvalidChart)
	}
	chart.Difficulty = game.Difficulty{
		Name:  "default",
		NKeys: uint8(chart.Lanes),
	}
	return &chart, nil
}
