// Package parser reads chart files into raw, beat based charts.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/beatline/internal/game"
)

type Parser interface {
	// Parse returns every chart the file holds, one per difficulty.
	Parse(file string) ([]*game.RawChart, error)
}

// ForFile picks a parser by file extension.
func ForFile(file string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return &JSONParser{}, nil
	case ".sm":
		return &DefaultParser{}, nil
	}
	return nil, fmt.Errorf("%w: unsupported chart format %q", game.ErrInvalidChart, filepath.Ext(file))
}

// Select returns the chart matching a difficulty name, or the first one
// when name is empty.
func Select(charts []*game.RawChart, name string) (*game.RawChart, error) {
	if len(charts) == 0 {
		return nil, fmt.Errorf("%w: file holds no playable charts", game.ErrInvalidChart)
	}
	if name == "" {
		return charts[0], nil
	}
	for _, c := range charts {
		if strings.EqualFold(c.Difficulty.Name, name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no %q difficulty", game.ErrInvalidChart, name)
}
