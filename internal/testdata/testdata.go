// Package testdata holds a small chart shared by package tests.
package testdata

import (
	_ "embed"
	"encoding/json"

	"git.lost.host/meutraa/beatline/internal/game"
)

//go:embed chart.json
var data []byte

//go:embed chart.sm
var sm []byte

// GetChart returns a fresh copy of the fixture chart. At 120 bpm (240 from
// beat 8) its notes land at 1.0s (lanes 0 and 1), 1.5s, 2.0s-3.0s (hold on
// lane 2), 2.5s, 3.75s and 4.5s.
func GetChart() (*game.RawChart, error) {
	var chart game.RawChart
	if err := json.Unmarshal(data, &chart); nil != err {
		return nil, err
	}
	return &chart, nil
}

// Data returns the raw fixture JSON.
func Data() []byte {
	return data
}

// SM returns the fixture notes as a StepMania file with a second, solo,
// difficulty of two taps.
func SM() []byte {
	return sm
}
