package game

type TempoEvent struct {
	Beat float64 `json:"beat"`
	BPM  float64 `json:"bpm"`
}

type ScrollEvent struct {
	Beat  float64 `json:"beat"`
	Speed float64 `json:"speed"`
}

type RawNote struct {
	Beat   float64  `json:"beat"`
	Lane   int      `json:"lane"`
	Type   string   `json:"type"`
	Length *float64 `json:"length,omitempty"` // In beats, only holds
}

// RawChart is a parsed but not yet compiled chart.
type RawChart struct {
	Title        string        `json:"title,omitempty"`
	BPM          float64       `json:"bpm"`
	BPMEvents    []TempoEvent  `json:"bpmEvents,omitempty"`
	ScrollEvents []ScrollEvent `json:"scrollEvents,omitempty"`
	Notes        []RawNote     `json:"notes"`
	Offset       float64       `json:"offset,omitempty"` // Track seconds at which beat 0 plays
	Music        string        `json:"music,omitempty"`
	Lanes        int           `json:"lanes,omitempty"`

	Difficulty Difficulty `json:"-"`
}
