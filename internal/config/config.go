// Package config holds the tunable judgement, scoring and host settings.
package config

import (
	"fmt"
	"time"
)

const (
	maxLanes = 16
)

// Windows are the largest absolute timing errors accepted for each grade.
type Windows struct {
	Sick time.Duration `koanf:"sick"`
	Good time.Duration `koanf:"good"`
	Bad  time.Duration `koanf:"bad"`
}

// Scores are the points awarded per grade.
type Scores struct {
	Sick int `koanf:"sick"`
	Good int `koanf:"good"`
	Bad  int `koanf:"bad"`
	Miss int `koanf:"miss"`
}

type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Lanes is the lane count used when a chart does not declare one.
	Lanes int `koanf:"lanes"`

	// DefaultBPM is used when a chart has neither bpm nor bpmEvents.
	DefaultBPM float64 `koanf:"default_bpm"`

	Windows Windows `koanf:"windows"`
	Scores  Scores  `koanf:"scores"`

	// TailTolerance is how early a hold may be released and still count.
	TailTolerance time.Duration `koanf:"tail_tolerance"`

	// Offset is the global audio offset added to every chart offset.
	Offset time.Duration `koanf:"offset"`

	// Delay is the silence before the track starts.
	Delay time.Duration `koanf:"delay"`

	// Keys maps a lane count to the keyboard runes of each lane, in order.
	Keys map[string]string `koanf:"keys"`

	// KeyCodes maps a lane count to evdev key codes of each lane, in order.
	KeyCodes map[string][]int `koanf:"key_codes"`

	// RepeatTimeout is how long a terminal key stays down without a repeat.
	RepeatTimeout time.Duration `koanf:"repeat_timeout"`

	// ScrollRows is how many terminal rows one unit of scroll distance spans.
	ScrollRows float64 `koanf:"scroll_rows"`

	// MetricsAddr serves Prometheus metrics when not empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

func New() *Config {
	return &Config{
		LogLevel:   "info",
		Lanes:      4,
		DefaultBPM: 120,
		Windows: Windows{
			Sick: 50 * time.Millisecond,
			Good: 100 * time.Millisecond,
			Bad:  150 * time.Millisecond,
		},
		Scores: Scores{
			Sick: 1000,
			Good: 500,
			Bad:  100,
			Miss: 0,
		},
		TailTolerance: 150 * time.Millisecond,
		Delay:         1500 * time.Millisecond,
		Keys: map[string]string{
			"4": "dfjk",
			"6": "sdfjkl",
			"8": "asdfjkl;",
		},
		KeyCodes: map[string][]int{
			"4": {32, 33, 36, 37},
			"6": {31, 32, 33, 36, 37, 38},
			"8": {30, 31, 32, 33, 36, 37, 38, 39},
		},
		RepeatTimeout: 550 * time.Millisecond,
		ScrollRows:    12,
	}
}

// Validate checks the invariants the judge and session rely on.
func (c *Config) Validate() error {
	if c.Lanes < 1 || c.Lanes > maxLanes {
		return fmt.Errorf("%w: lanes must be within 1..%d, got %d", ErrInvalidConfig, maxLanes, c.Lanes)
	}
	if c.DefaultBPM <= 0 {
		return fmt.Errorf("%w: default_bpm must be positive", ErrInvalidConfig)
	}
	w := c.Windows
	if w.Sick <= 0 || w.Sick >= w.Good || w.Good >= w.Bad {
		return fmt.Errorf("%w: windows must be positive and strictly increasing, got %v/%v/%v",
			ErrInvalidConfig, w.Sick, w.Good, w.Bad)
	}
	if c.Scores.Sick < 0 || c.Scores.Good < 0 || c.Scores.Bad < 0 || c.Scores.Miss < 0 {
		return fmt.Errorf("%w: scores must not be negative", ErrInvalidConfig)
	}
	if c.TailTolerance < 0 {
		return fmt.Errorf("%w: tail_tolerance must not be negative", ErrInvalidConfig)
	}
	if c.RepeatTimeout <= 0 {
		return fmt.Errorf("%w: repeat_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
