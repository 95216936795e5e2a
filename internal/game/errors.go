package game

import (
	"errors"
)

var (
	// ErrInvalidChart marks malformed or inconsistent chart data.
	ErrInvalidChart = errors.New("invalid chart")
	// ErrInvalidState marks misuse of a play session by its host.
	ErrInvalidState = errors.New("invalid state")
)
