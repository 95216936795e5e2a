// Package render draws the playfield on a terminal with ANSI escapes.
package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

type Renderer interface {
	Init() error
	Deinit() error
	Size() (columns, rows int, err error)
	AddDecoration(col, row int, content string, color colorful.Color, frames int)
	Fill(row, column int, message string)
	FillColor(row, column int, color colorful.Color, message string)
	ClearRow(row int)
	Flush() error
}
