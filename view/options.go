package view

import (
	"image/color"
	"time"

	"github.com/sheikhrachel/go-life/model"
)

// WindowOptions configures RunWindow
type WindowOptions struct {
	Policy         model.ColorPolicy
	Background     color.Color
	CellSize       int
	Delay          time.Duration
	MaxGenerations int
}

func (o WindowOptions) withDefaults() WindowOptions {
	if o.Background == nil {
		o.Background = color.White
	}
	if o.CellSize <= 0 {
		o.CellSize = 1
	}
	return o
}
