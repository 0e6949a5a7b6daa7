package utils

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// Renderer names accepted by Config.Renderer
const (
	RendererTerminal = "terminal"
	RendererConsole  = "console"
	RendererWindow   = "window"
	RendererNone     = "none"
)

// Config holds the configuration for a run
type Config struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	PercentAlive   int     `json:"percent_alive"`
	DelaySeconds   float64 `json:"delay_seconds"`
	SeedFile       string  `json:"seed_file"`
	RandSeed       int64   `json:"rand_seed"`
	Color          string  `json:"color"`
	Trippy         bool    `json:"trippy"`
	Workers        int     `json:"workers"`
	MaxGenerations int     `json:"max_generations"`
	StopWhenStable bool    `json:"stop_when_stable"`
	Renderer       string  `json:"renderer"`
	ClearScreen    bool    `json:"clear_screen"`
	CellSize       int     `json:"cell_size"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:        80,
		Height:       40,
		PercentAlive: 33,
		DelaySeconds: 0.1,
		Color:        "#000000",
		Workers:      1,
		Renderer:     RendererTerminal,
		ClearScreen:  true,
		CellSize:     10,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate rejects values no engine or renderer can run with. A seed file makes the
// width and height placeholders, so they are only checked for random seeding.
func (c Config) Validate() error {
	if c.SeedFile == "" {
		if c.Width <= 0 {
			return &model.ConfigError{Field: "width", Msg: fmt.Sprintf("must be positive, got %d", c.Width)}
		}
		if c.Height <= 0 {
			return &model.ConfigError{Field: "height", Msg: fmt.Sprintf("must be positive, got %d", c.Height)}
		}
		if c.PercentAlive < 0 || c.PercentAlive > 100 {
			return &model.ConfigError{Field: "percent_alive", Msg: fmt.Sprintf("must be within [0,100], got %d", c.PercentAlive)}
		}
	}
	if c.DelaySeconds < 0 {
		return &model.ConfigError{Field: "delay_seconds", Msg: fmt.Sprintf("must not be negative, got %v", c.DelaySeconds)}
	}
	if c.Workers < 0 {
		return &model.ConfigError{Field: "workers", Msg: fmt.Sprintf("must not be negative, got %d", c.Workers)}
	}
	if c.MaxGenerations < 0 {
		return &model.ConfigError{Field: "max_generations", Msg: fmt.Sprintf("must not be negative, got %d", c.MaxGenerations)}
	}
	if c.CellSize <= 0 {
		return &model.ConfigError{Field: "cell_size", Msg: fmt.Sprintf("must be positive, got %d", c.CellSize)}
	}
	switch c.Renderer {
	case RendererTerminal, RendererConsole, RendererWindow, RendererNone:
	default:
		return &model.ConfigError{Field: "renderer", Msg: fmt.Sprintf("unknown renderer %q", c.Renderer)}
	}
	if !c.Trippy {
		if _, err := c.LifeColor(); err != nil {
			return err
		}
	}
	return nil
}

// Delay returns the pause between generations
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelaySeconds * float64(time.Second))
}

// LifeColor parses Color as #RRGGBB
func (c Config) LifeColor() (color.RGBA, error) {
	if len(c.Color) != 7 || c.Color[0] != '#' {
		return color.RGBA{}, &model.ConfigError{Field: "color", Msg: fmt.Sprintf("expected #RRGGBB, got %q", c.Color)}
	}
	rgb, err := strconv.ParseUint(c.Color[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, &model.ConfigError{Field: "color", Msg: fmt.Sprintf("expected #RRGGBB, got %q", c.Color)}
	}
	r, g, b := uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// ColorPolicy returns the renderer color policy for this configuration
func (c Config) ColorPolicy() (model.ColorPolicy, error) {
	if c.Trippy {
		return model.RandomPerFrame(model.NewRand(c.RandSeed)), nil
	}
	lifeColor, err := c.LifeColor()
	if err != nil {
		return model.ColorPolicy{}, err
	}
	return model.FixedColor(lifeColor), nil
}
