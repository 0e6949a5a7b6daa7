package model

import (
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
)

// RandSource is the subset of *rand.Rand used for seeding
type RandSource interface {
	IntN(n int) int
}

// NewRand returns a deterministic PCG-backed generator; seed 0 picks one from the clock
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Seed produces the first generation of an engine. The placeholder dimensions come
// from configuration; a seed may replace them with its own.
type Seed interface {
	SeedGrid(width, height int) (*Grid, error)
}

// RandomSeed marks each cell alive when a uniform draw in [1,100] is strictly below
// PercentAlive, so 0 never produces life and 100 still leaves about 1% of cells dead.
type RandomSeed struct {
	PercentAlive int
	Rand         RandSource
}

// SeedGrid implements Seed
func (s RandomSeed) SeedGrid(width, height int) (*Grid, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := validatePercent(s.PercentAlive); err != nil {
		return nil, err
	}
	if s.Rand == nil {
		return nil, &ConfigError{Field: "rand", Msg: "random seed without a generator"}
	}

	g := NewGrid(width, height)
	for row := range height {
		for col := range width {
			g.cells[row][col] = s.Rand.IntN(100)+1 < s.PercentAlive
		}
	}
	return g, nil
}

// GridSeed starts the engine from an already decoded grid, adopting its dimensions
type GridSeed struct {
	Grid *Grid
}

// SeedGrid implements Seed
func (s GridSeed) SeedGrid(_, _ int) (*Grid, error) {
	if s.Grid == nil {
		return nil, &ConfigError{Field: "grid", Msg: "nil seed grid"}
	}
	return s.Grid, nil
}

// Setup is the first phase of building an engine: dimensions are placeholders until a
// seed is known. Finalize produces the immutable engine.
type Setup struct {
	width  int
	height int
	opts   []Option
}

// NewSetup records placeholder dimensions and engine options
func NewSetup(width, height int, opts ...Option) *Setup {
	return &Setup{width: width, height: height, opts: opts}
}

// Finalize resolves the seed and builds the engine. A failed seed never yields a
// partially initialized engine.
func (s *Setup) Finalize(seed Seed) (*LifeEngine, error) {
	if seed == nil {
		return nil, &ConfigError{Field: "seed", Msg: "no seed source"}
	}

	grid, err := seed.SeedGrid(s.width, s.height)
	if err != nil {
		return nil, errors.Wrapf(err, "[Finalize] failed to seed %dx%d grid", s.width, s.height)
	}

	e, err := NewSeededEngine(grid, s.opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[Finalize] failed to build engine")
	}
	return e, nil
}
