package model

import (
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
)

// LifeEngine owns the current and next generation buffers of a toroidal Game of Life.
// Dimensions are fixed at construction; current is only replaced once a whole
// generation has been computed into next.
type LifeEngine struct {
	current *Grid
	next    *Grid

	workers    int
	generation int
}

// Option tunes a LifeEngine at construction
type Option func(*LifeEngine)

// WithWorkers splits each generation pass into n row bands computed concurrently.
// Values below 2 keep the pass sequential.
func WithWorkers(n int) Option {
	return func(e *LifeEngine) {
		e.workers = n
	}
}

// NewRandomEngine allocates a width x height engine seeded at the given density
func NewRandomEngine(width, height, percentAlive int, rng RandSource, opts ...Option) (*LifeEngine, error) {
	return NewSetup(width, height, opts...).Finalize(RandomSeed{PercentAlive: percentAlive, Rand: rng})
}

// NewSeededEngine adopts the dimensions and contents of a decoded grid.
// The grid is copied, so the caller keeps ownership of its argument.
func NewSeededEngine(grid *Grid, opts ...Option) (*LifeEngine, error) {
	if grid == nil {
		return nil, &ConfigError{Field: "grid", Msg: "nil seed grid"}
	}
	if err := validateDimensions(grid.width, grid.height); err != nil {
		return nil, err
	}
	current, err := GridFromRows(grid.cells)
	if err != nil {
		return nil, err
	}

	e := &LifeEngine{
		current: current,
		next:    NewGrid(current.width, current.height),
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// GetWidth returns the width of the board
func (e *LifeEngine) GetWidth() int {
	return e.current.width
}

// GetHeight returns the height of the board
func (e *LifeEngine) GetHeight() int {
	return e.current.height
}

// Generation returns the number of completed Advance calls
func (e *LifeEngine) Generation() int {
	return e.generation
}

// LivingCells counts the live cells of the current generation
func (e *LifeEngine) LivingCells() int {
	return e.current.CountLivingCells()
}

// Current exposes the authoritative generation for rendering.
// It must not be read concurrently with Advance.
func (e *LifeEngine) Current() GridView {
	return e.current
}

// Snapshot returns a copy of the current generation
func (e *LifeEngine) Snapshot() *Grid {
	return e.current.Clone()
}

// CellAlive reports whether the cell is alive in the current generation
func (e *LifeEngine) CellAlive(row, col int) bool {
	return e.current.cells[row][col]
}

// CellDead reports whether the cell is dead in the current generation
func (e *LifeEngine) CellDead(row, col int) bool {
	return !e.current.cells[row][col]
}

// LiveNeighbors counts the live cells among the 8 neighbors of (row, col), wrapping
// around every edge: row -1 is the last row and column width is column 0.
func (e *LifeEngine) LiveNeighbors(row, col int) int {
	var (
		count  = 0
		height = e.current.height
		width  = e.current.width
	)
	for dr := -1; dr <= 1; dr++ {
		r := wrap(row+dr, height)
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if e.current.cells[r][wrap(col+dc, width)] {
				count++
			}
		}
	}
	return count
}

// Advance computes the next generation from current and then commits it
func (e *LifeEngine) Advance() {
	height := e.current.height
	if e.workers < 2 || height < 2 {
		e.advanceRows(0, height)
	} else {
		e.advanceParallel()
	}

	e.current, e.next = e.next, e.current
	e.generation++
}

// advanceParallel calculates next in row bands; bands only write their own rows of next
func (e *LifeEngine) advanceParallel() {
	var (
		eg            errgroup.Group
		height        = e.current.height
		numWorkers    = min(e.workers, height)
		rowsPerWorker = (height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
		)
		if startRow >= height {
			break
		}

		eg.Go(func() error {
			e.advanceRows(startRow, endRow)
			return nil
		})
	}

	// bands never fail; Wait is the barrier before the commit
	_ = eg.Wait()
}

func (e *LifeEngine) advanceRows(startRow, endRow int) {
	for row := startRow; row < endRow; row++ {
		for col := range e.current.width {
			e.next.cells[row][col] = rules.NextState(e.current.cells[row][col], e.LiveNeighbors(row, col))
		}
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
