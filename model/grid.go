package model

import (
	"crypto/md5"
	"fmt"
)

// GridView is the read-only face of a grid handed to renderers
type GridView interface {
	GetWidth() int
	GetHeight() int
	Get(row, col int) bool
}

// Grid represents a rectangular board of live/dead cells indexed by (row, col)
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

// NewGrid creates a new all-dead grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// GridFromRows builds a grid from a rectangular matrix, copying its contents
func GridFromRows(rows [][]bool) (*Grid, error) {
	if len(rows) == 0 {
		return nil, &ConfigError{Field: "grid", Msg: "no rows"}
	}
	width := len(rows[0])
	if err := validateDimensions(width, len(rows)); err != nil {
		return nil, err
	}
	g := NewGrid(width, len(rows))
	for row, cells := range rows {
		if len(cells) != width {
			return nil, &ConfigError{
				Field: "grid",
				Msg:   fmt.Sprintf("row %d has %d cells, expected %d", row, len(cells), width),
			}
		}
		copy(g.cells[row], cells)
	}
	return g, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Set sets a cell to alive (true) or dead (false); out-of-range positions are ignored
func (g *Grid) Set(row, col int, alive bool) {
	if row >= 0 && row < g.height && col >= 0 && col < g.width {
		g.cells[row][col] = alive
	}
}

// Get returns the state of a cell; out-of-range positions read as dead
func (g *Grid) Get(row, col int) bool {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return false
	}
	return g.cells[row][col]
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	for row := range g.height {
		copy(c.cells[row], g.cells[row])
	}
	return c
}

// Equal reports whether both grids have the same dimensions and contents
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for row := range g.height {
		for col := range g.width {
			if g.cells[row][col] != other.cells[row][col] {
				return false
			}
		}
	}
	return true
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for row := range g.height {
		for col := range g.width {
			if g.cells[row][col] {
				count++
			}
		}
	}
	return
}

// GetGridHash returns an MD5 fingerprint of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	for row := range g.height {
		for col := range g.width {
			if g.cells[row][col] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String renders the grid with '#' for live cells and '.' for dead ones, one row per line
func (g *Grid) String() string {
	b := make([]byte, 0, (g.width+1)*g.height)
	for row := range g.height {
		for col := range g.width {
			if g.cells[row][col] {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}
