package model

import "testing"

// gridOf builds a grid from rows of '#' (alive) and '.' (dead)
func gridOf(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g := NewGrid(len(rows[0]), len(rows))
	for row, line := range rows {
		if len(line) != g.GetWidth() {
			t.Fatalf("pattern row %d has width %d, expected %d", row, len(line), g.GetWidth())
		}
		for col, ch := range line {
			g.Set(row, col, ch == '#')
		}
	}
	return g
}

func engineOf(t *testing.T, rows ...string) *LifeEngine {
	t.Helper()
	e, err := NewSeededEngine(gridOf(t, rows...))
	if err != nil {
		t.Fatalf("NewSeededEngine: %v", err)
	}
	return e
}

func expectGrid(t *testing.T, e *LifeEngine, rows ...string) {
	t.Helper()
	want := gridOf(t, rows...)
	if got := e.Snapshot(); !got.Equal(want) {
		t.Fatalf("after generation %d got\n%s\nexpected\n%s", e.Generation(), got, want)
	}
}

// fixedRand returns the same draw every time
type fixedRand int

func (r fixedRand) IntN(n int) int { return int(r) % n }
