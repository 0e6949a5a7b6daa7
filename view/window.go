//go:build ebiten

package view

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const windowTitle = "Conway's Game Of Life"

// Window adapts a LifeEngine to the ebiten.Game interface. Each frame draws the current
// generation; the engine advances once the configured delay has elapsed.
type Window struct {
	ctx    context.Context
	engine *model.LifeEngine
	opts   WindowOptions

	lastAdvance time.Time
}

// Update handles input and advances the engine on schedule
func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if w.opts.MaxGenerations > 0 && w.engine.Generation() >= w.opts.MaxGenerations {
		return ebiten.Termination
	}

	if w.lastAdvance.IsZero() {
		// first frame shows the seed before anything advances
		w.lastAdvance = time.Now()
		return nil
	}
	if time.Since(w.lastAdvance) >= w.opts.Delay {
		w.engine.Advance()
		w.lastAdvance = time.Now()
	}
	return nil
}

// Draw fills one rectangle per live cell over the background
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(w.opts.Background)

	size := float32(w.opts.CellSize)
	view := w.engine.Current()
	for row := range view.GetHeight() {
		for col := range view.GetWidth() {
			if !view.Get(row, col) {
				continue
			}
			vector.DrawFilledRect(screen, float32(col)*size, float32(row)*size, size, size, w.opts.Policy.CellColor(), false)
		}
	}
}

// Layout returns the logical screen size
func (w *Window) Layout(_, _ int) (int, int) {
	return w.engine.GetWidth() * w.opts.CellSize, w.engine.GetHeight() * w.opts.CellSize
}

// RunWindow opens a window and runs the simulation until it is closed or ctx is done
func RunWindow(ctx context.Context, engine *model.LifeEngine, opts WindowOptions) error {
	opts = opts.withDefaults()
	w := &Window{ctx: ctx, engine: engine, opts: opts}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(w.Layout(0, 0))

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[RunWindow] window closed with error")
	}
	return nil
}
