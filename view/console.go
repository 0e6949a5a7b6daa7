package view

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const (
	fieldView  = "field"
	statusView = "status"
	helpView   = "help"

	statusWidth = 30
)

type keyBinding struct {
	key     interface{}
	name    string
	descr   string
	handler func(g *gocui.Gui, v *gocui.View) error
}

// Console is an interactive terminal viewer. The engine is only touched from the gocui
// main loop, so Advance never overlaps a redraw.
type Console struct {
	g      *gocui.Gui
	engine *model.LifeEngine
	frames *model.TerminalRenderer
	stats  *utils.Stats
	keys   []keyBinding

	delay          time.Duration
	maxGenerations int
	paused         bool
}

// NewConsole prepares the gocui layout and key bindings
func NewConsole(engine *model.LifeEngine, policy model.ColorPolicy, delay time.Duration, maxGenerations int) (*Console, error) {
	g, err := gocui.NewGui(gocui.Output256)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsole] failed to start terminal ui")
	}

	c := &Console{
		g:              g,
		engine:         engine,
		frames:         model.NewTerminalRenderer(io.Discard, policy, true, false),
		stats:          utils.NewStats(engine.GetWidth() * engine.GetHeight()),
		delay:          delay,
		maxGenerations: maxGenerations,
	}
	c.stats.Update(engine.Generation(), engine.LivingCells(), 0)
	c.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", c.cmdQuit},
		{'q', "Q", "Exit", c.cmdQuit},
		{gocui.KeySpace, "SPACE", "Pause/Resume", c.cmdPause},
		{'n', "N", "Next step", c.cmdStep},
	}

	g.SetManagerFunc(c.layout)
	for _, kb := range c.keys {
		if err := g.SetKeybinding("", kb.key, gocui.ModNone, kb.handler); err != nil {
			g.Close()
			return nil, errors.Wrapf(err, "[NewConsole] failed to bind key: %+v", kb.name)
		}
	}
	return c, nil
}

// Run blocks until the user quits, ctx is done or the generation limit is reached
func (c *Console) Run(ctx context.Context) error {
	defer c.g.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	// closed before cancel runs, so tick never posts to a finished main loop
	done := make(chan struct{})
	defer close(done)
	go c.tick(ctx, done, c.g.Update)

	if err := c.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Run] terminal ui failed")
	}
	return nil
}

// tick posts one generation per interval to the main loop through update until
// done is closed or ctx ends
func (c *Console) tick(ctx context.Context, done <-chan struct{}, update func(func(*gocui.Gui) error)) {
	interval := c.delay
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			if !closed(done) {
				update(func(*gocui.Gui) error { return gocui.ErrQuit })
			}
			return
		case <-ticker.C:
			if closed(done) {
				return
			}
			update(c.step)
		}
	}
}

func (c *Console) step(g *gocui.Gui) error {
	if c.paused {
		return nil
	}
	if c.maxGenerations > 0 && c.engine.Generation() >= c.maxGenerations {
		return gocui.ErrQuit
	}
	c.advance()
	return c.redraw(g)
}

func closed(done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
		return false
	}
}

func (c *Console) advance() {
	start := time.Now()
	c.engine.Advance()
	c.stats.Update(c.engine.Generation(), c.engine.LivingCells(), time.Since(start))
}

func (c *Console) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView(statusView, 0, 0, statusWidth, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}
	if v, err := g.SetView(fieldView, statusWidth+1, 0, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Life"
	}
	if v, err := g.SetView(helpView, -1, maxY-3, maxX, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		fmt.Fprint(v, "KEYBINDINGS: ")
		for i, kb := range c.keys {
			if i != 0 {
				fmt.Fprint(v, ", ")
			}
			fmt.Fprintf(v, "%s: %s", c.frames.Label(kb.name), kb.descr)
		}
	}
	return c.redraw(g)
}

func (c *Console) redraw(g *gocui.Gui) error {
	field, err := g.View(fieldView)
	if err != nil {
		return err
	}
	field.Clear()
	fmt.Fprint(field, c.frames.Frame(c.engine.Current()))

	status, err := g.View(statusView)
	if err != nil {
		return err
	}
	status.Clear()
	mode := "running"
	if c.paused {
		mode = "paused"
	}
	fmt.Fprintf(status, " %s: %d x %d\n", c.frames.Label("Board"), c.engine.GetWidth(), c.engine.GetHeight())
	fmt.Fprintf(status, " %s: %v\n", c.frames.Label("Delay"), c.delay)
	fmt.Fprintf(status, " %s: %d\n", c.frames.Label("Generation"), c.engine.Generation())
	fmt.Fprintf(status, " %s: %d\n", c.frames.Label("Living"), c.stats.LivingCells)
	fmt.Fprintf(status, " %s: %.1f%%\n", c.frames.Label("Density"), c.stats.Density)
	fmt.Fprintf(status, " %s: %s\n", c.frames.Label("Mode"), mode)
	return nil
}

func (c *Console) cmdQuit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}

func (c *Console) cmdPause(g *gocui.Gui, _ *gocui.View) error {
	c.paused = !c.paused
	return c.redraw(g)
}

func (c *Console) cmdStep(g *gocui.Gui, _ *gocui.View) error {
	c.advance()
	return c.redraw(g)
}
