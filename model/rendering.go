package model

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	macosClearCmd = "clear"
)

// Renderer draws one generation. It is called between Advance calls only.
type Renderer interface {
	Render(view GridView, generation int) error
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(view GridView, generation int) error

// Render implements Renderer
func (f RendererFunc) Render(view GridView, generation int) error {
	return f(view, generation)
}

// TerminalRenderer draws the grid as colored blocks on a terminal
type TerminalRenderer struct {
	out         io.Writer
	au          aurora.Aurora
	policy      ColorPolicy
	clearScreen bool
}

// NewTerminalRenderer writes frames to out. Colors are emitted only when colors is set.
func NewTerminalRenderer(out io.Writer, policy ColorPolicy, colors, clearScreen bool) *TerminalRenderer {
	return &TerminalRenderer{
		out:         out,
		au:          aurora.NewAurora(colors),
		policy:      policy,
		clearScreen: clearScreen,
	}
}

// Render implements Renderer
func (r *TerminalRenderer) Render(view GridView, generation int) error {
	if r.clearScreen {
		r.Clear()
	}
	if _, err := io.WriteString(r.out, r.Frame(view)); err != nil {
		return errors.Wrapf(err, "[Render] failed to write generation: %+v", generation)
	}
	return nil
}

// Frame formats the grid, one terminal line per row
func (r *TerminalRenderer) Frame(view GridView) string {
	var (
		b      strings.Builder
		random = r.policy.IsRandom()
		block  string
	)
	if !random {
		block = r.au.Index(xterm256(r.policy.CellColor()), gridPosBlock).String()
	}
	for row := range view.GetHeight() {
		for col := range view.GetWidth() {
			if view.Get(row, col) {
				if random {
					block = r.au.Index(xterm256(r.policy.CellColor()), gridPosBlock).String()
				}
				b.WriteString(block)
			} else {
				b.WriteString(gridPosEmpty)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Label colors a status label the way the status lines print it
func (r *TerminalRenderer) Label(name string) string {
	return r.au.Green(name).String()
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = r.out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.out, "Error clearing terminal:", err)
	}
}
