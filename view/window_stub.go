//go:build !ebiten

package view

import (
	"context"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// ErrNoWindow is returned by RunWindow in builds without the ebiten tag
var ErrNoWindow = errors.New("the window renderer requires the ebiten build tag: rebuild with `-tags ebiten`")

// RunWindow reports that this build has no window support
func RunWindow(_ context.Context, _ *model.LifeEngine, _ WindowOptions) error {
	return ErrNoWindow
}
