package model

import (
	"context"
	"slices"
	"time"

	"github.com/pkg/errors"
)

// StopReason explains why Run returned
type StopReason string

const (
	StopCancelled      StopReason = "cancelled"
	StopMaxGenerations StopReason = "max generations reached"
	StopStable         StopReason = "stable"
)

// stableHistory is how many recent generations a new one is compared against, so
// still lifes and oscillators of period 2 and 3 are caught
const stableHistory = 3

// GenerationInfo is passed to RunOptions.OnGeneration after every advance
type GenerationInfo struct {
	Generation  int
	LivingCells int
	Duration    time.Duration
}

// RunOptions controls the render/advance loop
type RunOptions struct {
	// Delay is slept between generations; zero runs flat out.
	Delay time.Duration
	// MaxGenerations bounds the run when positive.
	MaxGenerations int
	// StopWhenStable ends the run once a generation repeats one of the last few.
	StopWhenStable bool
	OnGeneration   func(GenerationInfo)
}

// RunResult summarizes a finished run
type RunResult struct {
	Generations int
	Reason      StopReason
}

// Run renders the current generation, advances, then waits for the configured delay,
// until ctx is done or one of the stop conditions in opts is met. Cancellation is
// checked at every generation boundary and while waiting.
func Run(ctx context.Context, e *LifeEngine, r Renderer, opts RunOptions) (RunResult, error) {
	if e == nil {
		return RunResult{}, &ConfigError{Field: "engine", Msg: "nil engine"}
	}
	if r == nil {
		return RunResult{}, &ConfigError{Field: "renderer", Msg: "nil renderer"}
	}

	var (
		result  RunResult
		history []string
	)
	if opts.StopWhenStable {
		history = append(history, e.current.GetGridHash())
	}

	for {
		if ctx.Err() != nil {
			result.Reason = StopCancelled
			return result, nil
		}

		if err := r.Render(e.Current(), e.Generation()); err != nil {
			return result, errors.Wrapf(err, "[Run] renderer failed at generation: %+v", e.Generation())
		}

		if opts.MaxGenerations > 0 && result.Generations >= opts.MaxGenerations {
			result.Reason = StopMaxGenerations
			return result, nil
		}

		start := time.Now()
		e.Advance()
		result.Generations++

		if opts.OnGeneration != nil {
			opts.OnGeneration(GenerationInfo{
				Generation:  e.Generation(),
				LivingCells: e.LivingCells(),
				Duration:    time.Since(start),
			})
		}

		if opts.StopWhenStable {
			hash := e.current.GetGridHash()
			if slices.Contains(history, hash) {
				result.Reason = StopStable
				return result, nil
			}
			history = append(history, hash)
			if len(history) > stableHistory {
				history = history[1:]
			}
		}

		if !sleep(ctx, opts.Delay) {
			result.Reason = StopCancelled
			return result, nil
		}
	}
}

// sleep waits for d and reports false if ctx finished first
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
