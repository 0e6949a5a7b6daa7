package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/codec"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
	"github.com/sheikhrachel/go-life/view"
)

const defaultConfigFile = "config.json"

// sentinels for numeric flags left unset; any explicit value, even a negative one,
// reaches the config and its validation
const (
	unsetInt   = math.MinInt
	unsetFloat = -math.MaxFloat64
)

// cliFlags holds command line overrides; unset values keep their sentinel
type cliFlags struct {
	configPath     string
	width          int
	height         int
	percentAlive   int
	delaySeconds   float64
	seedFile       string
	randSeed       int64
	color          string
	trippy         bool
	workers        int
	maxGenerations int
	renderer       string
	stable         bool
}

// parseFlags reads the command line
func parseFlags() *cliFlags {
	f := newCLIFlags()

	flaggy.SetName("go-life")
	flaggy.SetDescription("Conway's Game of Life on a toroidal grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true

	flaggy.String(&f.configPath, "c", "config", "JSON configuration file (default "+defaultConfigFile+" when present)")
	flaggy.Int(&f.width, "x", "width", "Width of the board in cells")
	flaggy.Int(&f.height, "y", "height", "Height of the board in cells")
	flaggy.Int(&f.percentAlive, "p", "percent", "Starting percent of life [0-100]")
	flaggy.Float64(&f.delaySeconds, "d", "delay", "Delay between generations in seconds")
	flaggy.String(&f.seedFile, "f", "file", "Load the starting board from a BOARD GRID file")
	flaggy.Int64(&f.randSeed, "s", "seed", "Random seed (0 picks one from the clock)")
	flaggy.String(&f.color, "k", "color", "Color of life as #RRGGBB")
	flaggy.Bool(&f.trippy, "t", "trippy", "Random color per cell on every frame")
	flaggy.Int(&f.workers, "w", "workers", "Row bands computed concurrently per generation")
	flaggy.Int(&f.maxGenerations, "g", "generations", "Stop after this many generations (0 runs until interrupted)")
	flaggy.String(&f.renderer, "r", "renderer", "Renderer to use [terminal|console|window|none]")
	flaggy.Bool(&f.stable, "", "stable", "Stop once the board stops changing")

	flaggy.Parse()
	return f
}

func newCLIFlags() *cliFlags {
	return &cliFlags{
		width:          unsetInt,
		height:         unsetInt,
		percentAlive:   unsetInt,
		delaySeconds:   unsetFloat,
		workers:        unsetInt,
		maxGenerations: unsetInt,
	}
}

// apply overrides config values with the flags that were set
func (f *cliFlags) apply(config *utils.Config) {
	if f.width != unsetInt {
		config.Width = f.width
	}
	if f.height != unsetInt {
		config.Height = f.height
	}
	if f.percentAlive != unsetInt {
		config.PercentAlive = f.percentAlive
	}
	if f.delaySeconds != unsetFloat {
		config.DelaySeconds = f.delaySeconds
	}
	if f.seedFile != "" {
		config.SeedFile = f.seedFile
	}
	if f.randSeed != 0 {
		config.RandSeed = f.randSeed
	}
	if f.color != "" {
		config.Color = f.color
	}
	if f.trippy {
		config.Trippy = true
	}
	if f.workers != unsetInt {
		config.Workers = f.workers
	}
	if f.maxGenerations != unsetInt {
		config.MaxGenerations = f.maxGenerations
	}
	if f.renderer != "" {
		config.Renderer = f.renderer
	}
	if f.stable {
		config.StopWhenStable = true
	}
}

// loadConfig reads path, or fallback when no path was given. Only a missing fallback
// file means defaults; one that exists must parse.
func loadConfig(path, fallback string) (utils.Config, error) {
	if path != "" {
		return utils.LoadConfig(path)
	}

	config, err := utils.LoadConfig(fallback)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			fmt.Printf("Using default configuration (%s not found)\n", fallback)
			return utils.DefaultConfig(), nil
		}
		return config, err
	}
	return config, nil
}

// buildEngine finalizes the engine from the configured seed source
func buildEngine(config utils.Config) (*model.LifeEngine, error) {
	setup := model.NewSetup(config.Width, config.Height, model.WithWorkers(config.Workers))

	var seed model.Seed
	if config.SeedFile != "" {
		seed = codec.FileSeed{Path: config.SeedFile}
	} else {
		seed = model.RandomSeed{PercentAlive: config.PercentAlive, Rand: model.NewRand(config.RandSeed)}
	}

	engine, err := setup.Finalize(seed)
	if err != nil {
		return nil, errors.Wrap(err, "[buildEngine] failed to create board")
	}
	return engine, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, engine *model.LifeEngine) {
	source := fmt.Sprintf("random (%d%% alive)", config.PercentAlive)
	if config.SeedFile != "" {
		source = config.SeedFile
	}
	fmt.Printf("%s: %dx%d | %s: %s | %s: %d\n",
		aurora.Green("Grid"), engine.GetWidth(), engine.GetHeight(),
		aurora.Green("Seed"), source,
		aurora.Green("Initial living cells"), engine.LivingCells())
	fmt.Printf("%s: %v | %s: %s\n",
		aurora.Green("Delay"), config.Delay(),
		aurora.Green("Renderer"), config.Renderer)
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// runGame drives the configured renderer until the run stops
func runGame(ctx context.Context, config utils.Config, engine *model.LifeEngine) error {
	policy, err := config.ColorPolicy()
	if err != nil {
		return err
	}

	switch config.Renderer {
	case utils.RendererConsole:
		console, err := view.NewConsole(engine, policy, config.Delay(), config.MaxGenerations)
		if err != nil {
			return err
		}
		return console.Run(ctx)
	case utils.RendererWindow:
		return view.RunWindow(ctx, engine, view.WindowOptions{
			Policy:         policy,
			CellSize:       config.CellSize,
			Delay:          config.Delay(),
			MaxGenerations: config.MaxGenerations,
		})
	}

	stats := utils.NewStats(engine.GetWidth() * engine.GetHeight())
	stats.Update(engine.Generation(), engine.LivingCells(), 0)

	var renderer model.Renderer = model.RendererFunc(func(model.GridView, int) error { return nil })
	if config.Renderer == utils.RendererTerminal {
		terminal := model.NewTerminalRenderer(os.Stdout, policy, true, config.ClearScreen)
		renderer = model.RendererFunc(func(grid model.GridView, generation int) error {
			if err := terminal.Render(grid, generation); err != nil {
				return err
			}
			displayGameStatus(terminal, stats)
			return nil
		})
	}

	result, err := model.Run(ctx, engine, renderer, model.RunOptions{
		Delay:          config.Delay(),
		MaxGenerations: config.MaxGenerations,
		StopWhenStable: config.StopWhenStable,
		OnGeneration: func(info model.GenerationInfo) {
			stats.Update(info.Generation, info.LivingCells, info.Duration)
		},
	})
	if err != nil {
		return err
	}

	displaySummary(result, stats)
	return nil
}

// displayGameStatus shows the current game status below the board
func displayGameStatus(terminal *model.TerminalRenderer, stats *utils.Stats) {
	fmt.Printf("%s: %d | %s: %d | %s: %.1f%%\n",
		terminal.Label("Gen"), stats.TotalGenerations,
		terminal.Label("Living"), stats.LivingCells,
		terminal.Label("Density"), stats.Density)
	fmt.Printf("%s: %.1f gen/sec | %s: %.1f | %s: %.1fs\n",
		terminal.Label("Performance"), stats.GenerationsPerSecond,
		terminal.Label("Avg Pop"), stats.AveragePopulation,
		terminal.Label("Runtime"), stats.Runtime().Seconds())
}

// displaySummary prints why the run stopped
func displaySummary(result model.RunResult, stats *utils.Stats) {
	fmt.Printf("\n%s after %d generations (%s) in %v\n",
		aurora.Red("Stopped"), result.Generations, result.Reason, stats.Runtime().Round(time.Millisecond))
	fmt.Printf("Average population: %.1f\n", stats.AveragePopulation)
}
