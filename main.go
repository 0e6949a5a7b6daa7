package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("go-life: %v", err)
	}
}

func run() error {
	flags := parseFlags()

	config, err := loadConfig(flags.configPath, defaultConfigFile)
	if err != nil {
		return err
	}
	flags.apply(&config)
	if err = config.Validate(); err != nil {
		return err
	}

	// Construction errors end the run before the loop starts
	engine, err := buildEngine(config)
	if err != nil {
		return err
	}
	displayGameInfo(config, engine)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runGame(ctx, config, engine)
}
