package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/lox/roshambo/internal/config"
	"github.com/lox/roshambo/internal/simulator"
)

// SimulateCmd batch-plays games with a random player strategy
type SimulateCmd struct {
	Config  string `help:"Path to config file" default:"roshambo.hcl" type:"path"`
	Games   int    `help:"Number of games to play" default:"1000"`
	Workers int    `help:"Concurrent workers" default:"0"`
	Seed    int64  `help:"Base RNG seed (0 means time-based)"`
	Debug   bool   `help:"Enable debug logging"`
}

func (cmd *SimulateCmd) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := "warn"
	if cmd.Debug {
		level = "debug"
	}
	logger := setupLogger(os.Stderr, level)

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := cmd.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	settings := cfg.Settings()
	settings.SoundEnabled = false

	sim := simulator.New(simulator.Config{
		Games:    cmd.Games,
		Workers:  workers,
		Seed:     seed,
		Settings: settings,
		Logger:   logger,
	})

	start := time.Now()
	stats, err := sim.Run(context.Background())
	if err != nil {
		return err
	}
	if err := stats.Validate(); err != nil {
		return err
	}

	fmt.Printf("Simulated %d games in %s (seed %d)\n\n", stats.Games, time.Since(start).Round(time.Millisecond), seed)
	fmt.Print(stats.Summary())
	return nil
}
