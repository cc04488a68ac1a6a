package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/roshambo/internal/config"
	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/tui"
)

// PlayCmd runs an interactive game in the terminal
type PlayCmd struct {
	Config string `help:"Path to config file" default:"roshambo.hcl" type:"path"`
	Timer  int    `help:"Round timer in seconds (overrides config)"`
	Score  int    `help:"Winning score (overrides config)"`
	Mute   bool   `help:"Disable the terminal bell"`
}

func (cmd *PlayCmd) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	settings := cfg.Settings()
	if cmd.Timer > 0 {
		settings.TimerSeconds = cmd.Timer
	}
	if cmd.Score > 0 {
		settings.WinningScore = cmd.Score
	}
	if cmd.Mute {
		settings.SoundEnabled = false
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	logWriter, closeLog := openLogFile(cfg.LogFile)
	defer closeLog()
	logger := setupLogger(logWriter, cfg.LogLevel)

	controller := game.NewController(logger)
	model := tui.NewModel(controller, settings, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	controller.Events().Subscribe(tui.NewBridge(program))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
