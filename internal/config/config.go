// Package config loads the roshambo configuration file. Settings
// persistence lives here, outside the game core, which only ever sees
// the resulting game.Settings value.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/roshambo/internal/game"
)

// Config represents the complete configuration file
type Config struct {
	Game     *GameConfig `hcl:"game,block"`
	LogLevel string      `hcl:"log_level,optional"`
	LogFile  string      `hcl:"log_file,optional"`
}

// GameConfig carries the user-tunable game settings. Sound is a
// pointer so an absent attribute can be told apart from `sound = false`.
type GameConfig struct {
	TimerSeconds int   `hcl:"timer_seconds,optional"`
	WinningScore int   `hcl:"winning_score,optional"`
	Sound        *bool `hcl:"sound,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	defaults := game.DefaultSettings()
	sound := defaults.SoundEnabled
	return &Config{
		Game: &GameConfig{
			TimerSeconds: defaults.TimerSeconds,
			WinningScore: defaults.WinningScore,
			Sound:        &sound,
		},
		LogLevel: "info",
		LogFile:  "roshambo.log",
	}
}

// Load reads configuration from an HCL file, falling back to defaults
// when the file does not exist. Missing fields take their default
// values; zero is not a valid setting so it marks absence.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := Default()
	if config.Game == nil {
		config.Game = defaults.Game
	} else {
		if config.Game.TimerSeconds == 0 {
			config.Game.TimerSeconds = defaults.Game.TimerSeconds
		}
		if config.Game.WinningScore == 0 {
			config.Game.WinningScore = defaults.Game.WinningScore
		}
		if config.Game.Sound == nil {
			config.Game.Sound = defaults.Game.Sound
		}
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.LogFile == "" {
		config.LogFile = defaults.LogFile
	}

	return &config, nil
}

// Settings converts the game block into the core settings value.
func (c *Config) Settings() game.Settings {
	return game.Settings{
		SoundEnabled: c.Game.Sound != nil && *c.Game.Sound,
		TimerSeconds: c.Game.TimerSeconds,
		WinningScore: c.Game.WinningScore,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}
