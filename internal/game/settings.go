package game

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is returned by StartGame when settings fail validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the per-game configuration. Immutable while a game is
// in progress; captured by the controller at StartGame.
type Settings struct {
	SoundEnabled bool
	TimerSeconds int
	WinningScore int
}

// DefaultSettings returns the settings used when no config file is present.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled: true,
		TimerSeconds: 10,
		WinningScore: 5,
	}
}

// Validate checks that all numeric settings are positive.
func (s Settings) Validate() error {
	if s.TimerSeconds <= 0 {
		return fmt.Errorf("%w: timer duration must be positive, got %d", ErrInvalidSettings, s.TimerSeconds)
	}
	if s.WinningScore <= 0 {
		return fmt.Errorf("%w: winning score must be positive, got %d", ErrInvalidSettings, s.WinningScore)
	}
	return nil
}
