package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/roshambo/internal/game"
)

func testConfig(games, workers int, seed int64) Config {
	return Config{
		Games:   games,
		Workers: workers,
		Seed:    seed,
		Settings: game.Settings{
			TimerSeconds: 10,
			WinningScore: 3,
		},
		Logger: log.New(io.Discard),
	}
}

func TestSimulatorRunsAllGames(t *testing.T) {
	sim := New(testConfig(50, 4, 42))
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, stats.Validate())

	assert.Equal(t, 50, stats.Games)
	assert.Positive(t, stats.Rounds)
	assert.Equal(t, stats.Rounds, stats.RoundWins+stats.RoundLosses+stats.RoundTies)
	assert.Equal(t, stats.TotalPoints, stats.RoundWins*500+stats.RoundTies*100,
		"total points equals the sum of points awarded per round")
}

func TestSimulatorIsReproducible(t *testing.T) {
	first, err := New(testConfig(30, 3, 7)).Run(context.Background())
	require.NoError(t, err)
	second, err := New(testConfig(30, 3, 7)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed produces identical statistics")
}

func TestSimulatorRejectsInvalidSettings(t *testing.T) {
	cfg := testConfig(10, 1, 1)
	cfg.Settings.WinningScore = 0

	_, err := New(cfg).Run(context.Background())
	require.Error(t, err)
}

func TestSimulatorSingleWorker(t *testing.T) {
	// Workers <= 0 falls back to one worker
	sim := New(testConfig(5, 0, 99))
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Games)
}

func TestStatisticsAdd(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Won: true, Rounds: 7, RoundWins: 5, RoundLosses: 1, RoundTies: 1, TotalPoints: 2600})
	stats.Add(GameResult{Won: false, Rounds: 6, RoundWins: 1, RoundLosses: 5, RoundTies: 0, TotalPoints: 500})

	assert.Equal(t, 2, stats.Games)
	assert.Equal(t, 1, stats.GameWins)
	assert.Equal(t, 13, stats.Rounds)
	assert.Equal(t, 3100, stats.TotalPoints)
	assert.Equal(t, 2600, stats.MaxPoints)
	assert.InDelta(t, 0.5, stats.WinRate(), 1e-9)
	assert.InDelta(t, 6.5, stats.RoundsPerGame(), 1e-9)
	require.NoError(t, stats.Validate())
}

func TestStatisticsValidateCatchesMismatch(t *testing.T) {
	stats := &Statistics{Games: 1, Rounds: 5, RoundWins: 1, RoundLosses: 1, RoundTies: 1}
	assert.Error(t, stats.Validate())
}
