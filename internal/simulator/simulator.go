// Package simulator batch-plays full games against the random opponent
// without a UI, for balance checks and soak testing of the game core.
package simulator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/randutil"
)

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Workers  int
	Seed     int64
	Settings game.Settings
	Logger   *log.Logger
}

// Simulator runs full-game simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Simulator{config: config}
}

// Run plays the configured number of games across a pool of workers and
// returns aggregate statistics. Each game gets an independent seed
// derived from the base seed so results are reproducible.
func (s *Simulator) Run(ctx context.Context) (*Statistics, error) {
	if err := s.config.Settings.Validate(); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan GameResult, s.config.Workers)

	games := s.config.Games
	workers := s.config.Workers
	perWorker := games / workers
	remainder := games % workers

	next := 0
	for w := 0; w < workers; w++ {
		count := perWorker
		if w < remainder {
			count++
		}
		first := next
		next += count

		g.Go(func() error {
			for i := first; i < first+count; i++ {
				result, err := s.playGame(s.config.Seed + int64(i))
				if err != nil {
					return fmt.Errorf("game %d: %w", i, err)
				}
				select {
				case results <- result:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		defer close(results)
		_ = g.Wait()
	}()

	stats := &Statistics{}
	for result := range results {
		stats.Add(result)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// playGame runs one full game to completion, submitting uniformly
// random player choices. Rounds resolve on submission, so the one
// second countdown never expires here.
func (s *Simulator) playGame(seed int64) (GameResult, error) {
	ctrlRNG := randutil.New(seed)
	playerRNG := randutil.New(^seed)

	c := game.NewControllerWithClock(s.config.Logger, quartz.NewReal(), ctrlRNG)
	tally := &roundTally{}
	c.Events().Subscribe(tally)

	if err := c.StartGame(s.config.Settings); err != nil {
		return GameResult{}, err
	}

	for !c.GameOver() {
		c.SubmitChoice(game.Choice(playerRNG.IntN(game.NumChoices)))
		c.Advance()
	}

	snap := c.Snapshot()
	return GameResult{
		Seed:          seed,
		Won:           snap.PlayerScore > snap.OpponentScore,
		Rounds:        tally.rounds,
		RoundWins:     tally.wins,
		RoundLosses:   tally.losses,
		RoundTies:     tally.ties,
		PlayerScore:   snap.PlayerScore,
		OpponentScore: snap.OpponentScore,
		TotalPoints:   snap.TotalPoints,
	}, nil
}

// roundTally counts round outcomes as they are published.
type roundTally struct {
	rounds, wins, losses, ties int
}

func (t *roundTally) OnEvent(ev game.GameEvent) {
	e, ok := ev.(game.RoundResolvedEvent)
	if !ok {
		return
	}
	t.rounds++
	switch e.Outcome {
	case game.PlayerWins:
		t.wins++
	case game.OpponentWins:
		t.losses++
	case game.Tie:
		t.ties++
	}
}
