package game

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/roshambo/internal/gameid"
	"github.com/lox/roshambo/internal/randutil"
)

// RandSource provides uniform random ints for opponent draws.
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Controller owns the state of a single game session and orchestrates
// the round lifecycle: start, resolve, advance, end. One instance per
// session; there is no package-level state.
//
// All operations are serialized on an internal mutex, so user input and
// timer callbacks never interleave. Events are published synchronously
// while that mutex is held; subscribers must not call back into the
// controller from OnEvent.
type Controller struct {
	logger *log.Logger
	bus    EventBus
	clock  quartz.Clock
	rand   RandSource
	timer  *RoundTimer

	mu       sync.Mutex
	id       string
	phase    phase
	gen      uint64
	settings Settings
	game     gameState
	round    roundState
}

// NewController creates a controller using the real clock and a
// time-seeded RNG.
func NewController(logger *log.Logger) *Controller {
	return NewControllerWithClock(logger, quartz.NewReal(), randutil.New(time.Now().UnixNano()))
}

// NewControllerWithClock creates a controller with an injected clock
// and random source for deterministic tests.
func NewControllerWithClock(logger *log.Logger, clock quartz.Clock, src RandSource) *Controller {
	return &Controller{
		logger: logger.WithPrefix("game"),
		bus:    NewEventBus(),
		clock:  clock,
		rand:   src,
		timer:  NewRoundTimer(clock),
		phase:  phaseIdle,
	}
}

// Events returns the event bus for subscribing to game events.
func (c *Controller) Events() EventBus {
	return c.bus
}

// StartGame resets all counters, captures the settings and starts the
// first round. Returns ErrInvalidSettings if any numeric setting is
// non-positive, in which case no game starts.
func (c *Controller) StartGame(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings = settings
	c.game = gameState{}
	c.id = gameid.Generate()
	c.phase = phaseIdle
	c.logger.Info("game started",
		"game", c.id,
		"timer_seconds", settings.TimerSeconds,
		"winning_score", settings.WinningScore)

	c.startRoundLocked()
	return nil
}

// SubmitChoice records the player's throw for the active round and
// resolves it immediately. Late or duplicate submissions are silently
// ignored so repeated UI events cannot corrupt state.
func (c *Controller) SubmitChoice(choice Choice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != phaseRoundActive || c.round.playerChoice != nil {
		c.logger.Debug("ignoring choice submission", "phase", c.phase, "choice", choice)
		return
	}

	c.round.playerChoice = &choice
	c.resolveRoundLocked()
}

// Advance moves past a resolved round: it ends the game if either
// score has reached the winning threshold, otherwise it starts the next
// round. Calls in any other phase are no-ops.
func (c *Controller) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != phaseRoundResolved {
		c.logger.Debug("ignoring advance", "phase", c.phase)
		return
	}

	if c.game.playerScore >= c.settings.WinningScore || c.game.opponentScore >= c.settings.WinningScore {
		c.phase = phaseGameOver
		c.logger.Info("game over",
			"game", c.id,
			"player_score", c.game.playerScore,
			"opponent_score", c.game.opponentScore,
			"total_points", c.game.totalPoints)
		c.bus.Publish(NewGameOverEvent(c.game.playerScore, c.game.opponentScore, c.game.totalPoints))
		return
	}

	c.startRoundLocked()
}

// Snapshot returns a copy of the observable game state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		PlayerScore:   c.game.playerScore,
		OpponentScore: c.game.opponentScore,
		TotalPoints:   c.game.totalPoints,
		RoundActive:   c.phase == phaseRoundActive,
		Remaining:     c.round.remaining,
	}
}

// GameOver reports whether the session has ended.
func (c *Controller) GameOver() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == phaseGameOver
}

// Settings returns the settings captured at StartGame.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// startRoundLocked begins a new round. Caller must hold c.mu.
func (c *Controller) startRoundLocked() {
	if c.phase == phaseRoundActive {
		return
	}

	// Defensive: no prior countdown may outlive the round it belonged to.
	c.timer.Stop()

	// Each countdown carries the generation it was started with so a
	// callback that was already in flight when the round ended cannot
	// be delivered into a later round.
	c.gen++
	gen := c.gen

	c.round = roundState{remaining: c.settings.TimerSeconds}
	c.phase = phaseRoundActive
	c.timer.Start(c.settings.TimerSeconds,
		func(remaining int) { c.handleTick(gen, remaining) },
		func() { c.handleExpire(gen) })

	c.logger.Debug("round started", "game", c.id, "remaining", c.round.remaining)
	c.bus.Publish(NewRoundStartedEvent(c.round.remaining))
}

// resolveRoundLocked resolves the active round. Caller must hold c.mu.
// Triggered by SubmitChoice or by timer expiry, whichever comes first;
// the timer is stopped before any state is read so the other path
// cannot also resolve.
func (c *Controller) resolveRoundLocked() {
	c.timer.Stop()

	if c.round.playerChoice == nil {
		// Timer expired with no submission: draw a stand-in for the
		// player's missed input.
		stand := c.draw()
		c.round.playerChoice = &stand
	}
	opponent := c.draw()
	c.round.opponentChoice = &opponent

	player := *c.round.playerChoice
	outcome := Resolve(player, opponent)
	switch outcome {
	case PlayerWins:
		c.game.playerScore++
	case OpponentWins:
		c.game.opponentScore++
	}
	c.game.totalPoints += Points(outcome)
	c.phase = phaseRoundResolved

	c.logger.Info("round resolved",
		"game", c.id,
		"player", player,
		"opponent", opponent,
		"outcome", outcome,
		"player_score", c.game.playerScore,
		"opponent_score", c.game.opponentScore,
		"total_points", c.game.totalPoints)

	c.bus.Publish(NewRoundResolvedEvent(player, opponent, outcome,
		c.game.playerScore, c.game.opponentScore, c.game.totalPoints))
}

// handleTick runs on the timer goroutine once per second. Ticks from a
// countdown that is no longer current are dropped.
func (c *Controller) handleTick(gen uint64, remaining int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.phase != phaseRoundActive {
		return
	}
	c.round.remaining = remaining
	c.bus.Publish(NewTickEvent(remaining))
}

// handleExpire runs on the timer goroutine when the countdown hits zero.
func (c *Controller) handleExpire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.phase != phaseRoundActive {
		return
	}
	c.logger.Debug("round timer expired", "game", c.id)
	c.resolveRoundLocked()
}

// draw returns a uniformly random choice.
func (c *Controller) draw() Choice {
	return Choice(c.rand.IntN(NumChoices))
}
