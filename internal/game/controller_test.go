package game

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always draws the same choice, standing in for the
// uniform random opponent.
type fixedSource struct {
	choice Choice
}

func (f fixedSource) IntN(n int) int { return int(f.choice) % n }

// recorder captures published events for assertions. Events arrive on
// the submitting goroutine or the timer goroutine; the mutex keeps the
// race detector happy.
type recorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *recorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}

func (r *recorder) lastResolved() (RoundResolvedEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if e, ok := r.events[i].(RoundResolvedEvent); ok {
			return e, true
		}
	}
	return RoundResolvedEvent{}, false
}

func (r *recorder) count(et EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.EventType() == et {
			n++
		}
	}
	return n
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestController(t *testing.T, opponent Choice) (*Controller, *quartz.Mock, *recorder) {
	t.Helper()
	clock := quartz.NewMock(t)
	c := NewControllerWithClock(testLogger(), clock, fixedSource{choice: opponent})
	rec := &recorder{}
	c.Events().Subscribe(rec)
	return c, clock, rec
}

func TestStartGameRejectsInvalidSettings(t *testing.T) {
	c, _, rec := newTestController(t, Scissors)

	err := c.StartGame(Settings{TimerSeconds: 0, WinningScore: 5})
	require.ErrorIs(t, err, ErrInvalidSettings)

	err = c.StartGame(Settings{TimerSeconds: 10, WinningScore: -1})
	require.ErrorIs(t, err, ErrInvalidSettings)

	assert.Empty(t, rec.types(), "no game starts on invalid settings")
	assert.False(t, c.Snapshot().RoundActive)
}

func TestRockBeatsScissors(t *testing.T) {
	c, _, rec := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	c.SubmitChoice(Rock)

	resolved, ok := rec.lastResolved()
	require.True(t, ok)
	assert.Equal(t, Rock, resolved.PlayerChoice)
	assert.Equal(t, Scissors, resolved.OpponentChoice)
	assert.Equal(t, PlayerWins, resolved.Outcome)
	assert.Equal(t, 1, resolved.PlayerScore)
	assert.Equal(t, 0, resolved.OpponentScore)
	assert.Equal(t, 500, resolved.TotalPoints)

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.PlayerScore)
	assert.Equal(t, 500, snap.TotalPoints)
	assert.False(t, snap.RoundActive, "roundActive clears at resolution")
}

func TestTieAwardsTiePoints(t *testing.T) {
	c, _, rec := newTestController(t, Paper)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	c.SubmitChoice(Paper)

	resolved, ok := rec.lastResolved()
	require.True(t, ok)
	assert.Equal(t, Tie, resolved.Outcome)
	assert.Equal(t, 0, resolved.PlayerScore)
	assert.Equal(t, 0, resolved.OpponentScore)
	assert.Equal(t, 100, resolved.TotalPoints)
}

func TestSubmitChoiceIsIdempotent(t *testing.T) {
	c, _, rec := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	c.SubmitChoice(Rock)
	c.SubmitChoice(Paper) // round already resolved, silently ignored

	assert.Equal(t, 1, rec.count(EventTypeRoundResolved))
	snap := c.Snapshot()
	assert.Equal(t, 1, snap.PlayerScore)
	assert.Equal(t, 500, snap.TotalPoints)
}

func TestSubmitChoiceWithNoActiveRoundIsNoOp(t *testing.T) {
	c, _, rec := newTestController(t, Scissors)

	c.SubmitChoice(Rock) // before any game
	assert.Empty(t, rec.types())
}

func TestTicksCountDown(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	for i := 0; i < 3; i++ {
		clock.Advance(time.Second).MustWait(ctx)
	}

	assert.Equal(t, []EventType{
		EventTypeRoundStarted,
		EventTypeTick,
		EventTypeTick,
		EventTypeTick,
	}, rec.types())
	assert.Equal(t, 7, c.Snapshot().Remaining)
	assert.True(t, c.Snapshot().RoundActive)
}

func TestTimerExpiryAutoResolves(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second).MustWait(ctx)
	}

	require.Equal(t, 1, rec.count(EventTypeRoundResolved), "expiry resolves exactly once")
	assert.Equal(t, 10, rec.count(EventTypeTick))
	assert.False(t, c.Snapshot().RoundActive)

	resolved, ok := rec.lastResolved()
	require.True(t, ok)
	// Player input was missed, a random stand-in was drawn; the fixed
	// source makes both draws scissors.
	assert.Equal(t, Scissors, resolved.PlayerChoice)
	assert.Equal(t, Scissors, resolved.OpponentChoice)
	assert.Equal(t, Tie, resolved.Outcome)

	// Time continuing to pass changes nothing
	clock.Advance(5 * time.Second).MustWait(ctx)
	assert.Equal(t, 1, rec.count(EventTypeRoundResolved))
}

func TestSubmissionStopsTimer(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 3, WinningScore: 5}))
	c.SubmitChoice(Rock)

	clock.Advance(10 * time.Second).MustWait(ctx)
	assert.Equal(t, 0, rec.count(EventTypeTick), "no ticks after submission stopped the timer")
	assert.Equal(t, 1, rec.count(EventTypeRoundResolved))
}

func TestStaleTickFromPreviousRoundIsDropped(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))

	// Hold the controller lock so round one's tick decrements the
	// countdown but blocks before delivery, then resolve round one and
	// start round two while it is still in flight. This is the
	// interleaving a concurrent SubmitChoice/Advance pair produces.
	c.mu.Lock()
	done := make(chan struct{})
	go func() {
		defer close(done)
		clock.Advance(time.Second).MustWait(ctx)
	}()
	require.Eventually(t, func() bool { return c.timer.Remaining() == 9 },
		time.Second, time.Millisecond, "tick decremented and is waiting on the controller")

	choice := Rock
	c.round.playerChoice = &choice
	c.resolveRoundLocked()
	c.startRoundLocked()
	c.mu.Unlock()
	<-done

	assert.Equal(t, []EventType{
		EventTypeRoundStarted,
		EventTypeRoundResolved,
		EventTypeRoundStarted,
	}, rec.types(), "round one's tick never reaches round two")
	assert.Equal(t, 10, c.Snapshot().Remaining, "round two countdown is untouched")
}

func TestStaleExpiryFromPreviousRoundIsDropped(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 1, WinningScore: 5}))

	// The final tick carries expiry with it; block it in flight and move
	// the game on to the next round before it is delivered.
	c.mu.Lock()
	done := make(chan struct{})
	go func() {
		defer close(done)
		clock.Advance(time.Second).MustWait(ctx)
	}()
	require.Eventually(t, func() bool { return c.timer.Remaining() == 0 },
		time.Second, time.Millisecond, "expiry decremented and is waiting on the controller")

	choice := Rock
	c.round.playerChoice = &choice
	c.resolveRoundLocked()
	c.startRoundLocked()
	c.mu.Unlock()
	<-done

	require.Equal(t, 1, rec.count(EventTypeRoundResolved), "round one's expiry cannot auto-resolve round two")
	assert.Equal(t, 0, rec.count(EventTypeTick))
	snap := c.Snapshot()
	assert.True(t, snap.RoundActive)
	assert.Equal(t, 1, snap.Remaining)
}

func TestAdvanceStartsNextRound(t *testing.T) {
	c, _, rec := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	c.SubmitChoice(Rock)
	c.Advance()

	assert.Equal(t, []EventType{
		EventTypeRoundStarted,
		EventTypeRoundResolved,
		EventTypeRoundStarted,
	}, rec.types(), "round resolved always precedes the next round started")
	assert.True(t, c.Snapshot().RoundActive)
}

func TestAdvanceWithoutResolvedRoundIsNoOp(t *testing.T) {
	c, _, rec := newTestController(t, Scissors)

	c.Advance() // idle
	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	c.Advance() // round active
	assert.Equal(t, 1, rec.count(EventTypeRoundStarted))
}

func TestGameEndsAtWinningScore(t *testing.T) {
	c, _, rec := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	for i := 0; i < 5; i++ {
		c.SubmitChoice(Rock) // always beats scissors
		c.Advance()
	}

	assert.Equal(t, 1, rec.count(EventTypeGameOver))
	assert.Equal(t, 5, rec.count(EventTypeRoundStarted), "no round starts after game over")
	assert.True(t, c.GameOver())

	// Further input is ignored until a new game starts
	c.SubmitChoice(Rock)
	c.Advance()
	assert.Equal(t, 1, rec.count(EventTypeGameOver))

	snap := c.Snapshot()
	assert.Equal(t, 5, snap.PlayerScore)
	assert.Equal(t, 0, snap.OpponentScore)
	assert.Equal(t, 2500, snap.TotalPoints)
}

func TestStartGameResetsState(t *testing.T) {
	c, _, _ := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 1}))
	c.SubmitChoice(Rock)
	c.Advance()
	require.True(t, c.GameOver())

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	snap := c.Snapshot()
	assert.Equal(t, 0, snap.PlayerScore)
	assert.Equal(t, 0, snap.OpponentScore)
	assert.Equal(t, 0, snap.TotalPoints)
	assert.True(t, snap.RoundActive)
}

func TestStartGameMidRoundReplacesCountdown(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newTestController(t, Scissors)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	c.SubmitChoice(Rock)
	c.Advance()
	clock.Advance(time.Second).MustWait(ctx) // round two down to 9

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 5, WinningScore: 3}))
	snap := c.Snapshot()
	assert.Equal(t, 0, snap.PlayerScore)
	assert.Equal(t, 0, snap.OpponentScore)
	assert.Equal(t, 0, snap.TotalPoints)
	assert.Equal(t, 5, snap.Remaining)
	assert.True(t, snap.RoundActive)

	ticks := rec.count(EventTypeTick)
	clock.Advance(time.Second).MustWait(ctx)
	assert.Equal(t, ticks+1, rec.count(EventTypeTick), "only the new countdown is running")
	assert.Equal(t, 4, c.Snapshot().Remaining)
}

func TestTotalPointsAccumulateAcrossRounds(t *testing.T) {
	c, _, _ := newTestController(t, Paper)

	require.NoError(t, c.StartGame(Settings{TimerSeconds: 10, WinningScore: 5}))
	c.SubmitChoice(Scissors) // win: +500
	c.Advance()
	c.SubmitChoice(Paper) // tie: +100
	c.Advance()
	c.SubmitChoice(Rock) // loss: +0
	c.Advance()

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.PlayerScore)
	assert.Equal(t, 1, snap.OpponentScore)
	assert.Equal(t, 600, snap.TotalPoints)
}
