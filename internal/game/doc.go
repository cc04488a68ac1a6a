// Package game implements the core rock-paper-scissors game logic.
//
// The main type is Controller, which owns the scores and settings for a
// single game session and sequences the round lifecycle: a round starts
// with a countdown, ends on either a choice submission or timer expiry,
// and resolves to a win, loss or tie that updates the scores. The
// caller then advances to the next round or, once a score reaches the
// winning threshold, the game ends.
//
// # Basic Usage
//
//	c := game.NewController(logger)
//	c.Events().Subscribe(observer)
//	if err := c.StartGame(game.DefaultSettings()); err != nil {
//	    return err
//	}
//	c.SubmitChoice(game.Rock)
//	c.Advance()
//
// # Deterministic Testing
//
// The countdown runs on an injected quartz clock and opponent throws
// come from an injected RandSource, so tests can control both time and
// randomness:
//
//	clock := quartz.NewMock(t)
//	c := game.NewControllerWithClock(logger, clock, fixedSource)
//	clock.Advance(time.Second).MustWait(ctx)
//
// Observers receive events through the EventBus: RoundStartedEvent,
// TickEvent, RoundResolvedEvent and GameOverEvent. Publication is
// synchronous and ordered.
package game
