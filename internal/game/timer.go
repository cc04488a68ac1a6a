package game

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// RoundTimer drives the per-round countdown. It ticks once per second
// on the injected quartz clock, reporting the decremented remaining
// count on each tick and expiry exactly once when the count reaches
// zero. Tests substitute quartz.NewMock to advance time deterministically.
//
// A tick that is already in flight when Stop is called may still invoke
// its callback; callers are expected to ignore callbacks for rounds
// that are no longer active.
type RoundTimer struct {
	clock quartz.Clock

	mu        sync.Mutex
	cancel    context.CancelFunc
	remaining int
}

// NewRoundTimer creates a timer that ticks on the given clock.
func NewRoundTimer(clock quartz.Clock) *RoundTimer {
	return &RoundTimer{clock: clock}
}

// Start begins a countdown of durationSeconds. Each second the
// remaining count is decremented and onTick is invoked with the new
// value; the final tick reports 0 and is immediately followed by a
// single onExpire call, after which the timer stops itself. Any
// previously running countdown is cancelled first.
func (t *RoundTimer) Start(durationSeconds int, onTick func(remaining int), onExpire func()) {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.remaining = durationSeconds
	t.mu.Unlock()

	t.clock.TickerFunc(ctx, time.Second, func() error {
		t.mu.Lock()
		if ctx.Err() != nil {
			t.mu.Unlock()
			return nil
		}
		t.remaining--
		remaining := t.remaining
		if remaining <= 0 {
			// Cancel before the callbacks run so no tick can fire
			// after expiry.
			cancel()
		}
		t.mu.Unlock()

		onTick(remaining)
		if remaining <= 0 {
			onExpire()
		}
		return nil
	}, "round-timer")
}

// Stop cancels any pending tick. Stopping an expired or already-stopped
// timer is a no-op.
func (t *RoundTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Remaining returns the current countdown value.
func (t *RoundTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}
