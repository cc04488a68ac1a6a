package game

import "time"

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStarted  EventType = "round_started"
	EventTypeTick          EventType = "tick"
	EventTypeRoundResolved EventType = "round_resolved"
	EventTypeGameOver      EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event emitted by the game controller
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartedEvent is published when a new round begins, carrying the
// initial countdown value.
type RoundStartedEvent struct {
	Remaining int
	timestamp time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartedEvent creates a new round started event
func NewRoundStartedEvent(remaining int) RoundStartedEvent {
	return RoundStartedEvent{Remaining: remaining, timestamp: time.Now()}
}

// TickEvent is published once per second while a round is active.
type TickEvent struct {
	Remaining int
	timestamp time.Time
}

func (e TickEvent) EventType() EventType { return EventTypeTick }
func (e TickEvent) Timestamp() time.Time { return e.timestamp }

// NewTickEvent creates a new tick event
func NewTickEvent(remaining int) TickEvent {
	return TickEvent{Remaining: remaining, timestamp: time.Now()}
}

// RoundResolvedEvent is published when a round resolves, whether by
// choice submission or timer expiry.
type RoundResolvedEvent struct {
	PlayerChoice   Choice
	OpponentChoice Choice
	Outcome        Outcome
	PlayerScore    int
	OpponentScore  int
	TotalPoints    int
	timestamp      time.Time
}

func (e RoundResolvedEvent) EventType() EventType { return EventTypeRoundResolved }
func (e RoundResolvedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundResolvedEvent creates a new round resolved event
func NewRoundResolvedEvent(player, opponent Choice, outcome Outcome, playerScore, opponentScore, totalPoints int) RoundResolvedEvent {
	return RoundResolvedEvent{
		PlayerChoice:   player,
		OpponentChoice: opponent,
		Outcome:        outcome,
		PlayerScore:    playerScore,
		OpponentScore:  opponentScore,
		TotalPoints:    totalPoints,
		timestamp:      time.Now(),
	}
}

// GameOverEvent is published when a score reaches the winning threshold.
type GameOverEvent struct {
	PlayerScore   int
	OpponentScore int
	TotalPoints   int
	timestamp     time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// NewGameOverEvent creates a new game over event
func NewGameOverEvent(playerScore, opponentScore, totalPoints int) GameOverEvent {
	return GameOverEvent{
		PlayerScore:   playerScore,
		OpponentScore: opponentScore,
		TotalPoints:   totalPoints,
		timestamp:     time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription. Publish is
// synchronous: subscribers see events in emission order, so a round
// resolved event always arrives before the next round started event.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
