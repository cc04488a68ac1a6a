package game

// phase tracks where the controller is in the game state machine:
// Idle -> RoundActive -> RoundResolved -> {RoundActive | GameOver},
// with GameOver -> Idle only via StartGame.
type phase int

const (
	phaseIdle phase = iota
	phaseRoundActive
	phaseRoundResolved
	phaseGameOver
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseRoundActive:
		return "round_active"
	case phaseRoundResolved:
		return "round_resolved"
	case phaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// gameState holds the score counters for one game session. Zeroed at
// StartGame, mutated only by the controller at round resolution.
type gameState struct {
	playerScore   int
	opponentScore int
	totalPoints   int
}

// roundState is owned by the active round and discarded on resolution.
// playerChoice and opponentChoice use a nil pointer for "absent".
type roundState struct {
	remaining      int
	playerChoice   *Choice
	opponentChoice *Choice
}

// Snapshot is a point-in-time copy of the observable game state.
type Snapshot struct {
	PlayerScore   int
	OpponentScore int
	TotalPoints   int
	RoundActive   bool
	Remaining     int
}
