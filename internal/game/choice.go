package game

import "fmt"

// Choice is a throw in rock-paper-scissors.
type Choice int

const (
	Rock Choice = iota
	Paper
	Scissors
)

// NumChoices is the size of the Choice enumeration, used for uniform draws.
const NumChoices = 3

// String returns the lowercase name of the choice
func (c Choice) String() string {
	switch c {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return fmt.Sprintf("choice(%d)", int(c))
	}
}

// ParseChoice converts a string to a Choice. Accepts full names and
// single-letter shortcuts as used by the TUI key bindings.
func ParseChoice(s string) (Choice, error) {
	switch s {
	case "rock", "r":
		return Rock, nil
	case "paper", "p":
		return Paper, nil
	case "scissors", "s":
		return Scissors, nil
	default:
		return 0, fmt.Errorf("invalid choice: %q", s)
	}
}

// Beats reports whether c wins against other under the cyclic relation
// rock > scissors > paper > rock.
func (c Choice) Beats(other Choice) bool {
	switch c {
	case Rock:
		return other == Scissors
	case Paper:
		return other == Rock
	case Scissors:
		return other == Paper
	default:
		return false
	}
}

// Outcome is the result of comparing two choices from the player's
// perspective. Derived, never stored.
type Outcome int

const (
	Tie Outcome = iota
	PlayerWins
	OpponentWins
)

// String returns a human-readable outcome name
func (o Outcome) String() string {
	switch o {
	case PlayerWins:
		return "win"
	case OpponentWins:
		return "loss"
	case Tie:
		return "tie"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Resolve compares the player's choice against the opponent's.
func Resolve(player, opponent Choice) Outcome {
	if player == opponent {
		return Tie
	}
	if player.Beats(opponent) {
		return PlayerWins
	}
	return OpponentWins
}

// Point values awarded per round outcome.
const (
	winPoints = 500
	tiePoints = 100
)

// Points returns the points awarded for an outcome.
func Points(o Outcome) int {
	switch o {
	case PlayerWins:
		return winPoints
	case Tie:
		return tiePoints
	default:
		return 0
	}
}
