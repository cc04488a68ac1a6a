package simulator

import (
	"fmt"
	"strings"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed          int64 // RNG seed for this game (for replay)
	Won           bool
	Rounds        int
	RoundWins     int
	RoundLosses   int
	RoundTies     int
	PlayerScore   int
	OpponentScore int
	TotalPoints   int
}

// Statistics aggregates results across simulated games
type Statistics struct {
	Games       int
	GameWins    int
	Rounds      int
	RoundWins   int
	RoundLosses int
	RoundTies   int
	TotalPoints int
	MaxPoints   int
}

// Add folds one game result into the aggregate
func (s *Statistics) Add(r GameResult) {
	s.Games++
	if r.Won {
		s.GameWins++
	}
	s.Rounds += r.Rounds
	s.RoundWins += r.RoundWins
	s.RoundLosses += r.RoundLosses
	s.RoundTies += r.RoundTies
	s.TotalPoints += r.TotalPoints
	if r.TotalPoints > s.MaxPoints {
		s.MaxPoints = r.TotalPoints
	}
}

// WinRate returns the fraction of games won by the player.
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.GameWins) / float64(s.Games)
}

// RoundsPerGame returns the mean number of rounds per game.
func (s *Statistics) RoundsPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Rounds) / float64(s.Games)
}

// PointsPerGame returns the mean points total per game.
func (s *Statistics) PointsPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalPoints) / float64(s.Games)
}

// Validate sanity-checks internal consistency of the tallies.
func (s *Statistics) Validate() error {
	if s.RoundWins+s.RoundLosses+s.RoundTies != s.Rounds {
		return fmt.Errorf("round tallies (%d+%d+%d) do not sum to %d rounds",
			s.RoundWins, s.RoundLosses, s.RoundTies, s.Rounds)
	}
	if s.GameWins > s.Games {
		return fmt.Errorf("more game wins (%d) than games (%d)", s.GameWins, s.Games)
	}
	return nil
}

// Summary renders a human-readable report.
func (s *Statistics) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Games:        %d (won %d, %.1f%%)\n", s.Games, s.GameWins, s.WinRate()*100)
	fmt.Fprintf(&b, "Rounds:       %d (%.1f per game)\n", s.Rounds, s.RoundsPerGame())
	fmt.Fprintf(&b, "  wins:       %d\n", s.RoundWins)
	fmt.Fprintf(&b, "  losses:     %d\n", s.RoundLosses)
	fmt.Fprintf(&b, "  ties:       %d\n", s.RoundTies)
	fmt.Fprintf(&b, "Points:       %d total (%.0f per game, best %d)\n", s.TotalPoints, s.PointsPerGame(), s.MaxPoints)
	return b.String()
}
