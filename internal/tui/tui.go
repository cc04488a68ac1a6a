package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/roshambo/internal/game"
)

// Model is the Bubble Tea model for interactive play. All game state
// shown here is event-driven: the model mirrors what the controller
// publishes and never reaches into controller internals.
type Model struct {
	controller *game.Controller
	settings   game.Settings
	logger     *log.Logger

	// UI components
	logViewport viewport.Model
	gameLog     []string

	// Display state, updated from game events
	remaining       int
	playerScore     int
	opponentScore   int
	totalPoints     int
	roundNum        int
	roundActive     bool
	submitted       bool
	awaitingAdvance bool
	gameOver        bool

	sound bool

	// Dimensions
	width       int
	height      int
	initialized bool
	quitting    bool
}

// eventMsg wraps a game event for delivery into the Bubble Tea loop
type eventMsg struct {
	event game.GameEvent
}

// errMsg reports a failed controller call into the update loop
type errMsg struct {
	err error
}

// NewModel creates a TUI model bound to a controller.
func NewModel(controller *game.Controller, settings game.Settings, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &Model{
		controller:  controller,
		settings:    settings,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		gameLog:     []string{},
		sound:       settings.SoundEnabled,
	}
}

// Init starts the first game once the program is running, so the
// bridge is already receiving events.
func (m *Model) Init() tea.Cmd {
	return m.startGame
}

func (m *Model) startGame() tea.Msg {
	if err := m.controller.StartGame(m.settings); err != nil {
		return errMsg{err: err}
	}
	return nil
}

// Update handles incoming messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 4
		m.logViewport.Height = max(msg.Height-8, 3)
		m.initialized = true
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		return m.handleEvent(msg.event)

	case errMsg:
		m.logger.Error("game error", "error", msg.err)
		m.addLogEntry(fmt.Sprintf("error: %v", msg.err))
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "r", "p", "s":
		choice, err := game.ParseChoice(msg.String())
		if err != nil {
			return m, nil
		}
		// Late or duplicate presses are no-ops in the controller too;
		// the local flag just keeps the hint line honest.
		if m.roundActive && !m.submitted {
			m.submitted = true
			m.controller.SubmitChoice(choice)
		}
		return m, nil

	case "enter", " ":
		if m.awaitingAdvance {
			m.controller.Advance()
		}
		return m, nil

	case "n":
		if m.gameOver {
			m.gameLog = nil
			m.roundNum = 0
			m.gameOver = false
			return m, m.startGame
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) handleEvent(ev game.GameEvent) (tea.Model, tea.Cmd) {
	switch ev := ev.(type) {
	case game.RoundStartedEvent:
		m.roundNum++
		m.remaining = ev.Remaining
		m.roundActive = true
		m.submitted = false
		m.awaitingAdvance = false
		m.addLogEntry(fmt.Sprintf("--- Round %d ---", m.roundNum))

	case game.TickEvent:
		m.remaining = ev.Remaining

	case game.RoundResolvedEvent:
		m.roundActive = false
		m.awaitingAdvance = true
		m.playerScore = ev.PlayerScore
		m.opponentScore = ev.OpponentScore
		m.totalPoints = ev.TotalPoints
		m.addLogEntry(fmt.Sprintf("You: %s  Opponent: %s  %s",
			ev.PlayerChoice, ev.OpponentChoice, formatOutcome(ev.Outcome)))
		if m.sound {
			return m, bell
		}

	case game.GameOverEvent:
		m.awaitingAdvance = false
		m.gameOver = true
		m.playerScore = ev.PlayerScore
		m.opponentScore = ev.OpponentScore
		m.totalPoints = ev.TotalPoints
		verdict := "You win the game!"
		if ev.OpponentScore > ev.PlayerScore {
			verdict = "Opponent wins the game."
		}
		m.addLogEntry("")
		m.addLogEntry(fmt.Sprintf("GAME OVER - %s  (%d points)", verdict, ev.TotalPoints))
	}
	return m, nil
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}
	if !m.initialized {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" ROSHAMBO "))
	b.WriteString("\n\n")

	b.WriteString(ScoreStyle.Render(fmt.Sprintf("You %d : %d Opponent", m.playerScore, m.opponentScore)))
	b.WriteString(HintStyle.Render(fmt.Sprintf("   %d points", m.totalPoints)))
	b.WriteString("\n")

	if m.roundActive {
		style := CountdownStyle
		if m.remaining <= 3 {
			style = CountdownLowStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("Time left: %2ds", m.remaining)))
	} else {
		b.WriteString(HintStyle.Render("Round over"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.logViewport.View())
	b.WriteString("\n\n")
	b.WriteString(m.hintLine())

	return b.String()
}

func (m *Model) hintLine() string {
	switch {
	case m.gameOver:
		return HintStyle.Render("n: new game • q: quit")
	case m.awaitingAdvance:
		return HintStyle.Render("enter: next round • q: quit")
	case m.roundActive && m.submitted:
		return HintStyle.Render("waiting...")
	default:
		return HintStyle.Render("r: rock • p: paper • s: scissors • q: quit")
	}
}

// addLogEntry appends an entry to the game log and scrolls to bottom
func (m *Model) addLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.refreshLog()
}

func (m *Model) refreshLog() {
	m.logViewport.SetContent(LogStyle.Render(strings.Join(m.gameLog, "\n")))
	m.logViewport.GotoBottom()
}

func formatOutcome(o game.Outcome) string {
	switch o {
	case game.PlayerWins:
		return WinStyle.Render("you win the round")
	case game.OpponentWins:
		return LossStyle.Render("opponent wins the round")
	default:
		return TieStyle.Render("tie")
	}
}

// bell rings the terminal bell after a round resolves.
func bell() tea.Msg {
	fmt.Print("\a")
	return nil
}
