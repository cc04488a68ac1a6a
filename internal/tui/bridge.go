package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/roshambo/internal/game"
)

// Bridge forwards game events into the Bubble Tea program. The event
// bus publishes on whichever goroutine triggered the transition (input
// or timer); program.Send is safe from any of them, so the bridge never
// calls back into the controller.
type Bridge struct {
	program *tea.Program
}

// NewBridge creates a bridge that feeds the given program.
func NewBridge(program *tea.Program) *Bridge {
	return &Bridge{program: program}
}

// OnEvent implements game.EventSubscriber.
func (b *Bridge) OnEvent(event game.GameEvent) {
	b.program.Send(eventMsg{event: event})
}
