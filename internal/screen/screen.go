package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cardz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscHandler is an optional interface for screens that want first shot at
// the Esc key (for example to show a leave confirmation) before the app
// pops them off the stack.
type EscHandler interface {
	HandlesEsc() bool
}

// StatusProvider is an optional interface for screens that contribute a
// right-aligned header status ("12 due", "3/10", ...).
type StatusProvider interface {
	HeaderStatus() string
}
