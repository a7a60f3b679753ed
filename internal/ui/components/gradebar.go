package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardz/internal/ui/theme"
)

// GradeOption is one entry in the grade bar.
type GradeOption struct {
	Key   string
	Label string
}

// DefaultGradeOptions is the standard four-grade recall scale.
var DefaultGradeOptions = []GradeOption{
	{Key: "1", Label: "Again"},
	{Key: "2", Label: "Hard"},
	{Key: "3", Label: "Good"},
	{Key: "4", Label: "Easy"},
}

// GradeBar renders the horizontal grade picker shown once an answer is
// revealed in review mode.
type GradeBar struct {
	Options  []GradeOption
	Disabled bool
}

// NewGradeBar creates a grade bar with the default recall scale.
func NewGradeBar() GradeBar {
	return GradeBar{Options: DefaultGradeOptions}
}

// View renders the grade bar.
func (g GradeBar) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if g.Disabled {
		keyStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		labelStyle = keyStyle
	}

	parts := make([]string, 0, len(g.Options))
	for _, opt := range g.Options {
		parts = append(parts, keyStyle.Render("["+opt.Key+"]")+" "+labelStyle.Render(opt.Label))
	}
	return strings.Join(parts, "    ")
}
