package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardz/internal/ui/theme"
)

// ChoiceList renders the options of a multiple-choice card. Before the
// answer is revealed it shows the current selection; after, it marks the
// correct option and the user's pick. Selection state lives in the session
// controller, this component only draws it.
type ChoiceList struct {
	Options      []string
	Selected     int // -1 when nothing is selected
	Revealed     bool
	CorrectIndex int
}

// View renders the choice list.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		switch {
		case c.Revealed && i == c.CorrectIndex:
			b.WriteString(theme.Correct.Render(line + "  ✓"))
		case c.Revealed && i == c.Selected:
			b.WriteString(theme.Incorrect.Render(line + "  ✗"))
		case c.Revealed:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		case i == c.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WasCorrect reports whether the revealed selection hit the correct option.
func (c ChoiceList) WasCorrect() bool {
	return c.Revealed && c.Selected == c.CorrectIndex
}
