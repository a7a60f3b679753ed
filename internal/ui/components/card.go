package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardz/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for card panels so the
// question, hint and answer boxes visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for the panel border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CardPanel wraps content in a rounded-border panel at the given content
// width, the visual unit for one flashcard face.
func CardPanel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Width(cw - 2).
		Render(content)
}

// AccentPanel is CardPanel with a highlighted border, used for the revealed
// answer face.
func AccentPanel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(cw - 2).
		Render(content)
}

// CenterBlock centers a multi-line block horizontally in the given width.
func CenterBlock(content string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
