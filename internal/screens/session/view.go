package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardz/internal/cards"
	"github.com/abhisek/cardz/internal/review"
	"github.com/abhisek/cardz/internal/ui/components"
	"github.com/abhisek/cardz/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// View renders from the snapshot only; see renderState.
func (s *SessionScreen) View(width, height int) string {
	if s.confirmQuit {
		return s.renderConfirm(width, "End this session?",
			"Scored cards are already saved on the server.")
	}
	if s.confirmDelete {
		return s.renderConfirm(width, "Delete this card?",
			"The card is removed from the deck for everyone.")
	}

	switch s.snap.phase {
	case review.PhaseLoading:
		return s.renderSpinner(width, "Fetching cards...")
	case review.PhaseRefilling:
		return s.renderSpinner(width, "Fetching more cards...")
	case review.PhaseErrored:
		return s.renderErrored(width)
	case review.PhaseComplete:
		return s.renderComplete(width)
	case review.PhasePresenting, review.PhaseSubmitting:
		return s.renderCard(width)
	}
	return ""
}

func (s *SessionScreen) renderSpinner(width int, label string) string {
	frame := spinnerFrames[s.spinner%len(spinnerFrames)]
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + frame + " " + label)
}

func (s *SessionScreen) renderErrored(width int) string {
	msg := "something went wrong"
	if err := s.snap.fetchErr; err != nil {
		msg = err.Error()
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Could not fetch cards: %s\n\n  Press r to retry, Esc to go back.", msg))
}

func (s *SessionScreen) renderComplete(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	headline := "Session complete!"
	if s.snap.scoredCount == 0 {
		headline = "Nothing due right now."
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Bold(true).
		Render(headline))
	b.WriteString("\n\n")

	verb := "scored"
	if s.ctrl.Mode() == review.ModePractice {
		verb = "practiced"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("%d cards %s", s.snap.scoredCount, verb)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press r to go again, Esc for the deck list."))

	return b.String()
}

func (s *SessionScreen) renderConfirm(width int, question, detail string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(question))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(detail))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func (s *SessionScreen) renderCard(width int) string {
	if !s.snap.hasCard {
		return ""
	}
	cur := s.snap.card

	cw := components.ContentWidth(width)
	var sections []string

	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(cur.Question)
	sections = append(sections, components.CardPanel(question, cw))

	switch cur.Kind {
	case cards.KindMultipleChoice:
		sections = append(sections, s.renderChoices(cur, cw))
	default:
		sections = append(sections, s.renderQA(cur, cw)...)
	}

	if s.snap.reveal == review.RevealAnswer {
		sections = append(sections, s.renderControls())
	}

	if err := s.snap.submitErr; err != nil {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("Submit failed: "+err.Error()+" — pick a grade to retry."))
	}
	if s.bridgeErr != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(s.bridgeErr))
	}

	if n := s.snap.batchLen; n > 0 {
		bar := components.NewProgressBar("", float64(s.snap.cursor)/float64(n), false, cw-4)
		sections = append(sections, bar.View())
	}

	content := strings.Join(sections, "\n")
	return "\n" + components.CenterBlock(content, width)
}

func (s *SessionScreen) renderChoices(cur cards.Card, cw int) string {
	list := components.ChoiceList{
		Options:      cur.Choices,
		Selected:     s.snap.selected,
		Revealed:     s.snap.reveal == review.RevealAnswer,
		CorrectIndex: cur.CorrectIndex,
	}

	var b strings.Builder
	b.WriteString(list.View())

	if list.Revealed && cur.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(cw - 6).
			Foreground(theme.TextDim).
			Render(cur.Explanation))
		b.WriteString("\n")
	}
	if !list.Revealed {
		hint := "Pick an option, then Enter to check"
		if s.snap.selected < 0 {
			hint = "An attempt is required before the answer is shown"
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(hint))
	}
	return b.String()
}

func (s *SessionScreen) renderQA(cur cards.Card, cw int) []string {
	var sections []string

	switch s.snap.reveal {
	case review.RevealHidden:
		if cur.HasHint() {
			sections = append(sections, theme.Hint.Render("h for a hint, Enter for the answer"))
		} else {
			sections = append(sections, theme.Hint.Render("Enter to show the answer"))
		}
	case review.RevealHint:
		hint := lipgloss.NewStyle().Foreground(theme.Accent).Render("Hint: ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(cur.Hint)
		sections = append(sections, components.CardPanel(hint, cw))
		sections = append(sections, theme.Hint.Render("Enter to show the answer"))
	case review.RevealAnswer:
		answer := lipgloss.NewStyle().Foreground(theme.Text).Render(cur.Answer)
		sections = append(sections, components.AccentPanel(answer, cw))
	}
	return sections
}

func (s *SessionScreen) renderControls() string {
	if s.ctrl.Mode() == review.ModePractice {
		return theme.Hint.Render("Enter for the next card")
	}
	bar := components.NewGradeBar()
	bar.Disabled = s.inFlight()
	line := bar.View()
	if s.snap.phase == review.PhaseSubmitting || s.busy {
		frame := spinnerFrames[s.spinner%len(spinnerFrames)]
		line += "   " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(frame+" submitting")
	}
	return line
}
