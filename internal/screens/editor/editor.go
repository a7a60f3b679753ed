package editor

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardz/internal/api"
	"github.com/abhisek/cardz/internal/cards"
	"github.com/abhisek/cardz/internal/router"
	"github.com/abhisek/cardz/internal/screen"
	"github.com/abhisek/cardz/internal/ui/components"
	"github.com/abhisek/cardz/internal/ui/layout"
	"github.com/abhisek/cardz/internal/ui/theme"
)

// field is one labelled input of the edit form.
type field struct {
	label string
	input components.TextInput
}

// EditorScreen edits or deletes a single card through the API. On success
// it pops itself and emits SavedMsg/DeletedMsg for the screen underneath.
type EditorScreen struct {
	client *api.Client
	card   cards.Card

	fields        []field
	focus         int
	busy          bool
	confirmDelete bool
	errMsg        string
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)

// New creates an editor for the given card.
func New(client *api.Client, card cards.Card) *EditorScreen {
	e := &EditorScreen{client: client, card: card}
	e.fields = buildFields(card)
	e.focusField(0)
	return e
}

func buildFields(card cards.Card) []field {
	newField := func(label, placeholder, value string, numeric bool, limit int) field {
		f := field{label: label, input: components.NewTextInput(placeholder, numeric, limit)}
		f.input.Model.SetValue(value)
		return f
	}

	fields := []field{
		newField("Question", "The prompt shown first", card.Question, false, 500),
	}
	if card.Kind == cards.KindMultipleChoice {
		for i := 0; i < 4; i++ {
			choice := ""
			if i < len(card.Choices) {
				choice = card.Choices[i]
			}
			fields = append(fields, newField(
				fmt.Sprintf("Choice %d", i+1), "Option text", choice, false, 200))
		}
		fields = append(fields,
			newField("Correct (1-4)", "1", fmt.Sprintf("%d", card.CorrectIndex+1), true, 1),
			newField("Explanation", "Shown after the reveal (optional)", card.Explanation, false, 1000),
		)
	} else {
		fields = append(fields,
			newField("Answer", "The canonical answer", card.Answer, false, 1000),
			newField("Hint", "Optional nudge", card.Hint, false, 500),
		)
	}
	return fields
}

func (e *EditorScreen) focusField(i int) {
	for j := range e.fields {
		e.fields[j].input.Model.Blur()
	}
	e.focus = i
	e.fields[i].input.Model.Focus()
}

func (e *EditorScreen) Init() tea.Cmd {
	return e.fields[e.focus].input.Init()
}

func (e *EditorScreen) Title() string {
	return "Edit card"
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	if e.confirmDelete {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Ctrl+D", Description: "Delete card"},
		{Key: "Esc", Description: "Discard"},
	}
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case saveDoneMsg:
		e.busy = false
		if msg.Err != nil {
			e.errMsg = msg.Err.Error()
			return e, nil
		}
		saved := SavedMsg{TopicID: e.card.TopicID, Position: e.card.Position}
		return e, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return saved },
		)

	case deleteDoneMsg:
		e.busy = false
		if msg.Err != nil {
			e.errMsg = msg.Err.Error()
			return e, nil
		}
		deleted := DeletedMsg{TopicID: e.card.TopicID, Position: e.card.Position}
		return e, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return deleted },
		)

	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	return e.forwardToFocused(msg)
}

func (e *EditorScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if e.busy {
		return e, nil
	}

	if e.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			e.confirmDelete = false
			e.busy = true
			return e, e.deleteCard()
		case "n", "N", "esc":
			e.confirmDelete = false
		}
		return e, nil
	}

	switch msg.String() {
	case "tab", "down":
		e.focusField((e.focus + 1) % len(e.fields))
		return e, e.fields[e.focus].input.Init()
	case "shift+tab", "up":
		e.focusField((e.focus + len(e.fields) - 1) % len(e.fields))
		return e, e.fields[e.focus].input.Init()
	case "ctrl+s":
		updated, err := e.collect()
		if err != nil {
			e.errMsg = err.Error()
			return e, nil
		}
		e.errMsg = ""
		e.busy = true
		return e, e.saveCard(updated)
	case "ctrl+d":
		e.confirmDelete = true
		return e, nil
	}

	return e.forwardToFocused(msg)
}

func (e *EditorScreen) forwardToFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	e.fields[e.focus].input, cmd = e.fields[e.focus].input.Update(msg)
	return e, cmd
}

// collect builds the updated card from the form, with the same checks the
// generation validators apply.
func (e *EditorScreen) collect() (cards.Card, error) {
	updated := e.card
	updated.Question = strings.TrimSpace(e.fields[0].input.Value())
	if updated.Question == "" {
		return cards.Card{}, fmt.Errorf("question must not be empty")
	}

	if e.card.Kind == cards.KindMultipleChoice {
		choices := make([]string, 0, 4)
		for i := 1; i <= 4; i++ {
			c := strings.TrimSpace(e.fields[i].input.Value())
			if c == "" {
				return cards.Card{}, fmt.Errorf("choice %d must not be empty", i)
			}
			choices = append(choices, c)
		}
		updated.Choices = choices

		n, err := e.fields[5].input.NumericValue()
		if err != nil || n < 1 || n > 4 {
			return cards.Card{}, fmt.Errorf("correct option must be 1-4")
		}
		updated.CorrectIndex = n - 1
		updated.Explanation = strings.TrimSpace(e.fields[6].input.Value())
	} else {
		updated.Answer = strings.TrimSpace(e.fields[1].input.Value())
		if updated.Answer == "" {
			return cards.Card{}, fmt.Errorf("answer must not be empty")
		}
		updated.Hint = strings.TrimSpace(e.fields[2].input.Value())
	}
	return updated, nil
}

func (e *EditorScreen) saveCard(updated cards.Card) tea.Cmd {
	client := e.client
	return func() tea.Msg {
		return saveDoneMsg{Err: client.UpdateCard(context.Background(), updated)}
	}
}

func (e *EditorScreen) deleteCard() tea.Cmd {
	client := e.client
	card := e.card
	return func() tea.Msg {
		return deleteDoneMsg{Err: client.DeleteCard(context.Background(), card.TopicID, card.Position)}
	}
}

func (e *EditorScreen) View(width, height int) string {
	if e.confirmDelete {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render("\n\n\nDelete this card?\n\n[Y] Yes   [N] No")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	for i, f := range e.fields {
		labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == e.focus {
			labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", f.label)))
		b.WriteString(f.input.View())
		b.WriteString("\n")
	}

	if e.busy {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Saving..."))
	}
	if e.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(e.errMsg))
	}

	panel := components.CardPanel(b.String(), cw)
	return "\n" + components.CenterBlock(panel, width)
}
