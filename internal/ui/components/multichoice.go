package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fcsprep/fcsprep/internal/ui/theme"
)

// ChoiceOption is one selectable answer, identified by its content key.
type ChoiceOption struct {
	Key  string
	Text string
}

// MultiChoice is a multiple-choice selector over keyed options.
type MultiChoice struct {
	Prompt     string
	Options    []ChoiceOption
	CorrectKey string
	Selected   int
	Submitted  bool
	ChosenKey  string
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(prompt string, options []ChoiceOption, correctKey string) MultiChoice {
	return MultiChoice{
		Prompt:     prompt,
		Options:    options,
		CorrectKey: correctKey,
	}
}

// Update handles keyboard navigation and selection. Once submitted the
// component is frozen so the result cannot be changed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Options) {
			m.Submitted = true
			m.ChosenKey = m.Options[m.Selected].Key
		}
	}

	return m, nil
}

// View renders the prompt and options. After submission the correct option
// shows green and a wrong choice shows red.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, strings.ToUpper(opt.Key), opt.Text)

		var style lipgloss.Style
		switch {
		case m.Submitted && opt.Key == m.CorrectKey:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case m.Submitted && opt.Key == m.ChosenKey:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenKey == m.CorrectKey
}
