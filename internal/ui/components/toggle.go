package components

import (
	"charm.land/lipgloss/v2"

	"github.com/fcsprep/fcsprep/internal/ui/theme"
)

// Toggle renders an on/off setting row with its hotkey.
type Toggle struct {
	Hotkey string
	Label  string
	On     bool
}

// View renders the toggle as "[1] Sound effects   ON".
func (t Toggle) View() string {
	key := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("[" + t.Hotkey + "]")
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(" " + t.Label + "  ")

	state := lipgloss.NewStyle().Foreground(theme.TextDim).Render("OFF")
	if t.On {
		state = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("ON")
	}
	return key + label + state
}
