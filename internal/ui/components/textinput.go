package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fcsprep/fcsprep/internal/ui/theme"
)

// SearchInput wraps bubbles/textinput for incremental filtering, like the
// glossary term search.
type SearchInput struct {
	Model  textinput.Model
	active bool
}

// NewSearchInput creates a new styled search input.
func NewSearchInput(placeholder string) SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	return SearchInput{Model: ti}
}

// Activate focuses the input.
func (s *SearchInput) Activate() tea.Cmd {
	s.active = true
	return s.Model.Focus()
}

// Deactivate blurs the input and clears its value.
func (s *SearchInput) Deactivate() {
	s.active = false
	s.Model.Blur()
	s.Model.SetValue("")
}

// Active reports whether the input currently captures keystrokes.
func (s SearchInput) Active() bool {
	return s.active
}

// Update forwards messages to the inner model while active.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the input with a search prefix.
func (s SearchInput) View() string {
	if !s.active && s.Model.Value() == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Search: ") + s.Model.View()
}

// Value returns the current query.
func (s SearchInput) Value() string {
	return s.Model.Value()
}
