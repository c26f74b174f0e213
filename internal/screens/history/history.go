// Package history shows the recent XP award log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fcsprep/fcsprep/internal/router"
	"github.com/fcsprep/fcsprep/internal/screen"
	"github.com/fcsprep/fcsprep/internal/store"
	"github.com/fcsprep/fcsprep/internal/ui/layout"
	"github.com/fcsprep/fcsprep/internal/ui/theme"
)

const historyLimit = 50

// EventSource is the read side of the XP event log. Both the SQLite-backed
// repo and the in-memory store satisfy it.
type EventSource interface {
	Recent(ctx context.Context, limit int) ([]store.StoredXPEvent, error)
}

type historyLoadedMsg struct {
	Events []store.StoredXPEvent
	Err    error
}

// HistoryScreen displays recent XP awards, newest first.
type HistoryScreen struct {
	events   EventSource
	loaded   []store.StoredXPEvent
	selected int
	ready    bool
	errMsg   string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New creates a new HistoryScreen.
func New(events EventSource) *HistoryScreen {
	return &HistoryScreen{events: events}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.events.Recent(context.Background(), historyLimit)
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.loaded = msg.Events
		}
		s.ready = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.loaded)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.ready {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.loaded) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No XP earned yet. Start studying!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selected row on screen.
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}

	for i := start; i < len(s.loaded) && i < start+visible; i++ {
		e := s.loaded[i]

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  +%d XP  %s  (total %d)",
			prefix, e.At.Local().Format("Jan 02 15:04"), e.Amount, e.Reason, e.TotalXP)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
