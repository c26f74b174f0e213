// Package home is the main menu screen.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fcsprep/fcsprep/internal/content"
	"github.com/fcsprep/fcsprep/internal/reward"
	"github.com/fcsprep/fcsprep/internal/router"
	"github.com/fcsprep/fcsprep/internal/screen"
	"github.com/fcsprep/fcsprep/internal/screens/dashboard"
	"github.com/fcsprep/fcsprep/internal/screens/flashcards"
	"github.com/fcsprep/fcsprep/internal/screens/history"
	"github.com/fcsprep/fcsprep/internal/screens/quiz"
	"github.com/fcsprep/fcsprep/internal/screens/scenarios"
	"github.com/fcsprep/fcsprep/internal/screens/talkingpoints"
	"github.com/fcsprep/fcsprep/internal/studysession"
	"github.com/fcsprep/fcsprep/internal/ui/components"
	"github.com/fcsprep/fcsprep/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu   components.Menu
	engine *reward.Engine
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. The same tracker is shared by every study
// screen so first-interaction dedup spans the whole app run.
func New(set *content.Set, tracker *studysession.Tracker, engine *reward.Engine, events history.EventSource) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "FLASHCARDS", Action: push(func() screen.Screen {
			return flashcards.New(set.Terms, tracker)
		})},
		{Label: "PRACTICE TEST", Action: push(func() screen.Screen {
			return quiz.New(set, tracker)
		})},
		{Label: "SCENARIOS", Action: push(func() screen.Screen {
			return scenarios.New(set.Scenarios, tracker)
		})},
		{Label: "TALKING POINTS", Action: push(func() screen.Screen {
			return talkingpoints.New(set.TalkingPoints, tracker)
		})},
		{Label: "MY PROGRESS", Action: push(func() screen.Screen {
			return dashboard.New(engine)
		})},
		{Label: "HISTORY", Action: push(func() screen.Screen {
			return history.New(events)
		})},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:   components.NewMenu(items),
		engine: engine,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	summary := h.engine.Summary()

	title := theme.Title.Width(width).Render("FCS PREP")
	subtitle := theme.Subtitle.Width(width).
		Render("Foundational Community Supports study tool")

	stats := fmt.Sprintf("Level %d %s   %d XP   %s %d-day streak   %d/%d achievements",
		summary.Level.Level, summary.Level.Title, summary.TotalXP,
		summary.StreakEmoji, summary.Streak,
		summary.UnlockedCount(), len(summary.Achievements))
	statsLine := lipgloss.NewStyle().Foreground(theme.TextDim).
		Width(width).Align(lipgloss.Center).Render(stats)

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())

	content := strings.Join([]string{"", title, subtitle, "", statsLine, "", menu}, "\n")

	return lipgloss.NewStyle().Height(height).Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
