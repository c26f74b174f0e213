// Package dashboard is the progress overview screen: level, streak, daily
// challenges, achievements, statistics, and reward settings.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fcsprep/fcsprep/internal/reward"
	"github.com/fcsprep/fcsprep/internal/screen"
	"github.com/fcsprep/fcsprep/internal/ui/components"
	"github.com/fcsprep/fcsprep/internal/ui/layout"
	"github.com/fcsprep/fcsprep/internal/ui/theme"
)

// DashboardScreen renders the reward engine summary and edits settings.
type DashboardScreen struct {
	engine  *reward.Engine
	summary reward.Summary
}

var (
	_ screen.Screen          = (*DashboardScreen)(nil)
	_ screen.KeyHintProvider = (*DashboardScreen)(nil)
)

// New creates the dashboard screen.
func New(engine *reward.Engine) *DashboardScreen {
	return &DashboardScreen{
		engine:  engine,
		summary: engine.Summary(),
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "My Progress"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1", Description: "Rewards"},
		{Key: "2", Description: "Sound"},
		{Key: "3", Description: "Animations"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	toggle := func(patch func(v bool) reward.SettingsPatch, current bool) {
		v := !current
		s.engine.ApplySettings(context.Background(), patch(v))
		s.summary = s.engine.Summary()
	}

	switch kmsg.String() {
	case "1":
		toggle(func(v bool) reward.SettingsPatch { return reward.SettingsPatch{Enabled: &v} },
			s.summary.Settings.Enabled)
	case "2":
		toggle(func(v bool) reward.SettingsPatch { return reward.SettingsPatch{SoundEnabled: &v} },
			s.summary.Settings.SoundEnabled)
	case "3":
		toggle(func(v bool) reward.SettingsPatch { return reward.SettingsPatch{AnimationsEnabled: &v} },
			s.summary.Settings.AnimationsEnabled)
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder
	b.WriteString("\n")

	center := func(text string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
		b.WriteString("\n")
	}

	// Level + XP progress toward the next tier.
	center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Level %d — %s", sum.Level.Level, sum.Level.Title)))
	center(theme.Subtitle.Render(fmt.Sprintf("%d XP total  ·  %s %d-day streak",
		sum.TotalXP, sum.StreakEmoji, sum.Streak)))
	b.WriteString("\n")

	barWidth := width / 2
	if barWidth < 30 {
		barWidth = 30
	}
	bar := components.NewProgressBar("Next level", float64(sum.ProgressPercent)/100, true, barWidth)
	center(bar.View())
	b.WriteString("\n")

	// Daily challenges.
	center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Today's Challenges"))
	for _, ch := range sum.Challenges {
		mark := "[ ]"
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if ch.Completed {
			mark = "[✓]"
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		center(style.Render(fmt.Sprintf("%s %s  (+%d XP)", mark, ch.Description, ch.XP)))
	}
	b.WriteString("\n")

	// Achievements grid, five per row.
	center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Achievements  %d / %d", sum.UnlockedCount(), len(sum.Achievements))))
	var row []string
	for i, a := range sum.Achievements {
		cell := "🔒 " + a.Name
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if a.Unlocked {
			cell = a.Icon + " " + a.Name
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		row = append(row, style.Render(cell))
		if len(row) == 5 || i == len(sum.Achievements)-1 {
			center(strings.Join(row, "   "))
			row = row[:0]
		}
	}
	b.WriteString("\n")

	// Lifetime statistics.
	st := sum.Statistics
	studyTime := time.Duration(st.TotalStudyTimeMs) * time.Millisecond
	center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Statistics"))
	center(theme.Subtitle.Render(fmt.Sprintf(
		"Flashcards %d  ·  Practice tests %d  ·  Full tests %d  ·  Scenarios %d  ·  Perfect scores %d  ·  Study time %s",
		st.FlashcardsReviewed, st.PracticeTestsCompleted, st.FullTestsCompleted,
		st.ScenariosCompleted, st.PerfectScores, studyTime.Round(time.Minute))))
	b.WriteString("\n")

	// Settings toggles.
	toggles := []components.Toggle{
		{Hotkey: "1", Label: "Rewards", On: sum.Settings.Enabled},
		{Hotkey: "2", Label: "Sound", On: sum.Settings.SoundEnabled},
		{Hotkey: "3", Label: "Animations", On: sum.Settings.AnimationsEnabled},
	}
	parts := make([]string, 0, len(toggles))
	for _, t := range toggles {
		parts = append(parts, t.View())
	}
	center(strings.Join(parts, "    "))

	return b.String()
}
