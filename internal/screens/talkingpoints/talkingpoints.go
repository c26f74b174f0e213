// Package talkingpoints is the true/false statement drill screen. Answers
// feed the session tracker, which rolls every ten distinct statements into a
// practice-test award.
package talkingpoints

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fcsprep/fcsprep/internal/content"
	"github.com/fcsprep/fcsprep/internal/screen"
	"github.com/fcsprep/fcsprep/internal/studysession"
	"github.com/fcsprep/fcsprep/internal/ui/layout"
	"github.com/fcsprep/fcsprep/internal/ui/theme"
)

// TalkingPointsScreen presents true/false statements.
type TalkingPointsScreen struct {
	points  []content.TalkingPoint
	tracker *studysession.Tracker
	index   int
}

var (
	_ screen.Screen          = (*TalkingPointsScreen)(nil)
	_ screen.KeyHintProvider = (*TalkingPointsScreen)(nil)
)

// New creates the talking points screen.
func New(points []content.TalkingPoint, tracker *studysession.Tracker) *TalkingPointsScreen {
	return &TalkingPointsScreen{
		points:  points,
		tracker: tracker,
	}
}

func (s *TalkingPointsScreen) Init() tea.Cmd {
	return nil
}

func (s *TalkingPointsScreen) Title() string {
	return "Talking Points"
}

func (s *TalkingPointsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "t", Description: "True"},
		{Key: "f", Description: "False"},
		{Key: "←→", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TalkingPointsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(s.points) == 0 {
		return s, nil
	}

	p := s.points[s.index]

	switch kmsg.String() {
	case "left", "h":
		if s.index > 0 {
			s.index--
		}
	case "right", "l", "n":
		if s.index < len(s.points)-1 {
			s.index++
		}
	case "t":
		s.answer(p, true)
	case "f":
		s.answer(p, false)
	}
	return s, nil
}

// answer records the first choice for a statement. The tracker ignores
// repeats, so a locked-in answer never changes.
func (s *TalkingPointsScreen) answer(p content.TalkingPoint, choice bool) {
	if _, done := s.tracker.TalkingPointDone(p.ID); done {
		return
	}
	_, _ = s.tracker.TalkingPointAnswered(context.Background(), p.ID, choice, choice == p.Correct)
}

func (s *TalkingPointsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	if len(s.points) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No talking points loaded.")))
		return b.String()
	}

	p := s.points[s.index]

	header := fmt.Sprintf("Statement %d of %d  ·  %s", s.index+1, len(s.points), p.Category)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(header)))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Statement) + "\n\n"

	if answer, done := s.tracker.TalkingPointDone(p.ID); done {
		verdict := "False"
		if p.Correct {
			verdict = "True"
		}
		if answer == p.Correct {
			body += theme.Correct.Render("Correct — the statement is "+strings.ToLower(verdict)) + "\n"
		} else {
			body += theme.Incorrect.Render("Incorrect — the statement is "+strings.ToLower(verdict)) + "\n"
		}
		body += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Explanation)
		if p.SourceSection != "" {
			body += "\n" + theme.Hint.Render("Source: "+p.SourceSection)
		}
	} else {
		body += theme.Hint.Render("Press t for True, f for False")
	}

	cardWidth := width * 3 / 4
	if cardWidth < 50 {
		cardWidth = 50
	}
	card := theme.Card.Width(cardWidth).Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))

	return b.String()
}
