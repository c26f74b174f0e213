// Package scenarios is the case-study practice screen.
package scenarios

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fcsprep/fcsprep/internal/content"
	"github.com/fcsprep/fcsprep/internal/screen"
	"github.com/fcsprep/fcsprep/internal/studysession"
	"github.com/fcsprep/fcsprep/internal/ui/components"
	"github.com/fcsprep/fcsprep/internal/ui/layout"
	"github.com/fcsprep/fcsprep/internal/ui/theme"
)

// ScenariosScreen walks through the scenario bank. Completion is reported on
// the first answer to each scenario regardless of correctness; the tracker
// dedupes repeats.
type ScenariosScreen struct {
	scenarios []content.Scenario
	tracker   *studysession.Tracker

	index  int
	choice components.MultiChoice
}

var (
	_ screen.Screen          = (*ScenariosScreen)(nil)
	_ screen.KeyHintProvider = (*ScenariosScreen)(nil)
)

// New creates the scenarios screen.
func New(scenarios []content.Scenario, tracker *studysession.Tracker) *ScenariosScreen {
	s := &ScenariosScreen{
		scenarios: scenarios,
		tracker:   tracker,
	}
	s.loadScenario()
	return s
}

func (s *ScenariosScreen) Init() tea.Cmd {
	return nil
}

func (s *ScenariosScreen) Title() string {
	return "Scenarios"
}

func (s *ScenariosScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Answer"},
		{Key: "←→", Description: "Scenario"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ScenariosScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.index > 0 {
			s.index--
			s.loadScenario()
		}
		return s, nil
	case "right", "l", "n":
		if s.index < len(s.scenarios)-1 {
			s.index++
			s.loadScenario()
		}
		return s, nil
	}

	wasSubmitted := s.choice.Submitted
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)

	if s.choice.Submitted && !wasSubmitted {
		sc := s.scenarios[s.index]
		_, _ = s.tracker.ScenarioAnswered(context.Background(), sc.ID)
	}
	return s, cmd
}

func (s *ScenariosScreen) loadScenario() {
	if len(s.scenarios) == 0 {
		s.choice = components.MultiChoice{}
		return
	}
	sc := s.scenarios[s.index]

	opts := make([]components.ChoiceOption, 0, len(sc.Options))
	for _, k := range content.OptionKeys(sc.Options) {
		opts = append(opts, components.ChoiceOption{Key: k, Text: sc.Options[k]})
	}
	s.choice = components.NewMultiChoice(sc.Question, opts, sc.Correct)
}

func (s *ScenariosScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	if len(s.scenarios) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No scenarios loaded.")))
		return b.String()
	}

	sc := s.scenarios[s.index]

	header := fmt.Sprintf("Scenario %d of %d  ·  %s", s.index+1, len(s.scenarios), sc.Difficulty)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(header)))
	b.WriteString("\n\n")

	cardWidth := width * 3 / 4
	if cardWidth < 50 {
		cardWidth = 50
	}

	body := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(sc.Title) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(sc.Description) + "\n\n" +
		s.choice.View()

	if s.choice.Submitted {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(sc.Explanation)
		if len(sc.RelatedConcepts) > 0 {
			body += "\n" + theme.Hint.Render("Related: "+strings.Join(sc.RelatedConcepts, ", "))
		}
		if len(sc.StudyPages) > 0 {
			body += "\n" + theme.Hint.Render("Study pages: "+strings.Join(sc.StudyPages, ", "))
		}
	}

	card := theme.Card.Width(cardWidth).Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))

	return b.String()
}
