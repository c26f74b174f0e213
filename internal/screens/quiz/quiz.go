// Package quiz is the multiple-choice practice test screen.
package quiz

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

// QuizScreen serves the question bank. Answers are forwarded through the
// tracker, which owns first-answer dedup and full-test detection; the screen
// keeps only presentation state.
type QuizScreen struct {
	set     *content.Set
	tracker *studysession.Tracker

	questions  []content.Question // filtered view
	categories []string
	catIndex   int // 0 = all categories
	index      int
	choice     components.MultiChoice
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
)

// New creates the quiz screen over the full question bank.
func New(set *content.Set, tracker *studysession.Tracker) *QuizScreen {
	s := &QuizScreen{
		set:        set,
		tracker:    tracker,
		categories: set.QuestionCategories(),
	}
	s.applyFilter()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Practice Test"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "c", Description: "Category"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.index > 0 {
			s.index--
			s.loadQuestion()
		}
		return s, nil
	case "right", "l", "n":
		if s.index < len(s.questions)-1 {
			s.index++
			s.loadQuestion()
		}
		return s, nil
	case "c":
		s.catIndex = (s.catIndex + 1) % (len(s.categories) + 1)
		s.applyFilter()
		return s, nil
	}

	wasSubmitted := s.choice.Submitted
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)

	if s.choice.Submitted && !wasSubmitted {
		s.recordAnswer()
	}
	return s, cmd
}

// recordAnswer forwards the just-submitted answer and, when the quiz is
// filtered to one category, reports the running category score.
func (s *QuizScreen) recordAnswer() {
	if len(s.questions) == 0 {
		return
	}
	ctx := context.Background()
	q := s.questions[s.index]

	_, _ = s.tracker.QuestionAnswered(ctx, q.ID, s.choice.ChosenKey, s.choice.IsCorrect())

	if s.catIndex > 0 {
		answered, correct := 0, 0
		for _, cq := range s.questions {
			choice, ok := s.tracker.Answer(cq.ID)
			if !ok {
				continue
			}
			answered++
			if choice == cq.Correct {
				correct++
			}
		}
		_ = s.tracker.ReportCategoryScore(ctx, correct, answered)
	}
}

// applyFilter rebuilds the filtered question list and reloads the current
// question.
func (s *QuizScreen) applyFilter() {
	s.questions = s.questions[:0]
	for _, q := range s.set.Questions {
		if s.catIndex > 0 && q.Category != s.categories[s.catIndex-1] {
			continue
		}
		s.questions = append(s.questions, q)
	}
	s.index = 0
	s.loadQuestion()
}

// loadQuestion builds the choice component for the current question,
// restoring a previously submitted answer so it cannot be changed.
func (s *QuizScreen) loadQuestion() {
	if len(s.questions) == 0 {
		s.choice = components.MultiChoice{}
		return
	}
	q := s.questions[s.index]

	opts := make([]components.ChoiceOption, 0, len(q.Options))
	for _, k := range content.OptionKeys(q.Options) {
		opts = append(opts, components.ChoiceOption{Key: k, Text: q.Options[k]})
	}
	s.choice = components.NewMultiChoice(q.Text, opts, q.Correct)

	if prior, answered := s.tracker.Answer(q.ID); answered {
		s.choice.Submitted = true
		s.choice.ChosenKey = prior
	}
}

func (s *QuizScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	category := "All categories"
	if s.catIndex > 0 {
		category = s.categories[s.catIndex-1]
	}

	if len(s.questions) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No questions in this category.")))
		return b.String()
	}

	q := s.questions[s.index]
	header := fmt.Sprintf("Question %d of %d  ·  %s  ·  %s",
		s.index+1, len(s.questions), category, q.Difficulty)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(header)))
	b.WriteString("\n\n")

	cardWidth := width * 3 / 4
	if cardWidth < 50 {
		cardWidth = 50
	}
	body := s.choice.View()

	if s.choice.Submitted {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(q.Explanation)
		if len(q.StudyPages) > 0 {
			body += "\n" + theme.Hint.Render("Study pages: "+strings.Join(q.StudyPages, ", "))
		}
	}

	card := theme.Card.Width(cardWidth).Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n")

	tally := fmt.Sprintf("Answered %d  ·  Correct %d",
		s.tracker.AnsweredCount(), s.tracker.CorrectCount())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(tally)))

	return b.String()
}
