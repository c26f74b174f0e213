// Package flashcards is the glossary flashcard review screen.
package flashcards

import (
	"context"
	"fmt"
	"math/rand"
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

// FlashcardsScreen flips through glossary terms. Revealing a card's
// definition counts as reviewing it; the shared tracker makes sure each
// distinct card is only rewarded once per run.
type FlashcardsScreen struct {
	all     []content.Term
	deck    []content.Term
	tracker *studysession.Tracker

	index      int
	flipped    bool
	categories []string
	catIndex   int // 0 = all categories
	search     components.SearchInput
}

var (
	_ screen.Screen          = (*FlashcardsScreen)(nil)
	_ screen.KeyHintProvider = (*FlashcardsScreen)(nil)
)

// New creates the flashcard screen over the full term list.
func New(terms []content.Term, tracker *studysession.Tracker) *FlashcardsScreen {
	seen := map[string]bool{}
	var categories []string
	for _, t := range terms {
		if !seen[t.Category] {
			seen[t.Category] = true
			categories = append(categories, t.Category)
		}
	}

	s := &FlashcardsScreen{
		all:        terms,
		tracker:    tracker,
		categories: categories,
		search:     components.NewSearchInput("term or keyword"),
	}
	s.rebuildDeck()
	return s
}

func (s *FlashcardsScreen) Init() tea.Cmd {
	return nil
}

func (s *FlashcardsScreen) Title() string {
	return "Flashcards"
}

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Navigate"},
		{Key: "c", Description: "Category"},
		{Key: "s", Description: "Shuffle"},
		{Key: "/", Description: "Search"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.search.Active() {
		switch kmsg.String() {
		case "enter", "esc":
			if kmsg.String() == "esc" {
				s.search.Deactivate()
			} else {
				s.search.Model.Blur()
			}
			s.rebuildDeck()
			return s, nil
		default:
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			s.rebuildDeck()
			return s, cmd
		}
	}

	switch kmsg.String() {
	case "left", "h":
		if s.index > 0 {
			s.index--
			s.flipped = false
		}
	case "right", "l":
		if s.index < len(s.deck)-1 {
			s.index++
			s.flipped = false
		}
	case " ", "space", "enter":
		s.flip()
	case "c":
		s.catIndex = (s.catIndex + 1) % (len(s.categories) + 1)
		s.rebuildDeck()
	case "s":
		rand.Shuffle(len(s.deck), func(i, j int) {
			s.deck[i], s.deck[j] = s.deck[j], s.deck[i]
		})
		s.index = 0
		s.flipped = false
	case "/":
		return s, s.search.Activate()
	}
	return s, nil
}

// flip toggles the card face. The first reveal of each card reports a
// review.
func (s *FlashcardsScreen) flip() {
	if len(s.deck) == 0 {
		return
	}
	s.flipped = !s.flipped
	if s.flipped {
		t := s.deck[s.index]
		_ = s.tracker.FlashcardRevealed(context.Background(), t.Term, t.Category)
	}
}

func (s *FlashcardsScreen) rebuildDeck() {
	query := strings.ToLower(s.search.Value())

	s.deck = s.deck[:0]
	for _, t := range s.all {
		if s.catIndex > 0 && t.Category != s.categories[s.catIndex-1] {
			continue
		}
		if query != "" && !matches(t, query) {
			continue
		}
		s.deck = append(s.deck, t)
	}
	s.index = 0
	s.flipped = false
}

func matches(t content.Term, query string) bool {
	if strings.Contains(strings.ToLower(t.Term), query) ||
		strings.Contains(strings.ToLower(t.Definition), query) {
		return true
	}
	for _, k := range t.Keywords {
		if strings.Contains(strings.ToLower(k), query) {
			return true
		}
	}
	return false
}

func (s *FlashcardsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	category := "All categories"
	if s.catIndex > 0 {
		category = s.categories[s.catIndex-1]
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(category)))
	b.WriteString("\n")

	if sv := s.search.View(); sv != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, sv))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(s.deck) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No cards match this filter.")))
		return b.String()
	}

	t := s.deck[s.index]

	var face string
	if s.flipped {
		face = lipgloss.NewStyle().Foreground(theme.Text).Render(t.Definition)
		if len(t.Keywords) > 0 {
			face += "\n\n" + theme.Hint.Render("Keywords: "+strings.Join(t.Keywords, ", "))
		}
	} else {
		face = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(t.Term)
		if t.TestRelevant {
			face += "\n\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("Test Relevant")
		}
	}

	cardWidth := width * 2 / 3
	if cardWidth < 40 {
		cardWidth = 40
	}
	card := theme.Card.Width(cardWidth).Align(lipgloss.Center).Render(face)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(fmt.Sprintf("Card %d of %d  ·  %s", s.index+1, len(s.deck), t.Category))))

	return b.String()
}
