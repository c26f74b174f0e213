// Package app wires the root Bubble Tea model: screen routing, the shared
// frame, and transient reward toasts.
package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fcsprep/fcsprep/internal/content"
	"github.com/fcsprep/fcsprep/internal/reward"
	"github.com/fcsprep/fcsprep/internal/router"
	"github.com/fcsprep/fcsprep/internal/screen"
	"github.com/fcsprep/fcsprep/internal/screens/history"
	"github.com/fcsprep/fcsprep/internal/screens/home"
	"github.com/fcsprep/fcsprep/internal/studysession"
	"github.com/fcsprep/fcsprep/internal/ui/layout"
)

const toastDuration = 3 * time.Second

// toastClearMsg expires the toast bar; Seq guards against clearing a newer
// toast with an older timer.
type toastClearMsg struct {
	Seq int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	engine *reward.Engine
	feed   *reward.Feed

	width  int
	height int

	toast    string
	toastSeq int
}

// newAppModel creates the root model with the home screen.
func newAppModel(set *content.Set, tracker *studysession.Tracker, engine *reward.Engine, feed *reward.Feed, events history.EventSource) AppModel {
	homeScreen := home.New(set, tracker, engine, events)
	return AppModel{
		router: router.New(homeScreen),
		engine: engine,
		feed:   feed,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case toastClearMsg:
		if msg.Seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)

	// Any study event may have produced reward notifications; surface them
	// as a toast over the footer.
	if notes := m.feed.Drain(); len(notes) > 0 {
		settings := m.engine.Summary().Settings
		m.toast = renderNotes(notes, settings.AnimationsEnabled)
		m.toastSeq++
		seq := m.toastSeq

		cmds := []tea.Cmd{cmd, tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return toastClearMsg{Seq: seq}
		})}
		if settings.SoundEnabled {
			cmds = append(cmds, bellCmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, cmd
}

// renderNotes flattens a notification batch into one toast line.
func renderNotes(notes []reward.Notification, animations bool) string {
	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		switch n.Kind {
		case reward.NoteXP:
			parts = append(parts, fmt.Sprintf("+%d XP %s", n.Amount, n.Reason))
		case reward.NoteLevelUp:
			parts = append(parts, fmt.Sprintf("LEVEL UP! Level %d — %s", n.Level.Level, n.Level.Title))
		case reward.NoteAchievement:
			parts = append(parts, fmt.Sprintf("Achievement unlocked: %s %s", n.Achievement.Icon, n.Achievement.Name))
		case reward.NoteChallenge:
			parts = append(parts, fmt.Sprintf("Challenge complete: %s", n.Challenge.Description))
		}
	}
	line := strings.Join(parts, "  ·  ")
	if animations {
		line = "✨ " + line + " ✨"
	}
	return line
}

// bellCmd rings the terminal bell for reward sounds.
func bellCmd() tea.Msg {
	fmt.Fprint(os.Stdout, "\a")
	return nil
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	summary := m.engine.Summary()
	header := layout.RenderHeader(title, layout.HeaderStats{
		Level:       summary.Level.Level,
		LevelTitle:  summary.Level.Title,
		TotalXP:     summary.TotalXP,
		Streak:      summary.Streak,
		StreakEmoji: summary.StreakEmoji,
	}, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	var toast string
	if m.toast != "" {
		toast = layout.RenderToast(m.toast, m.width)
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if toast != "" {
		contentHeight--
	}
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, toast, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(set *content.Set, tracker *studysession.Tracker, engine *reward.Engine, feed *reward.Feed, events history.EventSource) error {
	p := tea.NewProgram(newAppModel(set, tracker, engine, feed, events))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
