// Package history lists finished rounds and per-operator accuracy.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/arithtrainer/internal/router"
	"github.com/abhisek/arithtrainer/internal/screen"
	"github.com/abhisek/arithtrainer/internal/store"
	"github.com/abhisek/arithtrainer/internal/ui/layout"
	"github.com/abhisek/arithtrainer/internal/ui/theme"
)

// sessionLimit caps how many rounds are loaded.
const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions  []store.SessionSummaryRecord
	Operators []store.OperatorAccuracyRecord
	Err       error
}

// HistoryScreen displays past rounds.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	operators []store.OperatorAccuracyRecord
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: sessionLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		operators, err := repo.OperatorAccuracy(ctx)
		if err != nil {
			return historyLoadedMsg{Sessions: sessions}
		}
		return historyLoadedMsg{Sessions: sessions, Operators: operators}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.operators = msg.Operators
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No rounds yet. Start a game!")
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(s.operators) > 0 {
		b.WriteString(center.Render(renderOperators(s.operators)))
		b.WriteString("\n\n")
	}

	// Keep the selection in view.
	visible := max(height-6, 1)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(start+visible, len(s.sessions))

	for i := start; i < end; i++ {
		rec := s.sessions[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+formatSession(rec))))
		b.WriteString("\n")
	}
	return b.String()
}

func formatSession(rec store.SessionSummaryRecord) string {
	var accuracy float64
	if rec.Answered > 0 {
		accuracy = float64(rec.Score) / float64(rec.Answered) * 100
	}
	return fmt.Sprintf("%s  %-7s  %3d/%-3d  %3.0f%%  %s",
		rec.Timestamp.Format("Jan 02 15:04"),
		rec.Mode,
		rec.Score, rec.Answered,
		accuracy,
		layout.FormatClock(time.Duration(rec.DurationSecs)*time.Second))
}

func renderOperators(ops []store.OperatorAccuracyRecord) string {
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		color := theme.Success
		if op.Accuracy < 0.75 {
			color = theme.Error
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(color).
			Render(fmt.Sprintf("%s %.0f%% (%d)", op.Operator, op.Accuracy*100, op.Answered)))
	}
	return strings.Join(parts, "    ")
}
