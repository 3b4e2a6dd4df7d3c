// Package summary shows the result table of a finished round.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arithtrainer/internal/router"
	"github.com/abhisek/arithtrainer/internal/screen"
	"github.com/abhisek/arithtrainer/internal/session"
	"github.com/abhisek/arithtrainer/internal/ui/layout"
	"github.com/abhisek/arithtrainer/internal/ui/theme"
)

// Column headers of the result table.
var columns = []string{"Problem", "Your answer", "Correct answer"}

// SummaryScreen displays the round summary.
type SummaryScreen struct {
	summary *session.Summary
	replay  func() screen.Screen
	offset  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. replay builds the screen for another
// round; nil disables replay.
func New(summary *session.Summary, replay func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{summary: summary, replay: replay}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Round Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "↑↓", Description: "Scroll"},
	}
	if s.replay != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Play again"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "r", "R":
		if s.replay != nil {
			next := s.replay()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.summary != nil && s.offset < len(s.summary.History)-1 {
			s.offset++
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Time's up!"))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Score: %d        Answered: %d        Accuracy: %.0f%%        Time: %s",
		sum.Score, sum.Answered, sum.Accuracy*100, layout.FormatClock(sum.Duration))
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	if len(sum.History) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("No problems answered."))
		return b.String()
	}

	// Rows that fit under the title, stats and header lines.
	visible := max(height-8, 1)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderTable(sum.History, s.offset, visible)))
	return b.String()
}

// renderTable renders history rows [offset, offset+visible) under a header.
// Correct rows are green, incorrect rows red.
func renderTable(history []session.HistoryEntry, offset, visible int) string {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, e := range history {
		for i, cell := range row(e) {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	b.WriteString(formatRow(columns, widths, theme.TableHeader))
	b.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.Repeat("─", total+3*(len(widths)-1))))
	b.WriteString("\n")

	end := min(offset+visible, len(history))
	for _, e := range history[offset:end] {
		style := theme.Incorrect
		if e.OK {
			style = theme.Correct
		}
		b.WriteString(formatRow(row(e), widths, style))
		b.WriteString("\n")
	}
	if end < len(history) {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("… %d more", len(history)-end)))
	}
	return b.String()
}

func row(e session.HistoryEntry) []string {
	return []string{e.Problem, e.User, e.Correct}
}

func formatRow(cells []string, widths []int, style lipgloss.Style) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
	}
	return style.Render(strings.Join(padded, " │ "))
}
