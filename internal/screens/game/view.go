package game

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/arithtrainer/internal/session"
	"github.com/abhisek/arithtrainer/internal/ui/components"
	"github.com/abhisek/arithtrainer/internal/ui/layout"
	"github.com/abhisek/arithtrainer/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	content := s.renderRound(width)
	switch s.flash {
	case sess.FlashGreen:
		return flashStyle(theme.FlashGreen, width, height).Render(content)
	case sess.FlashRed:
		return flashStyle(theme.FlashRed, width, height).Render(content)
	}
	return content
}

func flashStyle(bg color.Color, width, height int) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Width(width).Height(height)
}

// renderRound renders the problem, answer field, result line and clock.
func (s *GameScreen) renderRound(width int) string {
	state := s.state
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Mode: %s", state.Mode))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d/%d  ",
			lipgloss.NewStyle().Foreground(theme.Success).Render("*"),
			state.Score,
			state.Answered,
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	left := state.TimeLeft()
	pct := 0.0
	if total := state.Settings.GameTime; total > 0 {
		pct = float64(left) / float64(total)
	}
	bar := components.NewProgressBar("Time", pct, layout.FormatClock(left), min(width-4, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n\n")

	problemStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	if state.Current == nil {
		problemStyle = problemStyle.Foreground(theme.Accent)
	}
	b.WriteString(problemStyle.Render(state.ProblemText()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View()))
	b.WriteString("\n\n")

	b.WriteString(renderResultLine(state.LastFeedback, width))
	return b.String()
}

func renderResultLine(fb sess.Feedback, width int) string {
	if fb.Message == "" {
		return ""
	}
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch fb.Kind {
	case sess.FeedbackCorrect:
		style = style.Foreground(theme.Success).Bold(true)
	case sess.FeedbackIncorrect:
		style = style.Foreground(theme.Error)
	default:
		style = style.Foreground(theme.Accent)
	}
	return style.Render(fb.Message)
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End round early?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Your score so far will be saved."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, end round"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your round...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
