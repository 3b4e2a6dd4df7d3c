package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/arithtrainer/internal/session"
	"github.com/abhisek/arithtrainer/internal/ui/components"
	"github.com/abhisek/arithtrainer/internal/ui/theme"
)

const arcadeTitleFull = `   _        _ _   _      _            _
  /_\  _ _ (_) |_| |_   | |_ _ _ __ _(_)_ _  ___ _ _
 / _ \| '_|| |  _| ' \  |  _| '_/ _` + "`" + ` | | ' \/ -_) '_|
/_/ \_\_|  |_|\__|_||_|  \__|_| \__,_|_|_||_\___|_|`

const arcadeTitleCompact = "A R I T H T R A I N E R"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders best score, last round and round count in a
// double-bordered box matching content width.
func renderStatsBar(stats Stats, mode string, cw int, compact bool) string {
	bestStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	lastStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	modeStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	last := "-"
	if stats.HasLast {
		last = fmt.Sprintf("%d/%d", stats.LastScore, stats.LastAnswered)
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			bestStyle.Render(fmt.Sprintf("★%d", stats.Best)),
			lastStyle.Render("◆"+last),
			modeStyle.Render(mode))
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			bestStyle.Render(fmt.Sprintf("★ BEST %d", stats.Best)),
			lastStyle.Render("◆ LAST "+last),
			modeStyle.Render("⚙ "+strings.ToUpper(mode)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	buttons := make([]string, 0, len(items))
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
			continue
		}
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderNoOperatorBanner warns that a round cannot serve problems.
func renderNoOperatorBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + session.NoOperatorPrompt + " (arithtrainer prefs path)")
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
