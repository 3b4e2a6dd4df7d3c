package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arithtrainer/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default
	MascotCelebrating                      // Last round was near perfect
	MascotAlert                            // No operator enabled
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ +-×÷│
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ +-×÷│
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ +-×÷│
└─────┘`

// celebrateAccuracy and celebrateMinAnswered decide when the last round
// earns the celebrating mascot.
const (
	celebrateAccuracy    = 0.9
	celebrateMinAnswered = 5
)

// chooseMascot picks the variant for the home screen.
func chooseMascot(operatorEnabled bool, stats Stats) MascotVariant {
	switch {
	case !operatorEnabled:
		return MascotAlert
	case stats.HasLast && stats.LastAnswered >= celebrateMinAnswered &&
		float64(stats.LastScore) >= celebrateAccuracy*float64(stats.LastAnswered):
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
