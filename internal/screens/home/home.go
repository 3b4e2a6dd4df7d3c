// Package home implements the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	userprefs "github.com/abhisek/arithtrainer/internal/prefs"
	"github.com/abhisek/arithtrainer/internal/router"
	"github.com/abhisek/arithtrainer/internal/screen"
	"github.com/abhisek/arithtrainer/internal/screens/game"
	"github.com/abhisek/arithtrainer/internal/screens/history"
	prefsscreen "github.com/abhisek/arithtrainer/internal/screens/prefs"
	"github.com/abhisek/arithtrainer/internal/store"
	"github.com/abhisek/arithtrainer/internal/ui/components"
	"github.com/abhisek/arithtrainer/internal/ui/layout"
)

// statsWindow is how many recent rounds feed the best score.
const statsWindow = 100

// Stats is the dashboard shown above the menu.
type Stats struct {
	Rounds       int
	Best         int
	HasLast      bool
	LastScore    int
	LastAnswered int
}

type statsLoadedMsg struct {
	Stats Stats
	Err   error
}

// Menu entries.
const (
	itemStart = iota
	itemHistory
	itemPrefs
	itemExit
)

// PrefsFile is the preferences document the menu edits and where it lives.
type PrefsFile struct {
	Prefs userprefs.Preferences
	Path  string
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps            game.Deps
	prefsFile       *PrefsFile
	menu            components.Menu
	menuLabels      []string
	disabled        map[int]bool
	operatorEnabled bool
	stats           Stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen. With a nil prefsFile the PREFERENCES entry
// is disabled.
func New(deps game.Deps, prefsFile *PrefsFile) *HomeScreen {
	h := &HomeScreen{
		deps:       deps,
		prefsFile:  prefsFile,
		menuLabels: []string{"START GAME", "HISTORY", "PREFERENCES", "EXIT GAME"},
		disabled: map[int]bool{
			itemHistory: deps.EventRepo == nil,
			itemPrefs:   prefsFile == nil,
		},
		operatorEnabled: anyOperatorEnabled(deps),
	}

	// Actions read h.deps so a saved preferences change reaches the next round.
	items := []components.MenuItem{
		itemStart: {Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: game.New(h.deps)}
			}
		}},
		itemHistory: {Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.deps.EventRepo)}
			}
		}},
		itemPrefs: {Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: prefsscreen.New(h.prefsFile.Prefs, h.prefsFile.Path, h.applyPrefs)}
			}
		}},
		itemExit: {Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	for i := range items {
		items[i].Label = h.menuLabels[i]
		items[i].Disabled = h.disabled[i]
	}
	h.menu = components.NewMenu(items)
	return h
}

// applyPrefs swaps in saved preferences. Rounds already running keep the
// config they started with.
func (h *HomeScreen) applyPrefs(p userprefs.Preferences) {
	h.prefsFile.Prefs = p
	cfg := p.GenerationConfig()
	h.deps.Config = &cfg
	h.deps.Settings = p.Settings()
	h.operatorEnabled = anyOperatorEnabled(h.deps)
	if h.deps.Logger != nil {
		h.deps.Logger.Info("preferences applied", "mode", p.Mode, "path", h.prefsFile.Path)
	}
}

func anyOperatorEnabled(deps game.Deps) bool {
	if deps.Config == nil {
		return false
	}
	for _, w := range deps.Config.Weights {
		if w.Enabled {
			return true
		}
	}
	return false
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Refresh reloads the dashboard after a round or the history screen.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.EventRepo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		recs, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: statsWindow})
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Stats: computeStats(recs)}
	}
}

// computeStats summarises rounds ordered newest first.
func computeStats(recs []store.SessionSummaryRecord) Stats {
	var s Stats
	s.Rounds = len(recs)
	for _, r := range recs {
		s.Best = max(s.Best, r.Score)
	}
	if len(recs) > 0 {
		s.HasLast = true
		s.LastScore = recs[0].Score
		s.LastAnswered = recs[0].Answered
	}
	return s
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err == nil {
			h.stats = msg.Stats
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header + footer + frame gaps
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(chooseMascot(h.operatorEnabled, h.stats), cw))
	}
	mode := ""
	if h.deps.Config != nil {
		mode = string(h.deps.Config.Mode)
	}
	sections = append(sections, renderStatsBar(h.stats, mode, cw, compact))
	if !h.operatorEnabled {
		sections = append(sections, renderNoOperatorBanner(cw))
	}
	sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
