// Package prefs edits the preferences file from the terminal UI.
package prefs

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	userprefs "github.com/abhisek/arithtrainer/internal/prefs"
	"github.com/abhisek/arithtrainer/internal/router"
	"github.com/abhisek/arithtrainer/internal/screen"
	"github.com/abhisek/arithtrainer/internal/ui/components"
	"github.com/abhisek/arithtrainer/internal/ui/layout"
	"github.com/abhisek/arithtrainer/internal/ui/theme"
)

const labelWidth = 26

type savedMsg struct {
	Prefs userprefs.Preferences
	Err   error
}

// PrefsScreen lists every preference. Left and right step a value, enter
// types a number, s writes the file.
type PrefsScreen struct {
	prefs  userprefs.Preferences
	path   string
	onSave func(userprefs.Preferences)

	fields []userprefs.Field
	menu   components.Menu

	editing bool
	input   components.TextInput

	dirty        bool
	confirmLeave bool
	status       string
	statusErr    bool
}

var _ screen.Screen = (*PrefsScreen)(nil)
var _ screen.KeyHintProvider = (*PrefsScreen)(nil)

// New creates the screen for p, saved to path. onSave runs after every
// successful write so the caller can pick up the new settings.
func New(p userprefs.Preferences, path string, onSave func(userprefs.Preferences)) *PrefsScreen {
	s := &PrefsScreen{
		prefs:  p,
		path:   path,
		onSave: onSave,
		fields: userprefs.Fields(),
	}
	items := make([]components.MenuItem, len(s.fields))
	for i, f := range s.fields {
		items[i] = components.MenuItem{Label: f.Label, Action: s.activate(f)}
	}
	s.menu = components.NewMenu(items)
	return s
}

// activate is the enter action: ints open the editor, the rest flip.
func (s *PrefsScreen) activate(f userprefs.Field) func() tea.Cmd {
	return func() tea.Cmd {
		if f.Kind != userprefs.KindInt {
			s.step(f, 1)
			return nil
		}
		s.editing = true
		s.input = components.NewTextInput(fmt.Sprintf("%d..%d", f.Min, f.Max), true, 6)
		s.input.Model.SetValue(f.Get(&s.prefs))
		s.input.Model.CursorEnd()
		return s.input.Init()
	}
}

func (s *PrefsScreen) step(f userprefs.Field, delta int) {
	f.Step(&s.prefs, delta)
	s.dirty = true
	s.status = ""
}

// Preferences returns the preferences as currently edited.
func (s *PrefsScreen) Preferences() userprefs.Preferences {
	return s.prefs
}

func (s *PrefsScreen) Init() tea.Cmd {
	return nil
}

func (s *PrefsScreen) Title() string {
	return "Preferences"
}

func (s *PrefsScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Edit"},
		{Key: "S", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PrefsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.setStatus("Save failed: "+msg.Err.Error(), true)
			return s, nil
		}
		s.dirty = false
		s.setStatus("Saved to "+s.path, false)
		if s.onSave != nil {
			s.onSave(msg.Prefs)
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.editing {
			return s, s.updateEditor(msg)
		}
		key := msg.String()
		if key != "esc" && key != "q" {
			s.confirmLeave = false
		}
		switch key {
		case "esc", "q":
			if s.dirty && !s.confirmLeave {
				s.confirmLeave = true
				s.setStatus("Unsaved changes. Press s to save or Esc again to discard.", true)
				return s, nil
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "s":
			return s, s.save()
		case "left", "h":
			s.step(s.fields[s.menu.Selected], -1)
			return s, nil
		case "right", "l", " ", "space":
			s.step(s.fields[s.menu.Selected], 1)
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	if s.editing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PrefsScreen) updateEditor(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.editing = false
		s.status = ""
		return nil
	case "enter":
		f := s.fields[s.menu.Selected]
		if err := s.prefs.Set(f.Key, s.input.Value()); err != nil {
			s.input.Submit(false)
			s.setStatus(err.Error(), true)
			return nil
		}
		s.editing = false
		s.dirty = true
		s.status = ""
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *PrefsScreen) save() tea.Cmd {
	p, path := s.prefs, s.path
	return func() tea.Msg {
		return savedMsg{Prefs: p, Err: userprefs.Save(path, p)}
	}
}

func (s *PrefsScreen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusErr = isErr
}

func (s *PrefsScreen) View(width, height int) string {
	type line struct {
		text  string
		field int // -1 for group headings
	}
	var lines []line
	group := ""
	for i, f := range s.fields {
		if f.Group != group {
			group = f.Group
			if len(lines) > 0 {
				lines = append(lines, line{field: -1})
			}
			lines = append(lines, line{text: theme.TableHeader.Render(group), field: -1})
		}
		lines = append(lines, line{text: s.renderField(i, f), field: i})
	}

	// Keep the selection in view.
	visible := max(height-5, 3)
	selectedLine := 0
	for i, l := range lines {
		if l.field == s.menu.Selected {
			selectedLine = i
			break
		}
	}
	start := 0
	if selectedLine >= visible {
		start = selectedLine - visible + 1
	}
	end := min(start+visible, len(lines))

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(labelWidth+14).Render(l.text)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case s.status != "" && s.statusErr:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Foreground(theme.Error).Render(s.status)))
	case s.status != "":
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Foreground(theme.Success).Render(s.status)))
	case s.dirty:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Unsaved changes")))
	}
	return b.String()
}

func (s *PrefsScreen) renderField(i int, f userprefs.Field) string {
	label := fmt.Sprintf("%-*s", labelWidth, f.Label)
	value := formatValue(f, f.Get(&s.prefs))
	if i != s.menu.Selected {
		return lipgloss.NewStyle().Foreground(theme.Text).Render("  " + label + value)
	}
	if s.editing {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ "+label) + s.input.View()
	}
	return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ " + label + "‹ " + value + " ›")
}

func formatValue(f userprefs.Field, v string) string {
	if f.Kind != userprefs.KindBool {
		return v
	}
	if v == "true" {
		return "on"
	}
	return "off"
}
