package prefs

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userprefs "github.com/abhisek/arithtrainer/internal/prefs"
	"github.com/abhisek/arithtrainer/internal/router"
)

func press(s *PrefsScreen, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(msg)
	return cmd
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func selectField(t *testing.T, s *PrefsScreen, k string) {
	t.Helper()
	for range s.fields {
		if s.fields[s.menu.Selected].Key == k {
			return
		}
		press(s, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	t.Fatalf("field %s not reachable", k)
}

func TestPrefsScreen_ChangeModeSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	var saved []userprefs.Preferences
	s := New(userprefs.Default(), path, func(p userprefs.Preferences) { saved = append(saved, p) })

	require.Equal(t, "mode", s.fields[s.menu.Selected].Key)
	press(s, tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, "sigfigs", s.Preferences().Mode)
	assert.True(t, s.dirty)

	cmd := press(s, key('s'))
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.False(t, s.dirty)
	require.Len(t, saved, 1)
	assert.Equal(t, "sigfigs", saved[0].Mode)

	loaded, err := userprefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sigfigs", loaded.Mode)
	assert.True(t, loaded.Radio.SigChecked)
}

func TestPrefsScreen_StepClamps(t *testing.T) {
	s := New(userprefs.Default(), filepath.Join(t.TempDir(), "p.json"), nil)
	selectField(t, s, "weights.add")

	for range 10 {
		press(s, tea.KeyPressMsg{Code: tea.KeyRight})
	}
	assert.Equal(t, userprefs.WeightMax, s.Preferences().Weights.Add)
	for range 10 {
		press(s, tea.KeyPressMsg{Code: tea.KeyLeft})
	}
	assert.Equal(t, userprefs.WeightMin, s.Preferences().Weights.Add)
}

func TestPrefsScreen_ToggleBool(t *testing.T) {
	s := New(userprefs.Default(), filepath.Join(t.TempDir(), "p.json"), nil)
	selectField(t, s, "ops.div")

	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, s.Preferences().Ops.Div)
	assert.False(t, s.editing, "bools flip in place")
}

func TestPrefsScreen_EditNumber(t *testing.T) {
	s := New(userprefs.Default(), filepath.Join(t.TempDir(), "p.json"), nil)
	selectField(t, s, "game_time")

	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.True(t, s.editing)
	assert.Equal(t, "120", s.input.Value())

	s.input.Model.SetValue("")
	for _, r := range "90" {
		press(s, key(r))
	}
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, s.editing)
	assert.Equal(t, 90, s.Preferences().GameTime)
	assert.True(t, s.dirty)
}

func TestPrefsScreen_EditRejectsBadNumber(t *testing.T) {
	s := New(userprefs.Default(), filepath.Join(t.TempDir(), "p.json"), nil)
	selectField(t, s, "game_time")

	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	s.input.Model.SetValue("9e")
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, s.editing, "editor stays open on a bad value")
	assert.True(t, s.statusErr)
	assert.Equal(t, 120, s.Preferences().GameTime)

	press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, s.editing)
	assert.False(t, s.dirty)
}

func TestPrefsScreen_EscWarnsAboutUnsavedChanges(t *testing.T) {
	s := New(userprefs.Default(), filepath.Join(t.TempDir(), "p.json"), nil)
	press(s, tea.KeyPressMsg{Code: tea.KeyRight})

	cmd := press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Contains(t, s.status, "Unsaved changes")

	cmd = press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestPrefsScreen_EscWithoutChangesPops(t *testing.T) {
	s := New(userprefs.Default(), filepath.Join(t.TempDir(), "p.json"), nil)
	cmd := press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestPrefsScreen_SaveError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	called := false
	s := New(userprefs.Default(), filepath.Join(blocker, "preferences.json"), func(userprefs.Preferences) { called = true })
	press(s, tea.KeyPressMsg{Code: tea.KeyRight})
	s.Update(press(s, key('s'))())

	assert.False(t, called)
	assert.True(t, s.dirty)
	assert.True(t, s.statusErr)
	assert.Contains(t, s.status, "Save failed")
}

func TestPrefsScreen_View(t *testing.T) {
	s := New(userprefs.Default(), filepath.Join(t.TempDir(), "p.json"), nil)
	assert.Equal(t, "Preferences", s.Title())

	view := ansi.Strip(s.View(80, 40))
	assert.Contains(t, view, "General")
	assert.Contains(t, view, "Mode")
	assert.Contains(t, view, "‹ range ›")
	assert.Contains(t, view, "Flash incorrect")

	selectField(t, s, "sigfigs.B_exp.hi")
	view = ansi.Strip(s.View(80, 20))
	assert.Contains(t, view, "B exponent to", "selection scrolls into view")
	assert.NotContains(t, view, "Game time")
}
