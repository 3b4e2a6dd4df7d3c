package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/arithtrainer/internal/router"
	"github.com/abhisek/arithtrainer/internal/screen"
	"github.com/abhisek/arithtrainer/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		SessionID: "test-session",
		Duration:  2 * time.Minute,
		Score:     2,
		Answered:  3,
		Accuracy:  float64(2) / float64(3),
		History: []session.HistoryEntry{
			{Operator: "+", Problem: "12 + 30", User: "42", Correct: "42", OK: true},
			{Operator: "*", Problem: "1.5 * 3", User: "4.6", Correct: "4.5", OK: false},
			{Operator: "/", Problem: "84 / 7", User: "12", Correct: "12", OK: true},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Round Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Round Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), nil)
	view := ansi.Strip(s.View(100, 30))

	for _, want := range []string{"Score: 2", "Answered: 3", "Accuracy: 67%", "Time: 2:00",
		"Problem", "Your answer", "Correct answer", "1.5 * 3", "4.6", "4.5"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestSummaryScreen_Empty(t *testing.T) {
	s := New(&session.Summary{}, nil)
	view := ansi.Strip(s.View(80, 24))
	if !strings.Contains(view, "No problems answered.") {
		t.Errorf("expected empty message, got %q", view)
	}
}

func TestRenderTable_Truncates(t *testing.T) {
	out := ansi.Strip(renderTable(testSummary().History, 0, 1))
	if !strings.Contains(out, "12 + 30") {
		t.Error("expected first row")
	}
	if strings.Contains(out, "84 / 7") {
		t.Error("expected last row to be cut")
	}
	if !strings.Contains(out, "2 more") {
		t.Error("expected remaining count")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_Replay(t *testing.T) {
	next := New(testSummary(), nil)
	s := New(testSummary(), func() screen.Screen { return next })

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on R")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if msg.Screen != next {
		t.Error("expected replay screen")
	}
}

func TestSummaryScreen_ReplayDisabled(t *testing.T) {
	s := New(testSummary(), nil)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("expected no command without replay")
	}
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}

func TestSummaryScreen_Scroll(t *testing.T) {
	s := New(testSummary(), nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 2 {
		t.Errorf("offset = %d, want 2", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 1 {
		t.Errorf("offset = %d, want 1", s.offset)
	}
}
