package game

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/arithtrainer/internal/problemgen"
	"github.com/abhisek/arithtrainer/internal/router"
	"github.com/abhisek/arithtrainer/internal/screen"
	"github.com/abhisek/arithtrainer/internal/screens/summary"
	sess "github.com/abhisek/arithtrainer/internal/session"
	"github.com/abhisek/arithtrainer/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return nil
}
func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) OperatorAccuracy(_ context.Context) ([]store.OperatorAccuracyRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) Reset(_ context.Context) error { return nil }

// fakeClock is advanced by hand.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// additionOnly always produces 2 + 3.
func additionOnly() *problemgen.Config {
	cfg := problemgen.DefaultConfig()
	for _, op := range problemgen.Operators {
		cfg.Weights[op] = problemgen.OperatorWeight{Enabled: op == problemgen.OpAdd, Weight: 3}
	}
	cfg.AddA = problemgen.RangeSpec{Lo: 2, Hi: 2}
	cfg.AddB = problemgen.RangeSpec{Lo: 3, Hi: 3}
	return &cfg
}

func testGameScreen(t *testing.T, cfg *problemgen.Config) (*GameScreen, *mockEventRepo, *fakeClock) {
	t.Helper()
	repo := &mockEventRepo{}
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	s := New(Deps{
		Config:    cfg,
		Settings:  sess.DefaultSettings(),
		EventRepo: repo,
		NewSource: func() problemgen.Source { return problemgen.NewSource(1) },
		Now:       clock.Now,
	})
	if cmd := s.Init(); cmd == nil {
		t.Fatal("expected Init to return a command")
	}
	return s, repo, clock
}

func typeAnswer(s *GameScreen, answer string) (screen.Screen, tea.Cmd) {
	var scr screen.Screen = s
	for _, r := range answer {
		scr, _ = scr.Update(keyPress(r))
	}
	return scr.Update(specialKey(tea.KeyEnter))
}

func TestGameScreen_Title(t *testing.T) {
	s, _, _ := testGameScreen(t, additionOnly())
	if s.Title() != "Game" {
		t.Errorf("Title = %q, want %q", s.Title(), "Game")
	}
}

func TestGameScreen_InitStartsRound(t *testing.T) {
	s, repo, _ := testGameScreen(t, additionOnly())

	if s.state.Phase != sess.PhaseActive {
		t.Errorf("Phase = %v, want PhaseActive", s.state.Phase)
	}
	if got := s.state.ProblemText(); got != "2 + 3" {
		t.Errorf("problem = %q, want %q", got, "2 + 3")
	}
	if len(repo.sessionEvents) != 1 || repo.sessionEvents[0].Action != store.ActionStart {
		t.Errorf("session events = %+v, want one start event", repo.sessionEvents)
	}
	if s.state.SessionID == "" {
		t.Error("expected a session id")
	}
}

func TestGameScreen_CorrectAnswer(t *testing.T) {
	s, repo, clock := testGameScreen(t, additionOnly())
	clock.now = clock.now.Add(1500 * time.Millisecond)

	_, cmd := typeAnswer(s, "5.0")
	if cmd == nil {
		t.Error("expected a flash timer command")
	}
	if s.state.Score != 1 || s.state.Answered != 1 {
		t.Errorf("Score/Answered = %d/%d, want 1/1", s.state.Score, s.state.Answered)
	}
	if s.flash != sess.FlashGreen {
		t.Errorf("flash = %v, want FlashGreen", s.flash)
	}
	if s.input.Value() != "" {
		t.Errorf("input = %q, want cleared", s.input.Value())
	}
	if len(repo.answerEvents) != 1 {
		t.Fatalf("answer events = %d, want 1", len(repo.answerEvents))
	}
	ev := repo.answerEvents[0]
	if !ev.Correct || ev.LearnerAnswer != "5" || ev.CorrectAnswer != "5" || ev.ProblemText != "2 + 3" {
		t.Errorf("answer event = %+v", ev)
	}
	if ev.TimeMs != 1500 {
		t.Errorf("TimeMs = %d, want 1500", ev.TimeMs)
	}
}

func TestGameScreen_IncorrectAnswer(t *testing.T) {
	s, repo, _ := testGameScreen(t, additionOnly())

	typeAnswer(s, "6")
	if s.state.Score != 0 || s.state.Answered != 1 {
		t.Errorf("Score/Answered = %d/%d, want 0/1", s.state.Score, s.state.Answered)
	}
	if s.flash != sess.FlashRed {
		t.Errorf("flash = %v, want FlashRed", s.flash)
	}
	if s.state.LastFeedback.Message != "The correct answer to the last problem was: 5" {
		t.Errorf("Message = %q", s.state.LastFeedback.Message)
	}
	if len(repo.answerEvents) != 1 || repo.answerEvents[0].Correct {
		t.Errorf("answer events = %+v", repo.answerEvents)
	}
}

func TestGameScreen_InvalidAnswerKeepsProblem(t *testing.T) {
	s, repo, _ := testGameScreen(t, additionOnly())
	before := s.state.Current

	typeAnswer(s, "-.")
	if s.state.Answered != 0 || len(s.state.History) != 0 {
		t.Error("invalid input must not count as an answer")
	}
	if s.state.Current != before {
		t.Error("problem must stay on screen after invalid input")
	}
	if s.state.LastFeedback.Message != sess.MsgInvalid {
		t.Errorf("Message = %q, want %q", s.state.LastFeedback.Message, sess.MsgInvalid)
	}
	if len(repo.answerEvents) != 0 {
		t.Errorf("answer events = %d, want 0", len(repo.answerEvents))
	}
}

func TestGameScreen_EmptyInputIsInvalid(t *testing.T) {
	s, repo, _ := testGameScreen(t, additionOnly())
	before := s.state.Current

	_, cmd := typeAnswer(s, "")
	if cmd == nil {
		t.Error("expected a flash command for empty input")
	}
	if s.state.LastFeedback.Kind != sess.FeedbackInvalid {
		t.Errorf("Kind = %v, want FeedbackInvalid", s.state.LastFeedback.Kind)
	}
	if s.state.LastFeedback.Message != sess.MsgInvalid {
		t.Errorf("Message = %q, want %q", s.state.LastFeedback.Message, sess.MsgInvalid)
	}
	if s.flash != sess.FlashRed {
		t.Errorf("flash = %v, want FlashRed", s.flash)
	}
	if s.state.Current != before || s.state.Answered != 0 {
		t.Error("empty input must keep the problem and not count as an answer")
	}
	if len(repo.answerEvents) != 0 {
		t.Errorf("answer events = %d, want 0", len(repo.answerEvents))
	}
}

func TestGameScreen_StaleFlashIgnored(t *testing.T) {
	s, _, _ := testGameScreen(t, additionOnly())

	typeAnswer(s, "6")
	typeAnswer(s, "5")
	s.Update(flashDoneMsg{seq: 1})
	if s.flash != sess.FlashGreen {
		t.Errorf("flash = %v, want FlashGreen after stale done", s.flash)
	}
	s.Update(flashDoneMsg{seq: 2})
	if s.flash != sess.FlashNone {
		t.Errorf("flash = %v, want FlashNone", s.flash)
	}
}

func TestGameScreen_TimeUp(t *testing.T) {
	s, repo, clock := testGameScreen(t, additionOnly())
	typeAnswer(s, "5")

	clock.now = clock.now.Add(30 * time.Second)
	_, cmd := s.Update(timerTickMsg(clock.now))
	if cmd == nil {
		t.Fatal("expected next tick")
	}
	if s.state.Phase != sess.PhaseActive {
		t.Fatal("round ended early")
	}

	clock.now = clock.now.Add(sess.DefaultGameTime)
	_, cmd = s.Update(timerTickMsg(clock.now))
	if cmd == nil {
		t.Fatal("expected summary command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}

	last := repo.sessionEvents[len(repo.sessionEvents)-1]
	if last.Action != store.ActionEnd || last.Score != 1 || last.Answered != 1 {
		t.Errorf("end event = %+v", last)
	}
	if last.DurationSecs != int(sess.DefaultGameTime.Seconds()) {
		t.Errorf("DurationSecs = %d", last.DurationSecs)
	}
}

func TestGameScreen_QuitConfirm(t *testing.T) {
	s, repo, _ := testGameScreen(t, additionOnly())

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	if !s.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	scr, _ = scr.Update(keyPress('n'))
	if s.confirmQuit {
		t.Fatal("expected quit confirmation dismissed")
	}

	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if s.state.Phase != sess.PhaseEnded {
		t.Errorf("Phase = %v, want PhaseEnded", s.state.Phase)
	}
	if got := repo.sessionEvents[len(repo.sessionEvents)-1].Action; got != store.ActionEnd {
		t.Errorf("last action = %q, want end", got)
	}
}

func TestGameScreen_NoOperator(t *testing.T) {
	cfg := additionOnly()
	cfg.Weights[problemgen.OpAdd] = problemgen.OperatorWeight{Enabled: false, Weight: 3}
	s, _, _ := testGameScreen(t, cfg)

	if got := s.state.ProblemText(); got != sess.NoOperatorPrompt {
		t.Errorf("problem = %q, want %q", got, sess.NoOperatorPrompt)
	}
	typeAnswer(s, "5")
	if s.state.Answered != 0 {
		t.Error("no answer can be graded without a problem")
	}
	if s.View(80, 20) == "" {
		t.Error("expected non-empty view")
	}
}

func TestGameScreen_NilRepo(t *testing.T) {
	s := New(Deps{Config: additionOnly(), Settings: sess.DefaultSettings()})
	s.Init()
	typeAnswer(s, "5")
	if s.state.Score != 1 {
		t.Errorf("Score = %d, want 1", s.state.Score)
	}
}

func TestGameScreen_StatusAndHints(t *testing.T) {
	s, _, _ := testGameScreen(t, additionOnly())
	if got := s.Status(); got != "Score 0   2:00" {
		t.Errorf("Status = %q", got)
	}
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
	if s.View(80, 20) == "" {
		t.Error("expected non-empty view")
	}
}
