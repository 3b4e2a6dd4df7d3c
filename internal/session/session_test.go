package session

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/arithtrainer/internal/exact"
	"github.com/abhisek/arithtrainer/internal/problemgen"
)

var t0 = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// stubGenerator returns its outcomes in order, then repeats the last.
type stubGenerator struct {
	outcomes []problemgen.Outcome
	err      error
	calls    int
}

func (g *stubGenerator) Generate() (problemgen.Outcome, error) {
	if g.err != nil {
		return problemgen.Outcome{}, g.err
	}
	i := min(g.calls, len(g.outcomes)-1)
	g.calls++
	return g.outcomes[i], nil
}

func outcome(op problemgen.Operator, a, b string) problemgen.Outcome {
	p := problemgen.Problem{Operator: op, Operand1: exact.MustParse(a), Operand2: exact.MustParse(b)}
	r, err := p.Result()
	if err != nil {
		panic(err)
	}
	return problemgen.Outcome{Problem: p, Result: r, Attempts: 1}
}

func testState(t *testing.T, settings Settings) *State {
	t.Helper()
	state := NewState(settings, problemgen.ModeRange, "test-session-id")
	Start(state, t0)
	gen := &stubGenerator{outcomes: []problemgen.Outcome{outcome(problemgen.OpAdd, "3", "4")}}
	if err := NextProblem(state, gen, t0); err != nil {
		t.Fatalf("NextProblem: %v", err)
	}
	return state
}

func TestHandleAnswer_Correct(t *testing.T) {
	state := testState(t, DefaultSettings())

	fb := HandleAnswer(state, "7.0", t0.Add(2*time.Second))
	if fb.Kind != FeedbackCorrect {
		t.Fatalf("Kind = %v, want FeedbackCorrect", fb.Kind)
	}
	if fb.Message != "Correct!" {
		t.Errorf("Message = %q", fb.Message)
	}
	if fb.Flash != FlashGreen {
		t.Errorf("Flash = %v, want FlashGreen", fb.Flash)
	}
	if state.Score != 1 || state.Answered != 1 {
		t.Errorf("Score/Answered = %d/%d, want 1/1", state.Score, state.Answered)
	}
	if len(state.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(state.History))
	}
	got := state.History[0]
	want := HistoryEntry{Operator: problemgen.OpAdd, Problem: "3 + 4", User: "7", Correct: "7", OK: true, Latency: 2 * time.Second}
	if got != want {
		t.Errorf("history entry = %+v, want %+v", got, want)
	}
}

func TestHandleAnswer_IncorrectMessages(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		message  string
		flash    Flash
	}{
		{
			name:     "show correct",
			settings: Settings{ShowCorrect: true, FlashIncorrect: true},
			message:  "The correct answer to the last problem was: 7",
			flash:    FlashRed,
		},
		{
			name:     "show problem text",
			settings: Settings{ShowCorrect: true, ShowProblemText: true, FlashIncorrect: true},
			message:  "The correct answer to 3 + 4 is 7",
			flash:    FlashRed,
		},
		{
			name:     "red flash off",
			settings: Settings{ShowCorrect: true},
			message:  "The correct answer to the last problem was: 7",
			flash:    FlashNone,
		},
		{
			name:     "correct answers hidden",
			settings: Settings{FlashIncorrect: true, ShowProblemText: true},
			message:  "",
			flash:    FlashNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := testState(t, tc.settings)
			fb := HandleAnswer(state, "8", t0)
			if fb.Kind != FeedbackIncorrect {
				t.Fatalf("Kind = %v, want FeedbackIncorrect", fb.Kind)
			}
			if fb.Message != tc.message {
				t.Errorf("Message = %q, want %q", fb.Message, tc.message)
			}
			if fb.Flash != tc.flash {
				t.Errorf("Flash = %v, want %v", fb.Flash, tc.flash)
			}
			if state.Score != 0 || state.Answered != 1 || len(state.History) != 1 {
				t.Errorf("score %d answered %d history %d", state.Score, state.Answered, len(state.History))
			}
			if fb.Entry == nil || fb.Entry.User != "8" || fb.Entry.OK {
				t.Errorf("unexpected entry %+v", fb.Entry)
			}
		})
	}
}

func TestHandleAnswer_Invalid(t *testing.T) {
	state := testState(t, DefaultSettings())
	before := state.Current

	fb := HandleAnswer(state, "seven", t0)
	if fb.Kind != FeedbackInvalid {
		t.Fatalf("Kind = %v, want FeedbackInvalid", fb.Kind)
	}
	if fb.Message != "Please enter a valid number!" {
		t.Errorf("Message = %q", fb.Message)
	}
	if fb.Flash != FlashRed {
		t.Errorf("Flash = %v, want FlashRed", fb.Flash)
	}
	if fb.Entry != nil {
		t.Error("invalid input must not produce a history entry")
	}
	if state.Score != 0 || state.Answered != 0 || len(state.History) != 0 {
		t.Error("invalid input must not change score or history")
	}
	if state.Current != before {
		t.Error("invalid input must not change the problem")
	}
}

func TestHandleAnswer_InvalidQuiet(t *testing.T) {
	state := testState(t, Settings{FlashIncorrect: true})

	fb := HandleAnswer(state, "", t0)
	if fb.Kind != FeedbackInvalid || fb.Message != "" || fb.Flash != FlashNone {
		t.Errorf("unexpected feedback %+v", fb)
	}
}

func TestHandleAnswer_NoProblem(t *testing.T) {
	state := NewState(DefaultSettings(), problemgen.ModeRange, "id")
	Start(state, t0)
	if fb := HandleAnswer(state, "1", t0); fb.Kind != FeedbackNone {
		t.Errorf("Kind = %v, want FeedbackNone", fb.Kind)
	}
}

func TestNextProblem_NoOperator(t *testing.T) {
	state := testState(t, DefaultSettings())

	err := NextProblem(state, &stubGenerator{err: problemgen.ErrNoOperator}, t0)
	if err != nil {
		t.Fatalf("ErrNoOperator should become a prompt, got %v", err)
	}
	if state.Current != nil {
		t.Error("expected no current problem")
	}
	if state.ProblemText() != "Select at least one operation." {
		t.Errorf("ProblemText() = %q", state.ProblemText())
	}
}

func TestNextProblem_OtherError(t *testing.T) {
	state := testState(t, DefaultSettings())
	boom := errors.New("boom")
	if err := NextProblem(state, &stubGenerator{err: boom}, t0); !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestNextProblem_CountsFallbacks(t *testing.T) {
	state := testState(t, DefaultSettings())
	fallback := outcome(problemgen.OpAdd, "1", "1")
	fallback.Fallback = true

	if err := NextProblem(state, &stubGenerator{outcomes: []problemgen.Outcome{fallback}}, t0); err != nil {
		t.Fatal(err)
	}
	if state.Fallbacks != 1 || state.ProblemText() != "1 + 1" {
		t.Errorf("fallbacks %d problem %q", state.Fallbacks, state.ProblemText())
	}
}

func TestTick_Expiry(t *testing.T) {
	state := testState(t, Settings{GameTime: 30 * time.Second, ShowCorrect: true})

	if Tick(state, t0.Add(10*time.Second)) {
		t.Fatal("round should not be over after 10s")
	}
	if state.TimeLeft() != 20*time.Second {
		t.Errorf("TimeLeft() = %v, want 20s", state.TimeLeft())
	}
	if !Tick(state, t0.Add(31*time.Second)) {
		t.Fatal("round should be over after 31s")
	}
	if state.Phase != PhaseEnded || state.TimeLeft() != 0 {
		t.Errorf("phase %v time left %v", state.Phase, state.TimeLeft())
	}
	if fb := HandleAnswer(state, "7", t0.Add(32*time.Second)); fb.Kind != FeedbackNone {
		t.Error("answers after the round ends are ignored")
	}
}

func TestEnd_Early(t *testing.T) {
	state := testState(t, DefaultSettings())
	End(state, t0.Add(5*time.Second))
	if state.Phase != PhaseEnded || state.Elapsed != 5*time.Second {
		t.Errorf("phase %v elapsed %v", state.Phase, state.Elapsed)
	}
}

func TestNewState_DefaultGameTime(t *testing.T) {
	state := NewState(Settings{}, problemgen.ModeSigFigs, "id")
	if state.Settings.GameTime != DefaultGameTime {
		t.Errorf("GameTime = %v, want %v", state.Settings.GameTime, DefaultGameTime)
	}
}

func TestBuildSummary(t *testing.T) {
	state := testState(t, DefaultSettings())
	HandleAnswer(state, "7", t0)
	HandleAnswer(state, "6", t0)
	HandleAnswer(state, "x", t0)
	Tick(state, t0.Add(45*time.Second))

	sum := BuildSummary(state)
	if sum.Score != 1 || sum.Answered != 2 {
		t.Errorf("score/answered = %d/%d, want 1/2", sum.Score, sum.Answered)
	}
	if sum.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", sum.Accuracy)
	}
	if sum.Duration != 45*time.Second {
		t.Errorf("Duration = %v, want 45s", sum.Duration)
	}
	if len(sum.History) != 2 || !sum.History[0].OK || sum.History[1].OK {
		t.Errorf("unexpected history %+v", sum.History)
	}

	state.History[0].User = "changed"
	if sum.History[0].User == "changed" {
		t.Error("summary history must be a copy")
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	sum := BuildSummary(NewState(DefaultSettings(), problemgen.ModeRange, "id"))
	if sum.Accuracy != 0 || sum.Answered != 0 {
		t.Errorf("unexpected summary %+v", sum)
	}
}
