package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/arithtrainer/internal/problemgen"
)

// FeedbackKind classifies the outcome of one answer.
type FeedbackKind int

const (
	FeedbackNone      FeedbackKind = iota // No problem was on screen
	FeedbackInvalid                       // Input was not a number
	FeedbackCorrect
	FeedbackIncorrect
)

// Flash is the color the screen flashes after an answer.
type Flash int

const (
	FlashNone Flash = iota
	FlashGreen
	FlashRed
)

// Feedback describes the result line and flash for one answer.
type Feedback struct {
	Kind    FeedbackKind
	Message string
	Flash   Flash

	// Entry is the history entry appended for a parsed answer, nil otherwise.
	Entry *HistoryEntry
}

// Messages shown on the result line.
const (
	MsgInvalid = "Please enter a valid number!"
	MsgCorrect = "Correct!"
)

// Start begins the round timer and resets score and history.
func Start(state *State, now time.Time) {
	state.Score = 0
	state.Answered = 0
	state.History = nil
	state.Fallbacks = 0
	state.LastFeedback = Feedback{}
	state.StartTime = now
	state.QuestionStartTime = now
	state.Elapsed = 0
	state.Phase = PhaseActive
}

// NextProblem asks gen for the next problem. When no operator is enabled
// the problem is cleared and the prompt is set instead; that is not an
// error.
func NextProblem(state *State, gen Generator, now time.Time) error {
	out, err := gen.Generate()
	if errors.Is(err, problemgen.ErrNoOperator) {
		state.Current = nil
		state.Prompt = NoOperatorPrompt
		return nil
	}
	if err != nil {
		return fmt.Errorf("next problem: %w", err)
	}

	p := out.Problem
	state.Current = &p
	state.CurrentResult = out.Result
	state.Prompt = ""
	state.QuestionStartTime = now
	if out.Fallback {
		state.Fallbacks++
	}
	return nil
}

// HandleAnswer grades input against the current problem.
//
// Input that is not a number leaves score, history and problem unchanged.
// A parsed answer is appended to the history whether or not it is correct,
// and the caller moves on to the next problem.
func HandleAnswer(state *State, input string, now time.Time) Feedback {
	if state.Current == nil || state.Phase == PhaseEnded {
		return Feedback{Kind: FeedbackNone}
	}

	check, err := problemgen.CheckAnswer(*state.Current, input)
	if err != nil {
		// Current came from the generator, which only emits exact problems.
		panic("session: " + err.Error())
	}

	if !check.ParsedOK {
		fb := Feedback{Kind: FeedbackInvalid}
		if state.Settings.ShowCorrect {
			fb.Message = MsgInvalid
		}
		fb.Flash = flashFor(state.Settings, false)
		state.LastFeedback = fb
		return fb
	}

	entry := HistoryEntry{
		Operator: state.Current.Operator,
		Problem:  state.Current.String(),
		User:     check.Given.String(),
		Correct:  check.ExactResult(),
		OK:       check.Correct,
		Latency:  now.Sub(state.QuestionStartTime),
	}
	state.Answered++
	if check.Correct {
		state.Score++
	}
	state.History = append(state.History, entry)

	fb := Feedback{Kind: FeedbackIncorrect, Entry: &entry}
	if check.Correct {
		fb.Kind = FeedbackCorrect
	}
	if state.Settings.ShowCorrect {
		fb.Message = feedbackMessage(state.Settings, entry)
	}
	fb.Flash = flashFor(state.Settings, check.Correct)
	state.LastFeedback = fb
	return fb
}

func feedbackMessage(s Settings, e HistoryEntry) string {
	switch {
	case e.OK:
		return MsgCorrect
	case s.ShowProblemText:
		return fmt.Sprintf("The correct answer to %s is %s", e.Problem, e.Correct)
	default:
		return fmt.Sprintf("The correct answer to the last problem was: %s", e.Correct)
	}
}

// flashFor applies the flash rules: nothing flashes while correct answers
// are hidden, and red is suppressed when incorrect flashes are off.
func flashFor(s Settings, ok bool) Flash {
	if !s.ShowCorrect {
		return FlashNone
	}
	if ok {
		return FlashGreen
	}
	if !s.FlashIncorrect {
		return FlashNone
	}
	return FlashRed
}

// Tick advances the round clock to now and reports whether time is up.
// Once time is up the round moves to PhaseEnded.
func Tick(state *State, now time.Time) bool {
	if state.Phase != PhaseActive {
		return state.Phase == PhaseEnded
	}
	state.Elapsed = now.Sub(state.StartTime)
	if state.Elapsed >= state.Settings.GameTime {
		state.Elapsed = state.Settings.GameTime
		state.Phase = PhaseEnded
		return true
	}
	return false
}

// End stops the round early.
func End(state *State, now time.Time) {
	if state.Phase == PhaseActive {
		state.Elapsed = min(now.Sub(state.StartTime), state.Settings.GameTime)
	}
	state.Phase = PhaseEnded
}
