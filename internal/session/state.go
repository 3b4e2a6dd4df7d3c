package session

import (
	"time"

	"github.com/abhisek/arithtrainer/internal/exact"
	"github.com/abhisek/arithtrainer/internal/problemgen"
)

// DefaultGameTime is the round length when none is configured.
const DefaultGameTime = 120 * time.Second

// NoOperatorPrompt is shown instead of a problem when every operator is
// disabled.
const NoOperatorPrompt = "Select at least one operation."

// Generator is the source of problems for a round.
type Generator interface {
	Generate() (problemgen.Outcome, error)
}

// Settings holds the round length and feedback toggles.
type Settings struct {
	GameTime        time.Duration
	FlashIncorrect  bool
	ShowCorrect     bool
	ShowProblemText bool
}

// DefaultSettings returns a two-minute round with correct answers shown
// and red flashes on.
func DefaultSettings() Settings {
	return Settings{
		GameTime:       DefaultGameTime,
		FlashIncorrect: true,
		ShowCorrect:    true,
	}
}

// Phase represents the current phase of a round.
type Phase int

const (
	PhaseReady  Phase = iota // Created, timer not started
	PhaseActive              // Serving problems
	PhaseEnded               // Time expired or quit
)

// HistoryEntry is one answered problem.
type HistoryEntry struct {
	Operator problemgen.Operator
	Problem  string // "a op b"
	User     string // canonical form of the parsed answer
	Correct  string // canonical form of the exact result
	OK       bool
	Latency  time.Duration
}

// State tracks one timed round.
type State struct {
	// SessionID is the UUID for this round.
	SessionID string

	Settings Settings

	// Mode is the generation mode, recorded with the round.
	Mode problemgen.Mode

	// Current is the problem on screen, nil when there is none.
	Current *problemgen.Problem

	// CurrentResult is the exact result of Current.
	CurrentResult exact.Value

	// Prompt replaces the problem text when Current is nil.
	Prompt string

	// Fallbacks counts problems that came from the fixed fallback.
	Fallbacks int

	Score    int
	Answered int
	History  []HistoryEntry

	// LastFeedback is the outcome of the most recent answer.
	LastFeedback Feedback

	StartTime         time.Time
	Elapsed           time.Duration
	QuestionStartTime time.Time
	Phase             Phase
}

// NewState creates a round that has not started yet.
func NewState(settings Settings, mode problemgen.Mode, sessionID string) *State {
	if settings.GameTime <= 0 {
		settings.GameTime = DefaultGameTime
	}
	return &State{
		SessionID: sessionID,
		Settings:  settings,
		Mode:      mode,
		Phase:     PhaseReady,
	}
}

// ProblemText returns what the problem line shows.
func (s *State) ProblemText() string {
	if s.Current == nil {
		return s.Prompt
	}
	return s.Current.String()
}

// TimeLeft returns the remaining round time, never negative.
func (s *State) TimeLeft() time.Duration {
	left := s.Settings.GameTime - s.Elapsed
	if left < 0 {
		return 0
	}
	return left
}
