// Package game implements the timed round screen.
package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/arithtrainer/internal/problemgen"
	"github.com/abhisek/arithtrainer/internal/router"
	"github.com/abhisek/arithtrainer/internal/screen"
	"github.com/abhisek/arithtrainer/internal/screens/summary"
	sess "github.com/abhisek/arithtrainer/internal/session"
	"github.com/abhisek/arithtrainer/internal/store"
	"github.com/abhisek/arithtrainer/internal/ui/components"
	"github.com/abhisek/arithtrainer/internal/ui/layout"
)

// flashDuration is how long the background stays colored after an answer.
const flashDuration = 400 * time.Millisecond

// Deps holds everything a round needs.
type Deps struct {
	// Config is the generation config. It is shared and never modified.
	Config *problemgen.Config

	Settings sess.Settings

	// EventRepo records rounds and answers. Nil disables persistence.
	EventRepo store.EventRepo

	// NewSource returns the random source for one round. Defaults to
	// problemgen.NewRandomSource.
	NewSource func() problemgen.Source

	// Now defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.NewSource == nil {
		d.NewSource = problemgen.NewRandomSource
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// GameScreen implements screen.Screen for one timed round.
type GameScreen struct {
	deps        Deps
	gen         *problemgen.Generator
	state       *sess.State
	input       components.TextInput
	flash       sess.Flash
	flashSeq    int
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)

// New creates a game screen. The round starts in Init.
func New(deps Deps) *GameScreen {
	deps = deps.withDefaults()
	return &GameScreen{
		deps:  deps,
		input: components.NewTextInput("Type your answer...", true, 24),
	}
}

// Init starts the round, serves the first problem and starts the timer.
func (s *GameScreen) Init() tea.Cmd {
	s.start()
	return tea.Batch(s.input.Init(), tickCmd())
}

func (s *GameScreen) start() {
	logger := s.deps.Logger.With("screen", "game")
	s.gen = problemgen.New(s.deps.Config, s.deps.NewSource(), problemgen.WithLogger(logger))

	now := s.deps.Now()
	s.state = sess.NewState(s.deps.Settings, s.deps.Config.Mode, uuid.New().String())
	sess.Start(s.state, now)
	if err := sess.NextProblem(s.state, s.gen, now); err != nil {
		s.errMsg = err.Error()
		return
	}

	s.record(func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: s.state.SessionID,
			Action:    store.ActionStart,
			Mode:      string(s.state.Mode),
		})
	})
}

func (s *GameScreen) Title() string {
	return "Game"
}

// Status shows score and time left in the header.
func (s *GameScreen) Status() string {
	if s.state == nil {
		return ""
	}
	return fmt.Sprintf("Score %d   %s", s.state.Score, layout.FormatClock(s.state.TimeLeft()))
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End round"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "End round"},
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(time.Time(msg))

	case flashDoneMsg:
		if msg.seq == s.flashSeq {
			s.flash = sess.FlashNone
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *GameScreen) handleTick(t time.Time) (screen.Screen, tea.Cmd) {
	if s.state == nil || s.state.Phase != sess.PhaseActive {
		return s, nil
	}
	if sess.Tick(s.state, s.deps.Now()) {
		return s, s.finish()
	}
	return s, tickCmd()
}

func (s *GameScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil || s.state.Phase != sess.PhaseActive {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			sess.End(s.state, s.deps.Now())
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "enter":
		return s.submitAnswer()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submitAnswer grades the input. A number moves on to the next problem;
// anything else, empty input included, keeps the problem on screen.
func (s *GameScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	input := s.input.Value()
	if s.state.Current == nil {
		return s, nil
	}

	now := s.deps.Now()
	fb := sess.HandleAnswer(s.state, input, now)
	s.input.Clear()

	if fb.Entry != nil {
		s.input.Submit(fb.Kind == sess.FeedbackCorrect)
		entry := *fb.Entry
		s.record(func(ctx context.Context, repo store.EventRepo) error {
			return repo.AppendAnswerEvent(ctx, store.AnswerEventData{
				SessionID:     s.state.SessionID,
				Operator:      string(entry.Operator),
				Mode:          string(s.state.Mode),
				ProblemText:   entry.Problem,
				CorrectAnswer: entry.Correct,
				LearnerAnswer: entry.User,
				Correct:       entry.OK,
				TimeMs:        entry.Latency.Milliseconds(),
			})
		})
		if err := sess.NextProblem(s.state, s.gen, now); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
	}

	if fb.Flash == sess.FlashNone {
		return s, nil
	}
	s.flash = fb.Flash
	s.flashSeq++
	seq := s.flashSeq
	return s, tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

// finish records the end of the round and hands over to the summary.
func (s *GameScreen) finish() tea.Cmd {
	s.record(func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:    s.state.SessionID,
			Action:       store.ActionEnd,
			Mode:         string(s.state.Mode),
			Score:        s.state.Score,
			Answered:     s.state.Answered,
			Fallbacks:    s.state.Fallbacks,
			DurationSecs: int(s.state.Elapsed.Seconds()),
		})
	})

	s.deps.Logger.Info("round finished",
		"session_id", s.state.SessionID,
		"score", s.state.Score,
		"answered", s.state.Answered,
		"fallbacks", s.state.Fallbacks)

	deps := s.deps
	sum := summary.New(sess.BuildSummary(s.state), func() screen.Screen { return New(deps) })
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
}

// record persists one event. Failures are logged and do not stop the round.
func (s *GameScreen) record(fn func(context.Context, store.EventRepo) error) {
	if s.deps.EventRepo == nil {
		return
	}
	if err := fn(context.Background(), s.deps.EventRepo); err != nil {
		s.deps.Logger.Warn("failed to record event", "session_id", s.state.SessionID, "error", err)
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
