package prefs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/arithtrainer/internal/problemgen"
)

func TestParse_EmptyDocumentIsDefault(t *testing.T) {
	p, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestParse_PartialDocumentKeepsDefaults(t *testing.T) {
	p, err := Parse([]byte(`{
		"mode": "sigfigs",
		"ops": {"/": false},
		"ranges": {"mul_X": [3, 9]},
		"toggles": {"show_problem_text": true}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "sigfigs", p.Mode)
	assert.Equal(t, OpFlags{Add: true, Sub: true, Mul: true, Div: false}, p.Ops)
	assert.Equal(t, Pair{3, 9}, p.Ranges.MulX)
	assert.Equal(t, Pair{2, 100}, p.Ranges.AddA)
	assert.Equal(t, 120, p.GameTime)
	assert.True(t, p.Toggles.ShowCorrect)
	assert.True(t, p.Toggles.ShowProblemText)
}

func TestParse_Clamps(t *testing.T) {
	p, err := Parse([]byte(`{
		"ranges": {"add_A": [0, 500], "mul_Y": [-3, 7]},
		"weights": {"+": 9, "-": -1},
		"sigfigs": {"A_sig": [0, 12], "B_exp": [-20, 20]},
		"max_solution_sigfigs": {"*": 0, "/": 99},
		"game_time": 5
	}`))
	require.NoError(t, err)

	assert.Equal(t, Pair{1, 100}, p.Ranges.AddA)
	assert.Equal(t, Pair{1, 7}, p.Ranges.MulY)
	assert.Equal(t, 5, p.Weights.Add)
	assert.Equal(t, 0, p.Weights.Sub)
	assert.Equal(t, Pair{1, 6}, p.SigFigs.ASig)
	assert.Equal(t, Pair{-6, 6}, p.SigFigs.BExp)
	assert.Equal(t, 1, p.Caps.Mul)
	assert.Equal(t, 20, p.Caps.Div)
	assert.Equal(t, 30, p.GameTime)
}

func TestParse_ProblemTextNeedsShowCorrect(t *testing.T) {
	p, err := Parse([]byte(`{"toggles": {"show_correct": false, "show_problem_text": true}}`))
	require.NoError(t, err)
	assert.False(t, p.Toggles.ShowProblemText)
}

func TestParse_Invalid(t *testing.T) {
	docs := map[string]string{
		"not json":          `{"mode":`,
		"not an object":     `[1, 2]`,
		"unknown mode":      `{"mode": "fractions"}`,
		"pair too short":    `{"ranges": {"add_A": [1]}}`,
		"weight not int":    `{"weights": {"+": "three"}}`,
		"toggle not bool":   `{"toggles": {"show_correct": 1}}`,
		"game time as text": `{"game_time": "120"}`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, Default(), p)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")

	p := Default()
	p.Mode = "sigfigs"
	p.Weights.Mul = 0
	p.Ranges.AddB = Pair{10, 20}
	p.Toggles.FlashIncorrect = false
	require.NoError(t, Save(path, p))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"mode\": \"sigfigs\"")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]any{"range_checked": false, "sig_checked": true}, raw["radio"])
	assert.Contains(t, raw["ops"], "-")

	loaded, err := Load(path)
	require.NoError(t, err)
	p.Radio = Radio{SigChecked: true}
	assert.Equal(t, p, loaded)
}

func TestGenerationConfig(t *testing.T) {
	p := Default()
	p.Mode = "sigfigs"
	p.Ops.Sub = false
	p.Weights.Div = 1
	p.SigFigs.BExp = Pair{4, -1}
	p.Caps.Add = 7

	cfg := p.GenerationConfig()
	assert.Equal(t, problemgen.ModeSigFigs, cfg.Mode)
	assert.Equal(t, problemgen.OperatorWeight{Enabled: false, Weight: 3}, cfg.Weight(problemgen.OpSub))
	assert.Equal(t, problemgen.OperatorWeight{Enabled: true, Weight: 1}, cfg.Weight(problemgen.OpDiv))
	assert.Equal(t, problemgen.SigFigSpec{SigMin: 2, SigMax: 3, ExpMin: 4, ExpMax: -1}, cfg.SigB)
	assert.Equal(t, problemgen.RangeSpec{Lo: 2, Hi: 12}, cfg.MulX)
	assert.Equal(t, 7, cfg.Cap(problemgen.OpAdd))
	assert.Equal(t, 4, cfg.Cap(problemgen.OpMul))
	assert.Len(t, cfg.Validators, 1)

	out, err := problemgen.New(&cfg, problemgen.NewSource(1)).Generate()
	require.NoError(t, err)
	assert.NotEqual(t, problemgen.OpSub, out.Problem.Operator)
}

func TestSettings(t *testing.T) {
	p := Default()
	p.GameTime = 90
	p.Toggles.ShowProblemText = true

	s := p.Settings()
	assert.Equal(t, 90*time.Second, s.GameTime)
	assert.True(t, s.ShowCorrect)
	assert.True(t, s.ShowProblemText)
	assert.True(t, s.FlashIncorrect)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("ARITHTRAINER_PREFS", "/tmp/custom.json")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.json", p)

	t.Setenv("ARITHTRAINER_PREFS", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "arithtrainer", "preferences.json"), p)
}
