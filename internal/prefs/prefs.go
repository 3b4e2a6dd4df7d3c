// Package prefs loads, clamps, validates and saves the preferences file and
// turns it into a generation config and session settings.
package prefs

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/arithtrainer/internal/problemgen"
	"github.com/abhisek/arithtrainer/internal/session"
)

// ErrInvalid is returned for a preferences document that cannot be
// repaired by clamping: malformed JSON, a shape that does not match the
// schema, or an unknown mode.
var ErrInvalid = errors.New("invalid preferences")

// Widget domains. Values outside them are clamped on load.
const (
	RangeMin    = 1
	RangeMax    = 100
	WeightMin   = 0
	WeightMax   = 5
	SigMin      = 1
	SigMax      = 6
	ExpMin      = -6
	ExpMax      = 6
	CapMin      = 1
	CapMax      = 20
	GameTimeMin = 30
	GameTimeMax = 600
)

// Pair is an inclusive [lo, hi] pair stored as a two-element JSON array.
type Pair [2]int

// OpFlags holds one boolean per operator, keyed by symbol in JSON.
type OpFlags struct {
	Add bool `json:"+"`
	Sub bool `json:"-,"`
	Mul bool `json:"*"`
	Div bool `json:"/"`
}

// OpInts holds one integer per operator, keyed by symbol in JSON.
type OpInts struct {
	Add int `json:"+"`
	Sub int `json:"-,"`
	Mul int `json:"*"`
	Div int `json:"/"`
}

func (o OpInts) get(op problemgen.Operator) int {
	switch op {
	case problemgen.OpAdd:
		return o.Add
	case problemgen.OpSub:
		return o.Sub
	case problemgen.OpMul:
		return o.Mul
	default:
		return o.Div
	}
}

func (o OpFlags) get(op problemgen.Operator) bool {
	switch op {
	case problemgen.OpAdd:
		return o.Add
	case problemgen.OpSub:
		return o.Sub
	case problemgen.OpMul:
		return o.Mul
	default:
		return o.Div
	}
}

type Ranges struct {
	AddA Pair `json:"add_A" validate:"dive,min=1,max=100"`
	AddB Pair `json:"add_B" validate:"dive,min=1,max=100"`
	MulX Pair `json:"mul_X" validate:"dive,min=1,max=100"`
	MulY Pair `json:"mul_Y" validate:"dive,min=1,max=100"`
}

type SigFigs struct {
	ASig Pair `json:"A_sig" validate:"dive,min=1,max=6"`
	AExp Pair `json:"A_exp" validate:"dive,min=-6,max=6"`
	BSig Pair `json:"B_sig" validate:"dive,min=1,max=6"`
	BExp Pair `json:"B_exp" validate:"dive,min=-6,max=6"`
}

// Radio mirrors the mode as two flags. It is derived from Mode on save and
// ignored on load.
type Radio struct {
	RangeChecked bool `json:"range_checked"`
	SigChecked   bool `json:"sig_checked"`
}

type Toggles struct {
	FlashIncorrect  bool `json:"flash_incorrect"`
	ShowCorrect     bool `json:"show_correct"`
	ShowProblemText bool `json:"show_problem_text"`
}

// Preferences is the on-disk preferences document.
type Preferences struct {
	Mode     string  `json:"mode" validate:"oneof=range sigfigs"`
	Ops      OpFlags `json:"ops"`
	Ranges   Ranges  `json:"ranges"`
	Weights  OpInts  `json:"weights"`
	SigFigs  SigFigs `json:"sigfigs"`
	Caps     OpInts  `json:"max_solution_sigfigs"`
	GameTime int     `json:"game_time" validate:"min=30,max=600"`
	Radio    Radio   `json:"radio"`
	Toggles  Toggles `json:"toggles"`
}

// Default returns the stock preferences.
func Default() Preferences {
	return Preferences{
		Mode:    string(problemgen.ModeRange),
		Ops:     OpFlags{Add: true, Sub: true, Mul: true, Div: true},
		Weights: OpInts{Add: 3, Sub: 3, Mul: 3, Div: 3},
		Ranges: Ranges{
			AddA: Pair{2, 100},
			AddB: Pair{2, 100},
			MulX: Pair{2, 12},
			MulY: Pair{2, 100},
		},
		SigFigs: SigFigs{
			ASig: Pair{2, 3},
			AExp: Pair{-2, 3},
			BSig: Pair{2, 3},
			BExp: Pair{-2, 3},
		},
		Caps:     OpInts{Add: 5, Sub: 5, Mul: 4, Div: 4},
		GameTime: 120,
		Radio:    Radio{RangeChecked: true},
		Toggles:  Toggles{FlashIncorrect: true, ShowCorrect: true},
	}
}

var (
	//go:embed schema.json
	schemaJSON []byte

	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error

	validate = validator.New()
)

func documentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse preferences schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://preferences.json"
		if err := c.AddResource(url, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// Parse reads a preferences document. Missing keys take their default,
// out-of-range numbers are clamped into their widget domains.
func Parse(data []byte) (Preferences, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return Preferences{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	sch, err := documentSchema()
	if err != nil {
		return Preferences{}, err
	}
	if err := sch.Validate(doc); err != nil {
		return Preferences{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	p.Clamp()
	if err := p.Validate(); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

// Load reads the preferences file at path. When the file does not exist it
// returns Default() together with an error wrapping fs.ErrNotExist.
func Load(path string) (Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read preferences: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}

// Save writes p to path as indented JSON, creating the parent directory.
func Save(path string, p Preferences) error {
	p.syncRadio()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// Clamp moves every number into its widget domain and turns
// show_problem_text off when show_correct is off.
func (p *Preferences) Clamp() {
	for _, r := range []*Pair{&p.Ranges.AddA, &p.Ranges.AddB, &p.Ranges.MulX, &p.Ranges.MulY} {
		r.clamp(RangeMin, RangeMax)
	}
	p.SigFigs.ASig.clamp(SigMin, SigMax)
	p.SigFigs.BSig.clamp(SigMin, SigMax)
	p.SigFigs.AExp.clamp(ExpMin, ExpMax)
	p.SigFigs.BExp.clamp(ExpMin, ExpMax)
	p.Weights.clamp(WeightMin, WeightMax)
	p.Caps.clamp(CapMin, CapMax)
	p.GameTime = clamp(p.GameTime, GameTimeMin, GameTimeMax)
	if !p.Toggles.ShowCorrect {
		p.Toggles.ShowProblemText = false
	}
}

// Validate checks the clamped document. Only an unknown mode can fail after
// Clamp.
func (p Preferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// GenerationConfig converts the preferences into a generator config with
// the default validator chain and attempt budgets.
func (p Preferences) GenerationConfig() problemgen.Config {
	cfg := problemgen.DefaultConfig()
	cfg.Mode = problemgen.Mode(p.Mode)
	cfg.AddA = p.Ranges.AddA.rangeSpec()
	cfg.AddB = p.Ranges.AddB.rangeSpec()
	cfg.MulX = p.Ranges.MulX.rangeSpec()
	cfg.MulY = p.Ranges.MulY.rangeSpec()
	cfg.SigA = problemgen.SigFigSpec{
		SigMin: p.SigFigs.ASig[0], SigMax: p.SigFigs.ASig[1],
		ExpMin: p.SigFigs.AExp[0], ExpMax: p.SigFigs.AExp[1],
	}
	cfg.SigB = problemgen.SigFigSpec{
		SigMin: p.SigFigs.BSig[0], SigMax: p.SigFigs.BSig[1],
		ExpMin: p.SigFigs.BExp[0], ExpMax: p.SigFigs.BExp[1],
	}
	for _, op := range problemgen.Operators {
		cfg.Weights[op] = problemgen.OperatorWeight{Enabled: p.Ops.get(op), Weight: p.Weights.get(op)}
		cfg.Caps[op] = p.Caps.get(op)
	}
	return cfg
}

// Settings returns the round settings: duration and feedback toggles.
func (p Preferences) Settings() session.Settings {
	return session.Settings{
		GameTime:        time.Duration(p.GameTime) * time.Second,
		FlashIncorrect:  p.Toggles.FlashIncorrect,
		ShowCorrect:     p.Toggles.ShowCorrect,
		ShowProblemText: p.Toggles.ShowProblemText && p.Toggles.ShowCorrect,
	}
}

// DefaultPath resolves the preferences file path in priority order:
// 1. ARITHTRAINER_PREFS environment variable
// 2. $XDG_CONFIG_HOME/arithtrainer/preferences.json
// 3. ~/.config/arithtrainer/preferences.json
func DefaultPath() (string, error) {
	if p := os.Getenv("ARITHTRAINER_PREFS"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "arithtrainer", "preferences.json"), nil
}

func (p *Preferences) syncRadio() {
	p.Radio = Radio{
		RangeChecked: p.Mode == string(problemgen.ModeRange),
		SigChecked:   p.Mode == string(problemgen.ModeSigFigs),
	}
}

func (r Pair) rangeSpec() problemgen.RangeSpec {
	return problemgen.RangeSpec{Lo: r[0], Hi: r[1]}
}

func (r *Pair) clamp(lo, hi int) {
	r[0] = clamp(r[0], lo, hi)
	r[1] = clamp(r[1], lo, hi)
}

func (o *OpInts) clamp(lo, hi int) {
	o.Add = clamp(o.Add, lo, hi)
	o.Sub = clamp(o.Sub, lo, hi)
	o.Mul = clamp(o.Mul, lo, hi)
	o.Div = clamp(o.Div, lo, hi)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
