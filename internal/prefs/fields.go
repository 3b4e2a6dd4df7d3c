package prefs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/arithtrainer/internal/problemgen"
)

// ErrUnknownKey is returned by Get and Set for a key no field has.
var ErrUnknownKey = errors.New("unknown preference")

// FieldKind says how a field is edited.
type FieldKind int

const (
	KindMode FieldKind = iota // range or sigfigs
	KindBool
	KindInt
)

// Field is one editable preference. Keys are dotted paths into the JSON
// document, with operators spelled by name: "weights.mul",
// "ranges.add_A.hi", "toggles.show_correct".
type Field struct {
	Key   string
	Label string
	Group string
	Kind  FieldKind

	// Min and Max bound KindInt fields.
	Min, Max int

	ptrInt  func(*Preferences) *int
	ptrBool func(*Preferences) *bool
}

// Get returns the field's value in p as text.
func (f Field) Get(p *Preferences) string {
	switch f.Kind {
	case KindMode:
		return p.Mode
	case KindBool:
		return strconv.FormatBool(*f.ptrBool(p))
	default:
		return strconv.Itoa(*f.ptrInt(p))
	}
}

// parse assigns value to the field without clamping.
func (f Field) parse(p *Preferences, value string) error {
	value = strings.TrimSpace(value)
	switch f.Kind {
	case KindMode:
		switch problemgen.Mode(value) {
		case problemgen.ModeRange, problemgen.ModeSigFigs:
			p.Mode = value
			p.syncRadio()
			return nil
		}
		return fmt.Errorf("%w: mode %q (want range or sigfigs)", ErrInvalid, value)
	case KindBool:
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, f.Key, err)
		}
		*f.ptrBool(p) = b
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %q is not an integer", ErrInvalid, f.Key, value)
		}
		*f.ptrInt(p) = n
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// Step moves the field one notch: a bool or the mode flips, an int moves
// by delta. The result is clamped.
func (f Field) Step(p *Preferences, delta int) {
	switch f.Kind {
	case KindMode:
		if p.Mode == string(problemgen.ModeRange) {
			p.Mode = string(problemgen.ModeSigFigs)
		} else {
			p.Mode = string(problemgen.ModeRange)
		}
		p.syncRadio()
	case KindBool:
		b := f.ptrBool(p)
		*b = !*b
	default:
		n := f.ptrInt(p)
		*n = clamp(*n+delta, f.Min, f.Max)
	}
	p.Clamp()
}

var fields = buildFields()

// Fields returns every editable preference in display order.
func Fields() []Field {
	return fields
}

// Lookup finds the field for key.
func Lookup(key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Get returns the value at key as text.
func (p Preferences) Get(key string) (string, error) {
	f, ok := Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.Get(&p), nil
}

// Set parses value into key, then clamps and validates the whole document.
// On error p is left unchanged.
func (p *Preferences) Set(key, value string) error {
	f, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	next := *p
	if err := f.parse(&next, value); err != nil {
		return err
	}
	next.Clamp()
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

func buildFields() []Field {
	out := []Field{
		{Key: "mode", Label: "Mode", Group: "General", Kind: KindMode},
		{Key: "game_time", Label: "Game time (s)", Group: "General", Kind: KindInt,
			Min: GameTimeMin, Max: GameTimeMax,
			ptrInt: func(p *Preferences) *int { return &p.GameTime }},
		boolField("toggles.flash_incorrect", "Flash incorrect", "General",
			func(p *Preferences) *bool { return &p.Toggles.FlashIncorrect }),
		boolField("toggles.show_correct", "Show correct answer", "General",
			func(p *Preferences) *bool { return &p.Toggles.ShowCorrect }),
		boolField("toggles.show_problem_text", "Show problem text", "General",
			func(p *Preferences) *bool { return &p.Toggles.ShowProblemText }),
	}

	for _, op := range problemgen.Operators {
		name := op.Name()
		group := "Operator " + string(op)
		out = append(out,
			boolField("ops."+name, "Enabled", group,
				func(p *Preferences) *bool { return p.Ops.ptr(op) }),
			Field{Key: "weights." + name, Label: "Weight", Group: group, Kind: KindInt,
				Min: WeightMin, Max: WeightMax,
				ptrInt: func(p *Preferences) *int { return p.Weights.ptr(op) }},
			Field{Key: "max_solution_sigfigs." + name, Label: "Max answer sig figs", Group: group, Kind: KindInt,
				Min: CapMin, Max: CapMax,
				ptrInt: func(p *Preferences) *int { return p.Caps.ptr(op) }},
		)
	}

	pairs := []struct {
		key, label, group string
		min, max          int
		ptr               func(*Preferences) *Pair
	}{
		{"ranges.add_A", "+ - first operand", "Range mode", RangeMin, RangeMax, func(p *Preferences) *Pair { return &p.Ranges.AddA }},
		{"ranges.add_B", "+ - second operand", "Range mode", RangeMin, RangeMax, func(p *Preferences) *Pair { return &p.Ranges.AddB }},
		{"ranges.mul_X", "* first / quotient", "Range mode", RangeMin, RangeMax, func(p *Preferences) *Pair { return &p.Ranges.MulX }},
		{"ranges.mul_Y", "* second / divisor", "Range mode", RangeMin, RangeMax, func(p *Preferences) *Pair { return &p.Ranges.MulY }},
		{"sigfigs.A_sig", "A sig figs", "Sig figs mode", SigMin, SigMax, func(p *Preferences) *Pair { return &p.SigFigs.ASig }},
		{"sigfigs.A_exp", "A exponent", "Sig figs mode", ExpMin, ExpMax, func(p *Preferences) *Pair { return &p.SigFigs.AExp }},
		{"sigfigs.B_sig", "B sig figs", "Sig figs mode", SigMin, SigMax, func(p *Preferences) *Pair { return &p.SigFigs.BSig }},
		{"sigfigs.B_exp", "B exponent", "Sig figs mode", ExpMin, ExpMax, func(p *Preferences) *Pair { return &p.SigFigs.BExp }},
	}
	for _, pr := range pairs {
		ptr := pr.ptr
		out = append(out,
			Field{Key: pr.key + ".lo", Label: pr.label + " from", Group: pr.group, Kind: KindInt,
				Min: pr.min, Max: pr.max,
				ptrInt: func(p *Preferences) *int { return &ptr(p)[0] }},
			Field{Key: pr.key + ".hi", Label: pr.label + " to", Group: pr.group, Kind: KindInt,
				Min: pr.min, Max: pr.max,
				ptrInt: func(p *Preferences) *int { return &ptr(p)[1] }},
		)
	}
	return out
}

func boolField(key, label, group string, ptr func(*Preferences) *bool) Field {
	return Field{Key: key, Label: label, Group: group, Kind: KindBool, ptrBool: ptr}
}

func (o *OpInts) ptr(op problemgen.Operator) *int {
	switch op {
	case problemgen.OpAdd:
		return &o.Add
	case problemgen.OpSub:
		return &o.Sub
	case problemgen.OpMul:
		return &o.Mul
	default:
		return &o.Div
	}
}

func (o *OpFlags) ptr(op problemgen.Operator) *bool {
	switch op {
	case problemgen.OpAdd:
		return &o.Add
	case problemgen.OpSub:
		return &o.Sub
	case problemgen.OpMul:
		return &o.Mul
	default:
		return &o.Div
	}
}
