// Package exact implements the decimal value model used for problem operands
// and results. Arithmetic never rounds: sums, differences and products are
// exact, and a quotient is returned only when it terminates within the
// working precision.
package exact

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// WorkingPrecision is the number of fractional digits carried by a division
// before it is declared inexact.
const WorkingPrecision = 100

// maxParseDigits bounds the size of values accepted from text input.
const maxParseDigits = 1000

var (
	ErrSyntax         = errors.New("invalid decimal number")
	ErrDivisionByZero = errors.New("division by zero")
	ErrInexact        = errors.New("quotient does not terminate within working precision")
)

// Value is an exact decimal number. The zero value is 0.
type Value struct {
	d decimal.Decimal
}

// Zero is the value 0.
var Zero = Value{d: decimal.Zero}

// FromInt returns n as a Value.
func FromInt(n int64) Value {
	return Value{d: decimal.NewFromInt(n)}
}

// FromScaled returns mantissa × 10^exp.
func FromScaled(mantissa *big.Int, exp int) Value {
	return Value{d: decimal.NewFromBigInt(mantissa, int32(exp))}
}

// Parse reads a decimal number such as "7", "-0.25", "3.50" or "1.2e3".
// Surrounding whitespace is ignored. Formatting differences do not matter:
// "7", "7.0" and "07" parse to equal values.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("%w: empty input", ErrSyntax)
	}
	if len(s) > maxParseDigits {
		return Value{}, fmt.Errorf("%w: input too long", ErrSyntax)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	if e := d.Exponent(); e > maxParseDigits || e < -maxParseDigits {
		return Value{}, fmt.Errorf("%w: exponent out of range in %q", ErrSyntax, s)
	}
	return Value{d: d}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// constants and tests.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Value) Add(w Value) Value { return Value{d: v.d.Add(w.d)} }
func (v Value) Sub(w Value) Value { return Value{d: v.d.Sub(w.d)} }
func (v Value) Mul(w Value) Value { return Value{d: v.d.Mul(w.d)} }
func (v Value) Abs() Value        { return Value{d: v.d.Abs()} }

// Quo returns v / w. It fails with ErrDivisionByZero when w is zero and with
// ErrInexact when the quotient has more than WorkingPrecision fractional
// digits beyond the operands' own scale.
func (v Value) Quo(w Value) (Value, error) {
	if w.IsZero() {
		return Value{}, ErrDivisionByZero
	}
	places := WorkingPrecision + absInt(int(v.d.Exponent())) + absInt(int(w.d.Exponent()))
	q, r := v.d.QuoRem(w.d, int32(places))
	if !r.IsZero() {
		return Value{}, fmt.Errorf("%w: %s / %s", ErrInexact, v, w)
	}
	return Value{d: q}, nil
}

func (v Value) Cmp(w Value) int       { return v.d.Cmp(w.d) }
func (v Value) Equal(w Value) bool    { return v.d.Equal(w.d) }
func (v Value) LessThan(w Value) bool { return v.d.LessThan(w.d) }
func (v Value) Sign() int             { return v.d.Sign() }
func (v Value) IsZero() bool          { return v.d.IsZero() }

// normalized returns the mantissa and exponent of v with all trailing zero
// digits moved into the exponent. Zero normalizes to (0, 0).
func (v Value) normalized() (*big.Int, int) {
	coef := v.d.Coefficient()
	exp := int(v.d.Exponent())
	if coef.Sign() == 0 {
		return coef, 0
	}
	ten := big.NewInt(10)
	q, r := new(big.Int), new(big.Int)
	for {
		q.QuoRem(coef, ten, r)
		if r.Sign() != 0 {
			break
		}
		coef.Set(q)
		exp++
	}
	return coef, exp
}

// SigFigs returns the number of digits in the normalized mantissa.
// Zero has one significant figure; 1200 has two.
func (v Value) SigFigs() int {
	coef, _ := v.normalized()
	if coef.Sign() == 0 {
		return 1
	}
	return len(coef.Abs(coef).String())
}

// DecimalPlaces returns the number of digits after the decimal point in the
// canonical form of v.
func (v Value) DecimalPlaces() int {
	_, exp := v.normalized()
	if exp >= 0 {
		return 0
	}
	return -exp
}

// IsInteger reports whether v has no fractional part.
func (v Value) IsInteger() bool {
	return v.DecimalPlaces() == 0
}

// AtMostOneDecimalPlace reports whether v equals itself rounded to one
// decimal place.
func (v Value) AtMostOneDecimalPlace() bool {
	if v.IsInteger() {
		return true
	}
	return v.d.Equal(v.d.Round(1))
}

// Round rounds v to the given number of decimal places, half away from zero.
// Negative places round the integer part.
func (v Value) Round(places int) Value {
	return Value{d: v.d.Round(int32(places))}
}

// RoundSigFigs rounds v to n significant figures, half away from zero.
// It shapes magnitudes only and is never applied to a graded result.
func (v Value) RoundSigFigs(n int) Value {
	if n < 1 {
		n = 1
	}
	coef, exp := v.normalized()
	if coef.Sign() == 0 {
		return Zero
	}
	digits := len(coef.Abs(coef).String())
	adjusted := digits - 1 + exp
	return v.Round(n - 1 - adjusted)
}

// String returns the canonical form: integers without a decimal point,
// everything else in minimal positional form with no trailing zeros.
// Parse(v.String()) is always equal to v.
func (v Value) String() string {
	return v.d.String()
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
