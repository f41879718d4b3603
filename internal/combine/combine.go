// Package combine shows three ways to get "one name, several signatures"
// without overload resolution: distinct names, a type-parameter union, and a
// tagged operand checked at run time.
package combine

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidTypes is returned when the two operands are of different kinds.
var ErrInvalidTypes = errors.New("invalid types")

// ── Distinct names ───────────────────────────────────────────────────────────

func Strings(a, b string) string   { return a + b }
func Numbers(a, b float64) float64 { return a + b }

// ── Union constraint ─────────────────────────────────────────────────────────
// Same kind in, same kind out, checked by the compiler.

type Addable interface {
	~string | ~int | ~int64 | ~float64
}

func Add[T Addable](a, b T) T { return a + b }

// ── Tagged operand ───────────────────────────────────────────────────────────

type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "invalid"
	}
}

// Operand is either a string or a number. Build it with Text or Num.
type Operand struct {
	kind Kind
	s    string
	n    float64
}

func Text(s string) Operand  { return Operand{kind: KindString, s: s} }
func Num(n float64) Operand  { return Operand{kind: KindNumber, n: n} }
func (o Operand) Kind() Kind { return o.kind }

// AsString returns the text and whether the operand holds one.
func (o Operand) AsString() (string, bool) { return o.s, o.kind == KindString }

// AsNumber returns the number and whether the operand holds one.
func (o Operand) AsNumber() (float64, bool) { return o.n, o.kind == KindNumber }

func (o Operand) String() string {
	switch o.kind {
	case KindString:
		return o.s
	case KindNumber:
		return strconv.FormatFloat(o.n, 'g', -1, 64)
	default:
		return "<invalid>"
	}
}

// Combine concatenates two strings or adds two numbers. Mixed or unset
// operands fail with ErrInvalidTypes.
func Combine(a, b Operand) (Operand, error) {
	switch {
	case a.kind == KindString && b.kind == KindString:
		return Text(Strings(a.s, b.s)), nil
	case a.kind == KindNumber && b.kind == KindNumber:
		return Num(Numbers(a.n, b.n)), nil
	}
	return Operand{}, fmt.Errorf("combine %s with %s: %w", a.kind, b.kind, ErrInvalidTypes)
}
