// Package generic collects the small generic helpers the tour prints.
package generic

import (
	"fmt"
	"reflect"

	"github.com/marcodamonte/langtour/internal/model"
)

// ── Zero value of a type parameter ───────────────────────────────────────────

// First returns the head of items, or T's zero value and false when empty.
func First[T any](items []T) (head T, ok bool) {
	if len(items) > 0 {
		head, ok = items[0], true
	}
	return head, ok
}

// ── Multiple type parameters ─────────────────────────────────────────────────

// Pair is the two-element tuple the tour swaps around.
type Pair[K, V any] struct {
	Key   K
	Value V
}

func NewPair[K, V any](k K, v V) Pair[K, V] { return Pair[K, V]{Key: k, Value: v} }

func (p Pair[K, V]) String() string { return fmt.Sprintf("[%v, %v]", p.Key, p.Value) }

// Swap flips the order; the result type is Pair[V, K].
func Swap[K, V any](p Pair[K, V]) Pair[V, K] { return Pair[V, K]{Key: p.Value, Value: p.Key} }

// ── Generic interface + implementation ──────────────────────────────────────

type Container[T any] interface {
	Get() T
	Set(v T)
}

// Box is a Container that also carries a color tag.
type Box[T any] struct {
	value T
	color model.Color
}

var _ Container[int] = (*Box[int])(nil)

func NewBox[T any](v T, c model.Color) *Box[T] { return &Box[T]{value: v, color: c} }

func (b *Box[T]) Get() T             { return b.value }
func (b *Box[T]) Set(v T)            { b.value = v }
func (b *Box[T]) Color() model.Color { return b.color }

// ── Method constraint ────────────────────────────────────────────────────────
// Identified is satisfied by model.User and, through embedding, model.Admin.

type Identified interface{ UserID() int }

// LogUserID renders the id of anything that has one.
func LogUserID[T Identified](v T) string { return fmt.Sprintf("User ID: %d", v.UserID()) }

// ── Conditional types ────────────────────────────────────────────────────────
// There is no type-level `T extends string ? true : false`. The nearest
// rendition inspects T's kind, so defined types such as model.Color and
// model.Direction count as their underlying string or number.

func IsString[T any]() bool {
	return reflect.TypeFor[T]().Kind() == reflect.String
}

func IsNumber[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Describe labels a value by what it is in the tour. Tour types are matched
// before the builtins they are defined on.
func Describe[T any](v T) string {
	switch x := any(v).(type) {
	case model.Color:
		return "color " + string(x)
	case model.Direction:
		return fmt.Sprintf("direction %s (%d)", x, int(x))
	case model.Status:
		return "status " + string(x)
	case model.User:
		return fmt.Sprintf("user #%d", x.ID)
	case string:
		return fmt.Sprintf("text %q", x)
	case int, float64:
		return fmt.Sprintf("number %v", x)
	case bool:
		return fmt.Sprintf("flag %t", x)
	case nil:
		return "nothing"
	default:
		return fmt.Sprintf("other %T", x)
	}
}
