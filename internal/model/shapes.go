package model

import (
	"fmt"
	"strconv"
)

// ── ID: text OR number ───────────────────────────────────────────────────────
// A tagged variant. Each call site picks the constructor, so nobody needs a
// type switch to find out which kind it holds.

type IDKind int

const (
	NumericKind IDKind = iota
	TextKind
)

type ID struct {
	kind IDKind
	num  int
	text string
}

func NumericID(n int) ID   { return ID{kind: NumericKind, num: n} }
func TextID(s string) ID   { return ID{kind: TextKind, text: s} }
func (id ID) Kind() IDKind { return id.kind }
func (id ID) Number() int  { return id.num }
func (id ID) Text() string { return id.text }

func (id ID) String() string {
	if id.kind == TextKind {
		return id.text
	}
	return strconv.Itoa(id.num)
}

// ── Person: HasName AND HasAge ───────────────────────────────────────────────
// Intersection of two shapes, expressed by embedding both.

type HasName struct{ Name string }
type HasAge struct{ Age int }

type Person struct {
	HasName
	HasAge
}

func (p Person) String() string { return fmt.Sprintf("%s is %d years old", p.Name, p.Age) }

// ── Read-only records ────────────────────────────────────────────────────────
// Unexported fields and no setters: once built, nobody outside the package
// can change them.

type Point struct{ x, y float64 }

func NewPoint(x, y float64) Point { return Point{x: x, y: y} }
func (p Point) X() float64        { return p.x }
func (p Point) Y() float64        { return p.y }
func (p Point) String() string    { return fmt.Sprintf("(%g, %g)", p.x, p.y) }

type ReadonlyUser struct {
	id   int
	name string
}

func NewReadonlyUser(id int, name string) ReadonlyUser {
	return ReadonlyUser{id: id, name: name}
}

func (u ReadonlyUser) ID() int      { return u.id }
func (u ReadonlyUser) Name() string { return u.name }
