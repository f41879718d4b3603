package demo

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/marcodamonte/langtour/internal/combine"
	"github.com/marcodamonte/langtour/internal/generic"
	"github.com/marcodamonte/langtour/internal/model"
	"github.com/marcodamonte/langtour/pkg/helpers"
)

func (r *Runner) basicTypes(_ context.Context, w io.Writer) error {
	var (
		name      string = "Ahmed"
		age       int    = 33
		isStudent bool   = true
		anything  any    = "this can be anything"
	)
	fmt.Fprintf(w, "  Name: %s, Age: %d, Student: %v, anything: %v\n", name, age, isStudent, anything)

	anything = 42
	fmt.Fprintf(w, "  anything now holds %T(%v)\n", anything, anything)
	return nil
}

func (r *Runner) arrays(_ context.Context, w io.Writer) error {
	numbers := []int{1, 2, 3, 4, 5}
	words := []string{"hello", "world"}
	fixed := [3]string{"a", "b", "c"} // array: length is part of the type

	// (string | number)[] becomes a slice of tagged operands.
	mixed := []combine.Operand{combine.Num(1), combine.Text("two"), combine.Num(3), combine.Text("four")}

	// A tuple is just a small struct.
	tuple := struct {
		Label string
		N     int
		OK    bool
	}{"test", 42, true}

	fmt.Fprintln(w, "  Numbers:", numbers)
	fmt.Fprintln(w, "  Strings:", words)
	fmt.Fprintf(w, "  Array:   %v (len %d)\n", fixed, len(fixed))
	fmt.Fprintln(w, "  Mixed:  ", mixed)
	fmt.Fprintf(w, "  Tuple:   %+v\n", tuple)
	return nil
}

func (r *Runner) interfaces(_ context.Context, w io.Writer) error {
	user := model.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	handleUser(w, user)

	admin := model.Admin{
		User:        model.User{ID: 2, Name: "Bob", Email: "bob@example.com"},
		Role:        model.RoleAdmin,
		Permissions: []string{"read", "write", "delete"},
	}
	handleAdmin(w, admin)

	fmt.Fprintln(w, "\n  Validation:")
	for _, rec := range []any{user, admin} {
		fmt.Fprintf(w, "    %-5T valid=%v\n", rec, model.Validate(rec) == nil)
	}
	bad := admin
	bad.Role = "janitor"
	if err := model.Validate(bad); err != nil {
		fmt.Fprintf(w, "    role %q rejected: %v\n", bad.Role, err)
	}

	// Admin embeds User, so it can be passed wherever a User is needed.
	fmt.Fprintln(w, "\n  Admin used as User:")
	handleUser(w, admin.User)
	return nil
}

func handleUser(w io.Writer, u model.User) {
	fmt.Fprintf(w, "  User: %s (%s)\n", u.Name, u.Email)
	if u.Age != nil {
		fmt.Fprintf(w, "  Age: %d\n", *u.Age)
	}
}

func handleAdmin(w io.Writer, a model.Admin) {
	fmt.Fprintf(w, "  Admin: %s, Role: %s\n", a.Name, a.Role)
	fmt.Fprintf(w, "  Permissions: %s\n", strings.Join(a.Permissions, ", "))
}

func (r *Runner) typeAliases(_ context.Context, w io.Writer) error {
	for _, id := range []model.ID{model.NumericID(123), model.TextID("ABC-789")} {
		kind := "number"
		if id.Kind() == model.TextKind {
			kind = "text"
		}
		fmt.Fprintf(w, "  Processing ID: %s (%s)\n", id, kind)
	}

	for _, s := range []string{"pending", "archived"} {
		st, err := model.ParseStatus(s)
		if err != nil {
			fmt.Fprintf(w, "  Status rejected: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "  Status updated to: %s\n", st)
	}
	return nil
}

func (r *Runner) generics(_ context.Context, w io.Writer) error {
	first, ok := generic.First([]int{1, 2, 3})
	fmt.Fprintf(w, "  First element: %d (ok=%v)\n", first, ok)
	none, ok := generic.First([]string{})
	fmt.Fprintf(w, "  First of empty: %q (ok=%v)  ← zero value\n", none, ok)

	fmt.Fprintln(w, "  Swapped pair:", generic.Swap(generic.NewPair(5, "ten")))

	box := generic.NewBox(42, model.Green)
	fmt.Fprintf(w, "  Box value: %d (color %s)\n", box.Get(), box.Color())
	box.Set(43)
	fmt.Fprintf(w, "  Box value after Set: %d\n", box.Get())

	fmt.Fprintln(w, " ", generic.LogUserID(model.User{ID: 1}))
	fmt.Fprintln(w, " ", generic.LogUserID(model.Admin{User: model.User{ID: 2}}))
	return nil
}

func (r *Runner) enums(_ context.Context, w io.Writer) error {
	fmt.Fprintf(w, "  Selected color: %s\n", model.Red)
	fmt.Fprintf(w, "  Direction Up: %d (%s)\n", int(model.Up), model.Up)
	for d := model.Up; d <= model.Right; d++ {
		fmt.Fprintf(w, "    %d → %s\n", int(d), d)
	}
	return nil
}

func (r *Runner) readonly(_ context.Context, w io.Writer) error {
	p := model.NewPoint(3, 4)
	u := model.NewReadonlyUser(1, "Ada")
	fmt.Fprintf(w, "  Point: %s  x=%g y=%g\n", p, p.X(), p.Y())
	fmt.Fprintf(w, "  ReadonlyUser: id=%d name=%s (no setters exist)\n", u.ID(), u.Name())
	return nil
}

func (r *Runner) intersection(_ context.Context, w io.Writer) error {
	person := model.Person{HasName: model.HasName{Name: "Charlie"}, HasAge: model.HasAge{Age: 35}}
	fmt.Fprintln(w, " ", person)
	return nil
}

func (r *Runner) overloading(_ context.Context, w io.Writer) error {
	s, err := combine.Combine(combine.Text("Hello"), combine.Text(" World"))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "  Combine strings:", s)

	n, err := combine.Combine(combine.Num(5), combine.Num(10))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "  Combine numbers:", n)

	if _, err := combine.Combine(combine.Text("5"), combine.Num(10)); err != nil {
		fmt.Fprintln(w, "  Combine mixed:  ", err)
	}

	fmt.Fprintln(w, "  Add[int](2, 3)       =", combine.Add(2, 3))
	fmt.Fprintln(w, "  Add[string](\"a\",\"b\") =", combine.Add("a", "b"))
	return nil
}

func (r *Runner) conditionalTypes(_ context.Context, w io.Writer) error {
	fmt.Fprintln(w, "  IsString[string] =", generic.IsString[string]())
	fmt.Fprintln(w, "  IsString[int]    =", generic.IsString[int]())
	fmt.Fprintln(w, "  IsNumber[float64] =", generic.IsNumber[float64]())
	fmt.Fprintln(w, "  IsNumber[string]  =", generic.IsNumber[string]())
	fmt.Fprintln(w, "  IsString[Color]  =", generic.IsString[model.Color]())

	fmt.Fprintln(w, "\n  Describe via any(v).(type):")
	fmt.Fprintln(w, "   ", generic.Describe(42))
	fmt.Fprintln(w, "   ", generic.Describe("hello"))
	fmt.Fprintln(w, "   ", generic.Describe(model.Blue))
	fmt.Fprintln(w, "   ", generic.Describe(model.Up))
	fmt.Fprintln(w, "   ", generic.Describe(model.User{ID: 7}))
	return nil
}

func (r *Runner) utilities(_ context.Context, w io.Writer) error {
	for _, n := range []int{4, 0, -3} {
		fmt.Fprintf(w, "  Square(%d) = %d\n", n, helpers.Square(n))
	}
	fmt.Fprintf(w, "  FullName(%q, %q) = %q\n", "Ada", "Lovelace", helpers.FullName("Ada", "Lovelace"))
	return nil
}
