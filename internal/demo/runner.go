// Package demo runs the tour: a fixed list of sections, each printing what one
// language feature does.
//
// Each section prints its own expected failures and carries on. Run only
// returns an error when the context is cancelled or a section name is unknown.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/marcodamonte/langtour/internal/fetch"
	"github.com/marcodamonte/langtour/internal/logging"
	"github.com/marcodamonte/langtour/internal/metrics"
)

// ErrUnknownSection is returned by Run for a name not in Sections().
var ErrUnknownSection = errors.New("unknown section")

// Options holds Runner construction parameters.
type Options struct {
	Out        io.Writer
	Logger     logrus.FieldLogger
	Fetcher    *fetch.Fetcher
	Clock      clockwork.Clock
	APIDelay   time.Duration
	MaxRetries int
	Metrics    *metrics.Recorder // printed as a summary after the run, if set
}

type Runner struct {
	opts Options
}

func New(opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = fetch.New(fetch.Config{
			Delay:      fetch.DefaultDelay,
			RetryDelay: fetch.DefaultRetryDelay,
			Clock:      opts.Clock,
			Logger:     opts.Logger,
			Metrics:    opts.Metrics,
		})
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = fetch.DefaultMaxAttempts
	}
	return &Runner{opts: opts}
}

// Section is one step of the tour.
type Section struct {
	Name  string
	Title string
	run   func(r *Runner, ctx context.Context, w io.Writer) error
}

var sections = []Section{
	{"basic-types", "Basic types", (*Runner).basicTypes},
	{"arrays", "Arrays, slices and tuples", (*Runner).arrays},
	{"interfaces", "Interfaces and embedding — User, Admin", (*Runner).interfaces},
	{"type-aliases", "Type aliases and unions — ID, Status", (*Runner).typeAliases},
	{"generics", "Generics — First, Swap, Box[T], constraints", (*Runner).generics},
	{"enums", "Enums — Color, Direction", (*Runner).enums},
	{"readonly", "Read-only records", (*Runner).readonly},
	{"intersection", "Intersection types — Person", (*Runner).intersection},
	{"chaining", "Chaining results — Map, Then", (*Runner).chaining},
	{"async-await", "Waiting on simulated I/O — sequential, parallel", (*Runner).asyncAwait},
	{"retry", "Retry with constant delay", (*Runner).retry},
	{"race", "Race — first fetch wins", (*Runner).race},
	{"api-call", "Typed API call — Result[T]", (*Runner).apiCall},
	{"overloading", "Overloading — Combine", (*Runner).overloading},
	{"conditional-types", "Conditional types — IsString, IsNumber, Describe", (*Runner).conditionalTypes},
	{"utilities", "Exported utilities — Square, FullName", (*Runner).utilities},
}

// Sections lists the tour in run order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Run prints every section, or only the named ones (still in tour order).
func (r *Runner) Run(ctx context.Context, only ...string) error {
	selected, err := pick(only)
	if err != nil {
		return err
	}

	w := r.opts.Out
	fmt.Fprintln(w, "=== Go Types & Async Tour ===")

	for _, s := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}
		section(w, s.Title)
		if err := s.run(r, ctx, w); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.opts.Logger.WithField("section", s.Name).WithError(err).Error("section failed")
		}
	}

	if r.opts.Metrics != nil {
		m := r.opts.Metrics.Snapshot()
		fmt.Fprintf(w, "\n  fetches=%d succeeded=%d failed=%d cancelled=%d retries=%d\n",
			m.Fetches, m.Succeeded, m.Failed, m.Cancelled, m.Retries)
	}
	fmt.Fprintln(w, "\n=== All Examples Completed ===")
	return nil
}

func pick(only []string) ([]Section, error) {
	if len(only) == 0 {
		return sections, nil
	}
	want := make(map[string]bool, len(only))
	for _, name := range only {
		want[name] = true
	}
	var out []Section
	for _, s := range sections {
		if want[s.Name] {
			out = append(out, s)
			delete(want, s.Name)
		}
	}
	for _, name := range only {
		if want[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
		}
	}
	return out, nil
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n━━━ %s ━━━\n", title)
}
