package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/marcodamonte/langtour/internal/fetch"
	"github.com/marcodamonte/langtour/internal/model"
	"github.com/marcodamonte/langtour/internal/result"
)

// chaining is the Go rendition of fetch(...).then(...).then(...).catch(...):
// each step runs only if the previous one succeeded, and the failure, if
// any, comes out at the end.
func (r *Runner) chaining(ctx context.Context, w io.Writer) error {
	for _, id := range []int{1, 0} {
		u, err := r.opts.Fetcher.FetchUser(ctx, id)
		fetched := result.From(u, err)

		userID := result.Map(fetched, func(u model.User) int {
			fmt.Fprintln(w, "  User fetched:", u)
			return u.ID
		})
		email := result.Then(userID, func(id int) (string, error) {
			fmt.Fprintln(w, "  User ID:", id)
			return fmt.Sprintf("user%d@example.com", id), nil
		})

		if !email.IsOk() {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(w, "  Error:", email.Message())
		}
	}
	return nil
}

func (r *Runner) asyncAwait(ctx context.Context, w io.Writer) error {
	f := r.opts.Fetcher

	fmt.Fprintln(w, "  Fetching user...")
	u, err := f.FetchUser(ctx, 1)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "  User fetched:", u)

	fmt.Fprintln(w, "\n  Fetching users one at a time (failures skipped)...")
	users, err := f.FetchSequential(ctx, []int{1, -1, 3})
	if err != nil {
		return err
	}
	printUsers(w, users)

	fmt.Fprintln(w, "\n  Fetching users in parallel...")
	users, err = f.FetchAll(ctx, []int{1, 2, 3})
	if err != nil {
		return err
	}
	printUsers(w, users)

	fmt.Fprintln(w, "\n  Fetching users in parallel, one bad id...")
	if _, err := f.FetchAll(ctx, []int{1, 0, 3}); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintln(w, "  Whole batch failed:", err)
	}
	return nil
}

func printUsers(w io.Writer, users []model.User) {
	fmt.Fprintf(w, "  %d user(s):\n", len(users))
	for _, u := range users {
		fmt.Fprintln(w, "   ", u)
	}
}

func (r *Runner) retry(ctx context.Context, w io.Writer) error {
	f := r.opts.Fetcher

	u, err := f.FetchWithRetry(ctx, 1, 2)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintln(w, "  Failed after retries:", err)
	} else {
		fmt.Fprintln(w, "  User fetched with retry:", u)
	}

	if _, err := f.FetchWithRetry(ctx, 0, r.opts.MaxRetries); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintln(w, "  Failed after retries:", err)
	}
	return nil
}

// race staggers the latency by id so the winner is predictable: the
// smallest id answers first.
func (r *Runner) race(ctx context.Context, w io.Writer) error {
	ids := []int{3, 1, 2}
	f := r.opts.Fetcher.WithDelays(func(id int) time.Duration {
		return time.Duration(id) * 100 * time.Millisecond
	})

	fmt.Fprintln(w, "  Racing ids", ids)
	u, err := f.Race(ctx, ids)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "  Race winner:", u)
	return nil
}

func (r *Runner) apiCall(ctx context.Context, w io.Writer) error {
	users := fetch.APICall[[]model.User](ctx, r.opts.Clock, r.opts.APIDelay, "/api/users")
	if users.IsOk() {
		fmt.Fprintf(w, "  GET /api/users → success, %d user(s) (zero value of []User)\n", len(users.Value))
	} else {
		fmt.Fprintln(w, "  GET /api/users → failure:", users.Message())
	}

	count := fetch.APICall[int](ctx, r.opts.Clock, r.opts.APIDelay, "")
	if !count.IsOk() {
		fmt.Fprintln(w, "  GET <empty> → failure:", count.Message())
	}
	return ctx.Err()
}
