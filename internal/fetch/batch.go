package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/marcodamonte/langtour/internal/model"
	"github.com/marcodamonte/langtour/internal/result"
)

// FetchSequential fetches ids one after another. Failed ids are logged and
// skipped; the users that did arrive keep input order. Only a cancelled ctx
// stops the loop early, returning what was fetched so far and ctx.Err().
func (f *Fetcher) FetchSequential(ctx context.Context, ids []int) ([]model.User, error) {
	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		u, err := f.FetchUser(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return users, ctx.Err()
			}
			f.cfg.Logger.WithField("user_id", id).WithError(err).Warn("failed to fetch user")
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// FetchAll fetches every id concurrently. The result has one user per id, in
// input order. The first failure fails the whole batch and cancels the
// fetches still in flight.
func (f *Fetcher) FetchAll(ctx context.Context, ids []int) ([]model.User, error) {
	users := make([]model.User, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			u, err := f.FetchUser(gctx, id)
			if err != nil {
				return err
			}
			users[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return users, nil
}

// Race fetches every id concurrently and returns the first fetch to settle,
// whether it succeeded or failed. The losers are cancelled.
func (f *Fetcher) Race(ctx context.Context, ids []int) (model.User, error) {
	if len(ids) == 0 {
		return model.User{}, ErrNoCandidates
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so cancelled losers can still send and exit.
	ch := make(chan result.Result[model.User], len(ids))
	for _, id := range ids {
		go func() {
			u, err := f.FetchUser(ctx, id)
			ch <- result.From(u, err)
		}()
	}

	select {
	case r := <-ch:
		return r.Get()
	case <-ctx.Done():
		return model.User{}, ctx.Err()
	}
}
