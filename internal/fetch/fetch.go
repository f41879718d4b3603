// Package fetch simulates a slow user backend and the usual ways of calling
// it: one at a time, with retries, all at once, and first-wins.
//
// Latency is simulated on an injectable clockwork.Clock, so tests drive time
// with a fake clock instead of sleeping.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/marcodamonte/langtour/internal/logging"
	"github.com/marcodamonte/langtour/internal/metrics"
	"github.com/marcodamonte/langtour/internal/model"
)

// Default latencies of the simulated backend.
const (
	DefaultDelay      = 2 * time.Second
	DefaultRetryDelay = time.Second
)

var (
	// ErrInvalidUserID is returned for ids <= 0.
	ErrInvalidUserID = errors.New("invalid user ID")
	// ErrNoCandidates is returned by Race when given no ids.
	ErrNoCandidates = errors.New("race needs at least one id")
)

// FetchError records which id failed and why.
type FetchError struct {
	ID  int
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch user %d: %v", e.ID, e.Err) }

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *FetchError) Unwrap() error { return e.Err }

// Config holds Fetcher construction parameters.
type Config struct {
	// Delay is the simulated latency of every fetch. Zero means no wait.
	Delay time.Duration

	// DelayFunc, when set, overrides Delay per id.
	DelayFunc func(id int) time.Duration

	// RetryDelay is the constant wait between FetchWithRetry attempts.
	RetryDelay time.Duration

	// Clock drives every simulated wait. Defaults to the real clock.
	Clock clockwork.Clock

	// Limiter, if set, throttles calls before they reach the backend.
	Limiter *rate.Limiter

	// Logger defaults to a discarding logger.
	Logger logrus.FieldLogger

	// Metrics may be nil.
	Metrics *metrics.Recorder
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Clock == nil {
		out.Clock = clockwork.NewRealClock()
	}
	if out.Logger == nil {
		out.Logger = logging.Discard()
	}
	if out.DelayFunc == nil {
		d := out.Delay
		out.DelayFunc = func(int) time.Duration { return d }
	}
	return out
}

// Fetcher is the simulated user backend. It is safe for concurrent use.
type Fetcher struct {
	cfg Config
}

func New(cfg Config) *Fetcher {
	return &Fetcher{cfg: cfg.withDefaults()}
}

// WithDelays returns a copy of f whose latency depends on the id.
func (f *Fetcher) WithDelays(fn func(id int) time.Duration) *Fetcher {
	cfg := f.cfg
	cfg.DelayFunc = fn
	return &Fetcher{cfg: cfg}
}

// FetchUser waits the simulated latency, then returns a synthesized user for
// a positive id or a *FetchError wrapping ErrInvalidUserID otherwise.
// Cancelling ctx aborts the wait.
func (f *Fetcher) FetchUser(ctx context.Context, id int) (model.User, error) {
	start := f.cfg.Clock.Now()

	if f.cfg.Limiter != nil {
		if err := f.cfg.Limiter.Wait(ctx); err != nil {
			// Wait also refuses up front when the deadline is too close.
			outcome := metrics.OutcomeFailed
			if ctx.Err() != nil {
				outcome = metrics.OutcomeCancelled
			}
			f.cfg.Metrics.ObserveFetch(outcome, f.cfg.Clock.Since(start))
			return model.User{}, &FetchError{ID: id, Err: err}
		}
	}

	if err := sleep(ctx, f.cfg.Clock, f.cfg.DelayFunc(id)); err != nil {
		f.cfg.Metrics.ObserveFetch(metrics.OutcomeCancelled, f.cfg.Clock.Since(start))
		return model.User{}, &FetchError{ID: id, Err: err}
	}

	if id <= 0 {
		f.cfg.Metrics.ObserveFetch(metrics.OutcomeFailed, f.cfg.Clock.Since(start))
		return model.User{}, &FetchError{ID: id, Err: ErrInvalidUserID}
	}

	f.cfg.Metrics.ObserveFetch(metrics.OutcomeOK, f.cfg.Clock.Since(start))
	f.cfg.Logger.WithField("user_id", id).Debug("user fetched")
	return model.User{
		ID:    id,
		Name:  "John Doe",
		Email: fmt.Sprintf("user%d@example.com", id),
		Age:   model.Ptr(30),
	}, nil
}

// sleep waits d on clock or until ctx is done. A non-positive d only checks ctx.
func sleep(ctx context.Context, clock clockwork.Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := clock.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.Chan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
