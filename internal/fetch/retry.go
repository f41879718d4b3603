package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/marcodamonte/langtour/internal/logging"
	"github.com/marcodamonte/langtour/internal/metrics"
	"github.com/marcodamonte/langtour/internal/model"
)

// DefaultMaxAttempts is used when a policy or caller asks for <= 0 attempts.
const DefaultMaxAttempts = 3

// RetryPolicy is a fixed-count, constant-delay policy. No exponential growth,
// no jitter.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Clock       clockwork.Clock
	Logger      logrus.FieldLogger
	Metrics     *metrics.Recorder
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Clock == nil {
		p.Clock = clockwork.NewRealClock()
	}
	if p.Logger == nil {
		p.Logger = logging.Discard()
	}
	return p
}

// RetryError is returned once every attempt has failed. Err is the last
// failure observed.
type RetryError struct {
	Attempts int
	Err      error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *RetryError) Unwrap() error { return e.Err }

// Retry calls op until it succeeds or p.MaxAttempts calls have failed,
// waiting p.Delay between attempts (never after the last one). attempt
// starts at 1.
//
// If ctx is cancelled during a wait, the returned *RetryError joins
// ctx.Err() with the last failure.
func Retry[T any](ctx context.Context, p RetryPolicy, op func(ctx context.Context, attempt int) (T, error)) (T, error) {
	p = p.withDefaults()

	var (
		zero    T
		lastErr error
	)
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		log := p.Logger.WithField("attempt", attempt)

		if attempt > 1 {
			p.Metrics.ObserveRetry()
			if err := sleep(ctx, p.Clock, p.Delay); err != nil {
				return zero, &RetryError{Attempts: attempt - 1, Err: errors.Join(err, lastErr)}
			}
		}

		log.Info("attempting")
		v, err := op(ctx, attempt)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt < p.MaxAttempts {
			log.WithError(err).Warn("attempt failed, retrying")
		} else {
			log.WithError(err).Warn("attempt failed, giving up")
		}
	}
	return zero, &RetryError{Attempts: p.MaxAttempts, Err: lastErr}
}

// FetchWithRetry retries FetchUser up to maxRetries times (DefaultMaxAttempts
// when maxRetries <= 0), waiting the configured RetryDelay in between.
func (f *Fetcher) FetchWithRetry(ctx context.Context, id, maxRetries int) (model.User, error) {
	policy := RetryPolicy{
		MaxAttempts: maxRetries,
		Delay:       f.cfg.RetryDelay,
		Clock:       f.cfg.Clock,
		Logger:      f.cfg.Logger.WithField("user_id", id),
		Metrics:     f.cfg.Metrics,
	}
	return Retry(ctx, policy, func(ctx context.Context, _ int) (model.User, error) {
		return f.FetchUser(ctx, id)
	})
}
