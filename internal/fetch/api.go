package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/marcodamonte/langtour/internal/result"
)

// ErrNoEndpoint is the failure of an APICall without an endpoint.
var ErrNoEndpoint = errors.New("endpoint is required")

// APICall simulates a typed API call: after delay it succeeds with the zero
// value of T. Failures come back inside the Result, not as a second return.
// A nil clock means the real clock.
func APICall[T any](ctx context.Context, clock clockwork.Clock, delay time.Duration, endpoint string) result.Result[T] {
	if endpoint == "" {
		return result.Err[T](ErrNoEndpoint)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if err := sleep(ctx, clock, delay); err != nil {
		return result.Err[T](fmt.Errorf("call %s: %w", endpoint, err))
	}
	var zero T
	return result.Ok(zero)
}
