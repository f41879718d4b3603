package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/marcodamonte/langtour/internal/metrics"
	"github.com/marcodamonte/langtour/internal/model"
	"github.com/marcodamonte/langtour/internal/result"
)

// testContext bounds every test so a missed Advance fails instead of hanging.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// fetchAsync runs fn in a goroutine and hands back its outcome.
func fetchAsync[T any](fn func() (T, error)) <-chan result.Result[T] {
	ch := make(chan result.Result[T], 1)
	go func() {
		v, err := fn()
		ch <- result.From(v, err)
	}()
	return ch
}

func TestFetchUserPositiveIDs(t *testing.T) {
	ctx := testContext(t)
	f := New(Config{})

	for id := 1; id <= 25; id++ {
		u, err := f.FetchUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.NotEmpty(t, u.Name)
		assert.Equal(t, fmt.Sprintf("user%d@example.com", id), u.Email)
		assert.NoError(t, model.Validate(u))
	}
}

func TestFetchUserNonPositiveIDs(t *testing.T) {
	ctx := testContext(t)
	f := New(Config{})

	for _, id := range []int{0, -1, -100} {
		_, err := f.FetchUser(ctx, id)
		assert.ErrorIs(t, err, ErrInvalidUserID)

		var fe *FetchError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, id, fe.ID)
	}
}

func TestFetchUserWaitsForDelay(t *testing.T) {
	ctx := testContext(t)
	clock := clockwork.NewFakeClock()
	f := New(Config{Delay: 2 * time.Second, Clock: clock})

	done := fetchAsync(func() (model.User, error) { return f.FetchUser(ctx, 1) })

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)
	select {
	case <-done:
		t.Fatal("fetch returned before its delay elapsed")
	default:
	}

	clock.Advance(time.Second)
	r := <-done
	require.NoError(t, r.Err)
	assert.Equal(t, 1, r.Value.ID)
}

func TestFetchUserCancelled(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := metrics.NewRecorder(prometheus.NewRegistry())
	f := New(Config{Delay: time.Hour, Clock: clock, Metrics: rec})

	ctx, cancel := context.WithCancel(testContext(t))
	done := fetchAsync(func() (model.User, error) { return f.FetchUser(ctx, 1) })

	require.NoError(t, clock.BlockUntilContext(testContext(t), 1))
	cancel()

	r := <-done
	assert.ErrorIs(t, r.Err, context.Canceled)
	assert.Equal(t, int64(1), rec.Snapshot().Cancelled)
}

func TestFetchUserRateLimited(t *testing.T) {
	rec := metrics.NewRecorder(prometheus.NewRegistry())
	f := New(Config{Limiter: rate.NewLimiter(rate.Every(time.Hour), 1), Metrics: rec})

	_, err := f.FetchUser(testContext(t), 1)
	require.NoError(t, err, "first call uses the burst token")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	_, err = f.FetchUser(ctx, 2)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2, fe.ID)
	require.NoError(t, ctx.Err(), "the limiter refuses before the deadline passes")
	assert.Equal(t, metrics.Snapshot{Fetches: 2, Succeeded: 1, Failed: 1}, rec.Snapshot())
}

func TestFetchUserRateLimitCancelled(t *testing.T) {
	rec := metrics.NewRecorder(prometheus.NewRegistry())
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow())
	f := New(Config{Limiter: limiter, Metrics: rec})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.FetchUser(ctx, 1)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, metrics.Snapshot{Fetches: 1, Cancelled: 1}, rec.Snapshot())
}

func TestFetchUserMetrics(t *testing.T) {
	ctx := testContext(t)
	rec := metrics.NewRecorder(prometheus.NewRegistry())
	f := New(Config{Metrics: rec})

	_, _ = f.FetchUser(ctx, 1)
	_, _ = f.FetchUser(ctx, 0)

	assert.Equal(t, metrics.Snapshot{Fetches: 2, Succeeded: 1, Failed: 1}, rec.Snapshot())
}

func TestAPICall(t *testing.T) {
	ctx := testContext(t)

	r := APICall[model.User](ctx, nil, 0, "/users/1")
	require.True(t, r.IsOk())
	assert.Equal(t, model.User{}, r.Value)

	r = APICall[model.User](ctx, nil, 0, "")
	assert.ErrorIs(t, r.Err, ErrNoEndpoint)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	r = APICall[model.User](cancelled, nil, time.Hour, "/users/1")
	assert.ErrorIs(t, r.Err, context.Canceled)
}

func TestAPICallWaitsOnClock(t *testing.T) {
	ctx := testContext(t)
	clock := clockwork.NewFakeClock()

	done := make(chan result.Result[int], 1)
	go func() { done <- APICall[int](ctx, clock, time.Second, "/count") }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)

	r := <-done
	require.True(t, r.IsOk())
	assert.Equal(t, 0, r.Value)
}
