package demo

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/marcodamonte/langtour/internal/fetch"
	"github.com/marcodamonte/langtour/internal/metrics"
)

// newTestRunner builds a Runner with no simulated latency (the race section
// still staggers by id, a few hundred milliseconds at most).
func newTestRunner(buf *bytes.Buffer) *Runner {
	rec := metrics.NewRecorder(prometheus.NewRegistry())
	return New(Options{
		Out:     buf,
		Fetcher: fetch.New(fetch.Config{Metrics: rec}),
		Metrics: rec,
	})
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRunPrintsSectionsInOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestRunner(&buf).Run(testContext(t)))

	out := buf.String()
	last := -1
	for _, s := range Sections() {
		i := strings.Index(out, "━━━ "+s.Title+" ━━━")
		require.GreaterOrEqual(t, i, 0, "missing section %s", s.Name)
		assert.Greater(t, i, last, "section %s out of order", s.Name)
		last = i
	}
	assert.True(t, strings.HasPrefix(out, "=== Go Types & Async Tour ==="))
	assert.Contains(t, out, "=== All Examples Completed ===")
}

func TestRunOutputs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestRunner(&buf).Run(testContext(t)))
	out := buf.String()

	for _, want := range []string{
		"Name: Ahmed, Age: 33, Student: true",
		"Admin: Bob, Role: admin",
		"Permissions: read, write, delete",
		"Processing ID: ABC-789 (text)",
		"Selected color: RED",
		"Direction Up: 1 (Up)",
		"Charlie is 35 years old",
		"User ID: 1",
		"Error: fetch user 0: invalid user ID",
		"Whole batch failed:",
		"User fetched with retry:",
		"Failed after retries: failed after 3 attempt(s)",
		`Race winner: User{id=1 name="John Doe"`,
		"Combine strings: Hello World",
		"Combine numbers: 15",
		"invalid types",
		"Square(-3) = 9",
		`"Ada Lovelace"`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestRunOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestRunner(&buf).Run(testContext(t), "utilities", "overloading"))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "━━━ "))
	assert.Less(t, strings.Index(out, "Overloading"), strings.Index(out, "Exported utilities"),
		"tour order wins over argument order")
}

func TestRunUnknownSection(t *testing.T) {
	var buf bytes.Buffer
	err := newTestRunner(&buf).Run(testContext(t), "retry", "nope")
	assert.ErrorIs(t, err, ErrUnknownSection)
	assert.Contains(t, err.Error(), "nope")
	assert.Empty(t, buf.String())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	var buf bytes.Buffer
	err := newTestRunner(&buf).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, buf.String(), "All Examples Completed")
}

func TestRunSurvivesFailingSection(t *testing.T) {
	// A drained limiter with an hour-long refill refuses the first fetch
	// outright, so async-await fails without the context being done.
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow())

	logger, hook := logtest.NewNullLogger()
	var buf bytes.Buffer
	runner := New(Options{
		Out:     &buf,
		Logger:  logger,
		Fetcher: fetch.New(fetch.Config{Limiter: limiter}),
	})

	ctx := testContext(t)
	require.NoError(t, runner.Run(ctx, "async-await", "overloading"))
	require.NoError(t, ctx.Err())

	out := buf.String()
	assert.Contains(t, out, "Fetching user...")
	assert.NotContains(t, out, "User fetched:")
	assert.Contains(t, out, "━━━ Overloading — Combine ━━━")
	assert.Contains(t, out, "Combine strings: Hello World")
	assert.Contains(t, out, "=== All Examples Completed ===")

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "section failed", entry.Message)
	assert.Equal(t, "async-await", entry.Data["section"])
	err, ok := entry.Data[logrus.ErrorKey].(error)
	require.True(t, ok)
	var fe *fetch.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.ID)
	assert.NotErrorIs(t, err, fetch.ErrInvalidUserID)
}

func TestRunPrintsMetrics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestRunner(&buf).Run(testContext(t), "retry"))
	// One good fetch, then three failed attempts for id 0.
	assert.Contains(t, buf.String(), "fetches=4 succeeded=1 failed=3 cancelled=0 retries=2")
}

func TestSectionsIsACopy(t *testing.T) {
	s := Sections()
	s[0].Name = "changed"
	assert.Equal(t, "basic-types", Sections()[0].Name)
}
