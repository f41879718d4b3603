// Package metrics counts what the simulated fetches did. Every counter lives
// twice: as an atomic field for the end-of-run summary, and as a prometheus
// collector on whatever registry the caller provides.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels one finished fetch.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// Snapshot is a point-in-time copy of the counters. Fields are read one by
// one, so they are not mutually consistent while fetches are in flight.
type Snapshot struct {
	Fetches   int64
	Succeeded int64
	Failed    int64
	Cancelled int64
	Retries   int64
}

// Recorder is safe for concurrent use. A nil *Recorder records nothing.
type Recorder struct {
	fetches   int64
	succeeded int64
	failed    int64
	cancelled int64
	retries   int64

	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	retryTotal    prometheus.Counter
}

// NewRecorder registers the collectors on reg. Pass a fresh
// prometheus.NewRegistry() per Recorder; registering twice on the same
// registry panics.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "langtour_fetch_total",
			Help: "Simulated user fetches by outcome.",
		}, []string{"outcome"}),
		fetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "langtour_fetch_duration_seconds",
			Help:    "Simulated latency of user fetches.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5},
		}),
		retryTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "langtour_retry_attempts_total",
			Help: "Attempts made after a failed first try.",
		}),
	}
}

// ObserveFetch records one finished fetch and how long it took.
func (r *Recorder) ObserveFetch(o Outcome, took time.Duration) {
	if r == nil {
		return
	}
	atomic.AddInt64(&r.fetches, 1)
	switch o {
	case OutcomeOK:
		atomic.AddInt64(&r.succeeded, 1)
	case OutcomeFailed:
		atomic.AddInt64(&r.failed, 1)
	case OutcomeCancelled:
		atomic.AddInt64(&r.cancelled, 1)
	}
	r.fetchTotal.WithLabelValues(string(o)).Inc()
	r.fetchDuration.Observe(took.Seconds())
}

// ObserveRetry records one retry (any attempt after the first).
func (r *Recorder) ObserveRetry() {
	if r == nil {
		return
	}
	atomic.AddInt64(&r.retries, 1)
	r.retryTotal.Inc()
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return Snapshot{
		Fetches:   atomic.LoadInt64(&r.fetches),
		Succeeded: atomic.LoadInt64(&r.succeeded),
		Failed:    atomic.LoadInt64(&r.failed),
		Cancelled: atomic.LoadInt64(&r.cancelled),
		Retries:   atomic.LoadInt64(&r.retries),
	}
}
