// Package metrics records counters for a single batch run and can flush them
// to a Prometheus textfile for node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nhl_season"

// Request outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder wraps a private Prometheus registry. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	games    prometheus.Counter
	logos    *prometheus.CounterVec
}

// NewRecorder builds a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Remote requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Remote request latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		games: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_total",
			Help:      "Games collected from the schedule endpoint.",
		}),
		logos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logos_total",
			Help:      "Teams processed by the logo fetcher, by result.",
		}, []string{"result"}),
	}
	r.registry.MustRegister(r.requests, r.duration, r.games, r.logos)
	return r
}

// RecordRequest counts one remote request and observes its latency.
func (r *Recorder) RecordRequest(endpoint string, d time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.requests.WithLabelValues(endpoint, outcome).Inc()
	r.duration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// AddGames adds n collected games.
func (r *Recorder) AddGames(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.games.Add(float64(n))
}

// RecordLogo counts one team as saved or failed.
func (r *Recorder) RecordLogo(saved bool) {
	if r == nil {
		return
	}
	result := "saved"
	if !saved {
		result = "failed"
	}
	r.logos.WithLabelValues(result).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// WriteTextfile atomically writes all metrics in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
