// Package metrics defines the Prometheus metrics of the puzzle service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation results.
const (
	ResultSuccess   = "success"
	ResultSkipped   = "skipped"
	ResultExhausted = "exhausted"
	ResultError     = "error"
)

// Partial-write stages: the last record a failed run managed to store.
const (
	StageDated   = "dated"
	StageCurrent = "current"
)

var (
	// generationRuns counts trigger runs.
	// Labels: result (success, skipped, exhausted, error)
	generationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qiyaas",
		Subsystem: "generation",
		Name:      "runs_total",
		Help:      "Total puzzle generation runs by result",
	}, []string{"result"})

	generationRerolls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qiyaas",
		Subsystem: "generation",
		Name:      "rerolls_total",
		Help:      "Total clue rerolls taken during composition",
	})

	// partialWrites counts runs that stored some but not all records.
	// Labels: written (StageDated or StageCurrent)
	partialWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qiyaas",
		Subsystem: "generation",
		Name:      "partial_writes_total",
		Help:      "Generation runs that failed after writing some records",
	}, []string{"written"})

	repairs = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qiyaas",
		Subsystem: "generation",
		Name:      "repairs_total",
		Help:      "Skipped runs that rewrote records a partial write left behind",
	})

	ledgerSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "qiyaas",
		Subsystem: "ledger",
		Name:      "words",
		Help:      "Number of words in the used-words ledger",
	})

	// httpRequests counts API requests.
	// Labels: route (gin route pattern), status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qiyaas",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total API requests by route and status",
	}, []string{"route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "qiyaas",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "API request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route"})
)

// RecordGeneration counts one trigger run.
func RecordGeneration(result string) {
	generationRuns.WithLabelValues(result).Inc()
}

// RecordRerolls adds composition rerolls.
func RecordRerolls(n int) {
	if n > 0 {
		generationRerolls.Add(float64(n))
	}
}

// RecordPartialWrite counts a run that failed after storing records up to
// stage.
func RecordPartialWrite(stage string) {
	partialWrites.WithLabelValues(stage).Inc()
}

// RecordRepair counts a skipped run that completed a partial write.
func RecordRepair() {
	repairs.Inc()
}

// SetLedgerSize reports the current ledger size.
func SetLedgerSize(n int) {
	ledgerSize.Set(float64(n))
}

// RecordRequest counts one API request.
func RecordRequest(route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
