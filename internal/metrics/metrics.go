// internal/metrics/metrics.go

// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the service layer records through.
type Recorder interface {
	RecordTokenIssued(tokenType string)
	RecordLoginFailure()
	RecordProvisionOutcome(productCode, outcome string)
	RecordProvisionLatency(d time.Duration)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	tokensIssued     *prometheus.CounterVec
	loginFailures    prometheus.Counter
	provisionOutcome *prometheus.CounterVec
	provisionLatency prometheus.Histogram
}

// NewCollector registers the collector's metrics on reg and returns it.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tokensIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "accountd_tokens_issued_total",
			Help: "Credentials minted, by token type.",
		}, []string{"token_type"}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accountd_login_failures_total",
			Help: "Failed login attempts.",
		}),
		provisionOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "accountd_provision_outcomes_total",
			Help: "Enrollment provisioning results, by product code and outcome.",
		}, []string{"product", "outcome"}),
		provisionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "accountd_provision_latency_seconds",
			Help:    "Latency of outbound provisioning calls.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.tokensIssued,
		c.loginFailures,
		c.provisionOutcome,
		c.provisionLatency,
	)

	return c
}

func (c *Collector) RecordTokenIssued(tokenType string) {
	c.tokensIssued.WithLabelValues(tokenType).Inc()
}

func (c *Collector) RecordLoginFailure() {
	c.loginFailures.Inc()
}

func (c *Collector) RecordProvisionOutcome(productCode, outcome string) {
	c.provisionOutcome.WithLabelValues(productCode, outcome).Inc()
}

func (c *Collector) RecordProvisionLatency(d time.Duration) {
	c.provisionLatency.Observe(d.Seconds())
}

// Handler exposes the registry for the /metrics endpoint.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards everything. Used when metrics are disabled
// and in tests.
type Nop struct{}

func (Nop) RecordTokenIssued(string) {}

func (Nop) RecordLoginFailure() {}

func (Nop) RecordProvisionOutcome(string, string) {}

func (Nop) RecordProvisionLatency(time.Duration) {}
