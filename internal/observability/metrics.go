package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/probelabs/llm-probe/services/providers"
	"github.com/probelabs/llm-probe/services/selector"
)

// Metrics implements selector.Metrics on top of Prometheus collectors.
type Metrics struct {
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the selection metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "llmprobe_hello_attempts_total",
			Help: "Provider attempt outcomes during hello selection.",
		}, []string{"provider", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "llmprobe_hello_duration_seconds",
			Help:    "Duration of individual provider hello calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}

	reg.MustRegister(m.attempts, m.duration)
	return m
}

// ObserveAttempt records one candidate attempt. Skipped candidates count
// toward attempts but not duration, since no call was made.
func (m *Metrics) ObserveAttempt(provider providers.ProviderID, outcome string, d time.Duration) {
	m.attempts.WithLabelValues(provider.String(), outcome).Inc()
	if outcome != selector.OutcomeSkipped {
		m.duration.WithLabelValues(provider.String()).Observe(d.Seconds())
	}
}
