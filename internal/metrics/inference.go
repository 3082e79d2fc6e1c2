package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tsawler/reviewsense"
)

// InferenceMetrics records analyzer events. It implements reviewsense.Recorder.
type InferenceMetrics struct {
	InferenceTotal    *prometheus.CounterVec
	InferenceDuration *prometheus.HistogramVec
	FallbackTotal     *prometheus.CounterVec
	BreakerState      prometheus.Gauge
	ArtifactReady     *prometheus.GaugeVec
}

var _ reviewsense.Recorder = (*InferenceMetrics)(nil)

// NewInferenceMetrics creates and registers inference metrics on the given registry.
func NewInferenceMetrics(reg prometheus.Registerer) *InferenceMetrics {
	m := &InferenceMetrics{
		InferenceTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "total",
			Help:      "Total number of analyzed reviews, by provenance and label.",
		}, []string{"provenance", "label"}),
		InferenceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "duration_seconds",
			Help:      "Duration of a single analysis in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"provenance"}),
		FallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "fallback_total",
			Help:      "Total number of fallback substitutions, by reason.",
		}, []string{"reason"}),
		BreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "breaker_state",
			Help:      "Classifier circuit breaker state (0=closed, 1=half-open, 2=open).",
		}),
		ArtifactReady: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "artifacts",
			Name:      "ready",
			Help:      "Whether an artifact loaded at startup (1) or not (0).",
		}, []string{"artifact"}),
	}

	reg.MustRegister(m.InferenceTotal, m.InferenceDuration, m.FallbackTotal, m.BreakerState, m.ArtifactReady)
	return m
}

// ObserveInference counts one analysis and its latency.
func (m *InferenceMetrics) ObserveInference(provenance reviewsense.Provenance, label reviewsense.Label, elapsed time.Duration) {
	m.InferenceTotal.WithLabelValues(string(provenance), string(label)).Inc()
	m.InferenceDuration.WithLabelValues(string(provenance)).Observe(elapsed.Seconds())
}

// ObserveFallback counts a fallback substitution.
func (m *InferenceMetrics) ObserveFallback(reason string) {
	m.FallbackTotal.WithLabelValues(reason).Inc()
}

// ObserveBreakerState records the breaker's new state.
func (m *InferenceMetrics) ObserveBreakerState(state string) {
	m.BreakerState.Set(stateToFloat(state))
}

// SetAvailability publishes the startup availability flags.
func (m *InferenceMetrics) SetAvailability(a *reviewsense.Availability) {
	m.ArtifactReady.WithLabelValues("vocabulary").Set(boolToFloat(a.VocabularyReady()))
	m.ArtifactReady.WithLabelValues("classifier").Set(boolToFloat(a.ClassifierReady()))
}

func stateToFloat(state string) float64 {
	switch state {
	case "closed":
		return 0
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return -1
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
