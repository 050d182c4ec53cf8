package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/PipeOpsHQ/support-chat/widget"
)

// Metrics exposes Prometheus collectors for widget page renders.
type Metrics struct {
	renders        *prometheus.CounterVec
	renderFailures prometheus.Counter
	renderDuration prometheus.Histogram
}

// MustNew registers the collectors with reg and panics on duplicate
// registration. Tests pass a fresh prometheus.NewRegistry().
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	renders := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "support_chat",
			Name:      "page_renders_total",
			Help:      "Widget pages rendered, by resolved connection mode.",
		},
		[]string{"mode"},
	)
	renderFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "support_chat",
			Name:      "render_failures_total",
			Help:      "Widget pages that failed to render.",
		},
	)
	renderDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "support_chat",
			Name:      "render_duration_seconds",
			Help:      "Time spent resolving the connection and rendering the page.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
	reg.MustRegister(renders, renderFailures, renderDuration)

	return &Metrics{
		renders:        renders,
		renderFailures: renderFailures,
		renderDuration: renderDuration,
	}
}

func (m *Metrics) ObserveRender(mode widget.Mode, took time.Duration) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(string(mode)).Inc()
	m.renderDuration.Observe(took.Seconds())
}

func (m *Metrics) ObserveFailure() {
	if m == nil {
		return
	}
	m.renderFailures.Inc()
}
