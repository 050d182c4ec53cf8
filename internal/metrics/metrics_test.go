package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/PipeOpsHQ/support-chat/widget"
)

func TestObserveRenderCountsByMode(t *testing.T) {
	m := MustNew(prometheus.NewRegistry())

	m.ObserveRender(widget.ModeDirectAgentURL, time.Millisecond)
	m.ObserveRender(widget.ModeDirectAgentURL, time.Millisecond)
	m.ObserveRender(widget.ModeCloudWithDefaultRuntime, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.renders.WithLabelValues(string(widget.ModeDirectAgentURL))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues(string(widget.ModeCloudWithDefaultRuntime))))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.renders.WithLabelValues(string(widget.ModeCloudWithExplicitRuntime))))
}

func TestObserveFailure(t *testing.T) {
	m := MustNew(prometheus.NewRegistry())
	m.ObserveFailure()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renderFailures))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRender(widget.ModeDirectAgentURL, time.Millisecond)
		m.ObserveFailure()
	})
}

func TestMustNewPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustNew(reg)
	assert.Panics(t, func() { MustNew(reg) })
}
