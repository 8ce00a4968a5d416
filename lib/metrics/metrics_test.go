package metrics

import (
	"testing"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/generic"
	"github.com/stretchr/testify/require"
)

// testCounter ignores labels, so every `With` adds to the same value.
type testCounter struct {
	value  float64
	labels []string
}

func (c *testCounter) With(labelValues ...string) metrics.Counter {
	c.labels = labelValues
	return c
}

func (c *testCounter) Add(delta float64) {
	c.value += delta
}

func TestLedgerMetricsAddTransition(t *testing.T) {
	counter := &testCounter{}
	m := NopLedgerMetrics()
	m.TransitionsTotal = counter

	m.AddTransition("cast-vote", ResultCommitted)
	m.AddTransition("cast-vote", "rejected")
	require.Equal(t, float64(2), counter.value)
	require.Equal(t, []string{LedgerType, "cast-vote", LedgerResult, "rejected"}, counter.labels)
}

func TestLedgerMetricsHeight(t *testing.T) {
	gauge := generic.NewGauge("height")
	m := NopLedgerMetrics()
	m.Height = gauge

	m.SetHeight(10)
	require.Equal(t, float64(10), gauge.Value())
}

func TestAPIMetricsErrors(t *testing.T) {
	requests := &testCounter{}
	errs := &testCounter{}
	m := NopAPIMetrics()
	m.RequestsTotal = requests
	m.RequestErrorsTotal = errs

	m.AddRequest(time.Now(), "/polls/{id}", "GET", "200")
	m.AddRequest(time.Now(), "/polls/{id}", "GET", "404")
	require.Equal(t, float64(2), requests.value)
	require.Equal(t, float64(1), errs.value)
}
