package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type LedgerMetrics struct {
	Height metrics.Gauge

	TransitionsTotal          metrics.Counter
	TransitionDurationSeconds metrics.Histogram

	Polls      metrics.Counter
	Candidates metrics.Counter
	Votes      metrics.Counter
}

func (l *LedgerMetrics) SetHeight(height uint64) {
	l.Height.Set(float64(height))
}

// AddTransition counts one transition by type and result; `result` is
// `ResultCommitted` or the error kind that rejected it.
func (l *LedgerMetrics) AddTransition(t, result string) {
	l.TransitionsTotal.With(LedgerType, t, LedgerResult, result).Add(1)
}

func (l *LedgerMetrics) ObserveDurationSeconds(begin time.Time, t string) {
	l.TransitionDurationSeconds.With(LedgerType, t).Observe(time.Since(begin).Seconds())
}

func (l *LedgerMetrics) AddPoll() {
	l.Polls.Add(1)
}

func (l *LedgerMetrics) AddCandidate() {
	l.Candidates.Add(1)
}

func (l *LedgerMetrics) AddVote() {
	l.Votes.Add(1)
}

func PromLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Height: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "height",
			Help:      "Number of committed transitions.",
		}, []string{}),
		TransitionsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "transitions_total",
			Help:      "Total number of submitted transitions.",
		}, []string{LedgerType, LedgerResult}),
		TransitionDurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "transition_duration_seconds",
			Help:      "Time processing one transition.",
		}, []string{LedgerType}),
		Polls: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "polls_total",
			Help:      "Number of created polls.",
		}, []string{}),
		Candidates: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "candidates_total",
			Help:      "Number of registered candidates.",
		}, []string{}),
		Votes: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "votes_total",
			Help:      "Number of cast votes.",
		}, []string{}),
	}
}

func NopLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Height: discard.NewGauge(),

		TransitionsTotal:          discard.NewCounter(),
		TransitionDurationSeconds: discard.NewHistogram(),

		Polls:      discard.NewCounter(),
		Candidates: discard.NewCounter(),
		Votes:      discard.NewCounter(),
	}
}
