// Package metrics holds the optional Prometheus instrumentation for the client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smsactivate_email"

// Metrics groups the collectors recorded by the API client and the poller.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	PollAttempts    *prometheus.CounterVec
	PollsTotal      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// Collectors that are already registered (for example by a second client
// sharing the registry) are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of API requests by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		PollAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "poll_attempts_total",
				Help:      "Total number of message poll attempts by result",
			},
			[]string{"result"},
		),
		PollsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "polls_total",
				Help:      "Total number of completed polls by outcome",
			},
			[]string{"outcome"},
		),
	}

	var err error
	if m.RequestsTotal, err = register(reg, m.RequestsTotal); err != nil {
		return nil, err
	}
	if m.RequestDuration, err = register(reg, m.RequestDuration); err != nil {
		return nil, err
	}
	if m.PollAttempts, err = register(reg, m.PollAttempts); err != nil {
		return nil, err
	}
	if m.PollsTotal, err = register(reg, m.PollsTotal); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveRequest records one API request.
func (m *Metrics) ObserveRequest(action, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(action, outcome).Inc()
	m.RequestDuration.WithLabelValues(action).Observe(d.Seconds())
}

// ObservePollAttempt records one poll attempt; result is "received",
// "empty" or "error".
func (m *Metrics) ObservePollAttempt(result string) {
	if m == nil {
		return
	}
	m.PollAttempts.WithLabelValues(result).Inc()
}

// ObservePoll records a finished poll.
func (m *Metrics) ObservePoll(outcome string) {
	if m == nil {
		return
	}
	m.PollsTotal.WithLabelValues(outcome).Inc()
}
