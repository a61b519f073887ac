package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Plan outcomes used as metric labels.
const (
	outcomeFound    = "found"
	outcomeNoPath   = "no_path"
	outcomeInvalid  = "invalid"
	outcomeCanceled = "canceled"
	outcomeError    = "error"
)

// Metrics records planning timings and search sizes in its own registry.
type Metrics struct {
	registry *prometheus.Registry

	planDuration    *prometheus.HistogramVec
	plansTotal      *prometheus.CounterVec
	expandedNodes   prometheus.Histogram
	discoveredNodes prometheus.Counter
}

// NewMetrics creates the planner collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		planDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_plan_duration_seconds",
			Help:    "Wall-clock duration of plan calls by outcome",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"outcome"}),
		plansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_plans_total",
			Help: "Total plan calls by outcome",
		}, []string{"outcome"}),
		expandedNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_expanded_nodes",
			Help:    "Nodes closed per completed search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		discoveredNodes: factory.NewCounter(prometheus.CounterOpts{
			Name: "planner_nodes_discovered_total",
			Help: "Nodes added to the open set across all searches",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe records one finished plan call.
func (m *Metrics) Observe(res Result, err error, elapsed time.Duration) {
	outcome := planOutcome(res, err)
	m.planDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	m.plansTotal.WithLabelValues(outcome).Inc()
	if err == nil {
		m.expandedNodes.Observe(float64(res.Expanded))
	}
}

// NodeClosed implements Observer; closed nodes are counted through Observe.
func (m *Metrics) NodeClosed(int) {}

// NodeDiscovered implements Observer.
func (m *Metrics) NodeDiscovered(int) { m.discoveredNodes.Inc() }

func planOutcome(res Result, err error) string {
	switch {
	case err == nil && res.Found:
		return outcomeFound
	case err == nil:
		return outcomeNoPath
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrMalformedGrid):
		return outcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return outcomeError
	}
}
