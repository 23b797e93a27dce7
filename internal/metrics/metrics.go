// Package metrics exposes Prometheus collectors for the risk, compliance,
// execution, and ledger components. Collectors are registered on the default
// registry; embedding processes decide whether and where to scrape them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecisionsTotal counts gate decisions by component ("risk", "compliance")
	// and outcome ("pass", "warn", "block").
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trade_gate_decisions_total",
		Help: "Gate decisions by component and outcome",
	}, []string{"component", "decision"})

	// BreachesTotal counts risk limit breaches by layer and rule name.
	BreachesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_breaches_total",
		Help: "Risk limit breaches by layer and rule",
	}, []string{"layer", "rule"})

	// FillsTotal counts simulated fills by venue.
	FillsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "execution_fills_total",
		Help: "Simulated fills by venue",
	}, []string{"venue"})

	// SlippageBps observes realized arrival slippage per executed order.
	SlippageBps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "execution_arrival_slippage_bps",
		Help:    "Arrival slippage in basis points per executed order",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	// AuditWriteFailures counts swallowed audit append failures by component.
	AuditWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_write_failures_total",
		Help: "Best-effort audit appends that failed and were discarded",
	}, []string{"component"})
)
