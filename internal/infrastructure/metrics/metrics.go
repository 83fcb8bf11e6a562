package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "yieldhop"

// Fetch cycle outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeStale   = "stale"
)

// Metrics groups the gateway's Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	fetchCycles      *prometheus.CounterVec
	fallbacksServed  *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
	actionsPrepared  *prometheus.CounterVec
	actionsConfirmed *prometheus.CounterVec
	activeViews      prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_cycles_total",
			Help:      "Snapshot fetch cycles by chain and outcome.",
		}, []string{"chain", "outcome"}),
		fallbacksServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_snapshots_total",
			Help:      "Fallback snapshots substituted for failed read batches.",
		}, []string{"chain", "screen"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_call_duration_seconds",
			Help:      "Duration of contract RPC calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"chain", "method", "status"}),
		actionsPrepared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_prepared_total",
			Help:      "Unsigned staking calls prepared for external signing.",
		}, []string{"chain", "kind"}),
		actionsConfirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_confirmed_total",
			Help:      "Confirmation lookups by action kind and receipt result.",
		}, []string{"kind", "result"}),
		activeViews: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "staking_views_active",
			Help:      "Staking views currently held in memory.",
		}),
	}

	reg.MustRegister(
		m.fetchCycles,
		m.fallbacksServed,
		m.rpcDuration,
		m.actionsPrepared,
		m.actionsConfirmed,
		m.activeViews,
	)
	return m
}

func (m *Metrics) FetchCycle(chain, outcome string) {
	if m == nil {
		return
	}
	m.fetchCycles.WithLabelValues(chain, outcome).Inc()
}

func (m *Metrics) FallbackServed(chain, screen string) {
	if m == nil {
		return
	}
	m.fallbacksServed.WithLabelValues(chain, screen).Inc()
}

func (m *Metrics) ObserveRPC(chain, method string, err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.rpcDuration.WithLabelValues(chain, method, status).Observe(d.Seconds())
}

func (m *Metrics) ActionPrepared(chain, kind string) {
	if m == nil {
		return
	}
	m.actionsPrepared.WithLabelValues(chain, kind).Inc()
}

func (m *Metrics) ActionConfirmed(kind, result string) {
	if m == nil {
		return
	}
	m.actionsConfirmed.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) SetActiveViews(n int) {
	if m == nil {
		return
	}
	m.activeViews.Set(float64(n))
}
