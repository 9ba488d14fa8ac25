package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kawiarnia"

// Metrics holds the Prometheus collectors of the ordering engine.
type Metrics struct {
	Turns           *prometheus.CounterVec
	TurnDuration    prometheus.Histogram
	OracleCalls     *prometheus.CounterVec
	OracleFailures  *prometheus.CounterVec
	OracleDuration  *prometheus.HistogramVec
	CartAdds        *prometheus.CounterVec
	OrdersCompleted prometheus.Counter
	Revenue         prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg gets a private registry.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		Turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Processed customer messages by route.",
		}, []string{"route"}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Wall time of a turn, oracle calls included.",
			Buckets:   prometheus.DefBuckets,
		}),
		OracleCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_calls_total",
			Help:      "Classification calls by shape.",
		}, []string{"shape"}),
		OracleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_failures_total",
			Help:      "Failed or unparseable classification calls by shape.",
		}, []string{"shape"}),
		OracleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "oracle_duration_seconds",
			Help:      "Latency of classification calls.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"shape"}),
		CartAdds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_adds_total",
			Help:      "Items committed to carts by drink.",
		}, []string{"drink"}),
		OrdersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_completed_total",
			Help:      "Finalized orders.",
		}),
		Revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_pln_total",
			Help:      "Revenue of finalized orders in złoty.",
		}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{
		m.Turns, m.TurnDuration, m.OracleCalls, m.OracleFailures,
		m.OracleDuration, m.CartAdds, m.OrdersCompleted, m.Revenue,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurnEnd: func(_ context.Context, e *domain.TurnEvent) {
			m.Turns.WithLabelValues(string(e.Route)).Inc()
			m.TurnDuration.Observe(e.Duration.Seconds())
		},
		OnOracleCall: func(_ context.Context, e *domain.OracleEvent) {
			m.OracleCalls.WithLabelValues(e.Shape).Inc()
			m.OracleDuration.WithLabelValues(e.Shape).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.OracleFailures.WithLabelValues(e.Shape).Inc()
			}
		},
		OnCartAdd: func(_ context.Context, e *domain.CartEvent) {
			m.CartAdds.WithLabelValues(e.Item.Drink).Inc()
		},
		OnCheckout: func(_ context.Context, e *domain.CheckoutEvent) {
			m.OrdersCompleted.Inc()
			m.Revenue.Add(e.Total.Zloty())
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
