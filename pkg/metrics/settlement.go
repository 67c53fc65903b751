package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SettlementMetrics records counters for the order/payout lifecycle.
type SettlementMetrics struct {
	transitions *prometheus.CounterVec
	settlements *prometheus.CounterVec
	payouts     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewSettlementMetrics registers the settlement metrics on the provided registerer.
func NewSettlementMetrics(reg prometheus.Registerer) *SettlementMetrics {
	if reg == nil {
		return &SettlementMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions",
		Help: "Order status transitions by target status.",
	}, []string{"status"})
	settlements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_settlements_stamped",
		Help: "Orders stamped with settlement amounts.",
	}, []string{"status"})
	payouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payout_events",
		Help: "Payout lifecycle events by outcome.",
	}, []string{"event"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payout_request_duration_seconds",
		Help:    "Duration of payout request handling in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	reg.MustRegister(transitions, settlements, payouts, duration)
	return &SettlementMetrics{
		transitions: transitions,
		settlements: settlements,
		payouts:     payouts,
		duration:    duration,
	}
}

// IncTransition increments the transition counter for the target status.
func (s *SettlementMetrics) IncTransition(status string) {
	if s == nil || s.transitions == nil {
		return
	}
	s.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncSettlement increments the settlement stamp counter for the entry status.
func (s *SettlementMetrics) IncSettlement(status string) {
	if s == nil || s.settlements == nil {
		return
	}
	s.settlements.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncPayoutEvent increments the payout event counter for the named event.
func (s *SettlementMetrics) IncPayoutEvent(event string) {
	if s == nil || s.payouts == nil {
		return
	}
	s.payouts.WithLabelValues(normalizeLabel(event)).Inc()
}

// ObservePayoutDuration records the duration of a payout request.
func (s *SettlementMetrics) ObservePayoutDuration(outcome string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
