package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TransactionMetrics holds the prometheus counters the transaction runner
// reports into
type TransactionMetrics struct {
	Committed *prometheus.CounterVec
	Failed    *prometheus.CounterVec
	Conflicts *prometheus.CounterVec
	Retries   *prometheus.CounterVec
	Exhausted *prometheus.CounterVec
}

// NewTransactionMetrics registers the transaction counters with the given
// registerer
func NewTransactionMetrics(reg prometheus.Registerer) *TransactionMetrics {
	factory := promauto.With(reg)
	return &TransactionMetrics{
		Committed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wss_transactions_committed_total",
			Help: "Units of work that committed successfully.",
		}, []string{"transaction"}),
		Failed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wss_transactions_failed_total",
			Help: "Units of work that failed with a permanent error.",
		}, []string{"transaction"}),
		Conflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wss_transaction_conflicts_total",
			Help: "Optimistic concurrency conflicts observed by units of work.",
		}, []string{"transaction"}),
		Retries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wss_transaction_retries_total",
			Help: "Re-executions of a unit of work after a conflict.",
		}, []string{"transaction"}),
		Exhausted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wss_transactions_exhausted_total",
			Help: "Units of work that ran out of retry budget.",
		}, []string{"transaction"}),
	}
}
