package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 操作结果标签取值。
const (
	ResultOK    = "ok"
	ResultError = "error"
)

func (m *Metrics) registerTreeMetrics() {
	m.TreeOperationsTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "rangequery_tree_operations_total",
		Help: "Total number of segment tree operations",
	}, []string{"op", "aggregate", "result"})

	m.TreeOperationDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rangequery_tree_operation_duration_seconds",
		Help:    "Segment tree operation latency in seconds",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"op"})

	m.TreeSize = m.NewGauge(prometheus.GaugeOpts{
		Name: "rangequery_sequence_length",
		Help: "Length of the sequence currently indexed by the trees",
	})
}

// ObserveTreeOp 记录一次树操作的结果与耗时，aggregate 为空表示与聚合类型无关的操作。
func (m *Metrics) ObserveTreeOp(op, aggregate string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	if aggregate == "" {
		aggregate = "all"
	}
	m.TreeOperationsTotal.WithLabelValues(op, aggregate, result).Inc()
	m.TreeOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
