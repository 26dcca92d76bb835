package wal

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the prometheus collectors the log layer exposes.
type Metrics struct {
	RecordsAppended prometheus.Counter
	BytesAppended   prometheus.Counter
	Flushes         prometheus.Counter
}

// NewMetrics constructs a Metrics with every collector initialized.
func NewMetrics() *Metrics {
	return &Metrics{
		RecordsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "wal",
			Name:      "records_appended_total",
			Help:      "Number of records appended to the log.",
		}),
		BytesAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "wal",
			Name:      "bytes_appended_total",
			Help:      "Number of record payload bytes appended to the log.",
		}),
		Flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "wal",
			Name:      "flushes_total",
			Help:      "Number of times the log head block was written to stable storage.",
		}),
	}
}

// Collectors returns every collector in m, for bulk registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.RecordsAppended, m.BytesAppended, m.Flushes}
}
