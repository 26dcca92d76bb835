package buffer

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the prometheus collectors the buffer pool exposes.
type Metrics struct {
	Pins             prometheus.Counter
	Unpins           prometheus.Counter
	Evictions        prometheus.Counter
	DeadlockTimeouts prometheus.Counter
	Available        prometheus.Gauge
}

// NewMetrics constructs a Metrics with every collector initialized.
func NewMetrics() *Metrics {
	return &Metrics{
		Pins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "buffer",
			Name:      "pins_total",
			Help:      "Number of successful Pool.Pin calls.",
		}),
		Unpins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "buffer",
			Name:      "unpins_total",
			Help:      "Number of Pool.Unpin calls.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "buffer",
			Name:      "evictions_total",
			Help:      "Number of times Pin reassigned an already-occupied buffer to a new block.",
		}),
		DeadlockTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "buffer",
			Name:      "deadlock_timeouts_total",
			Help:      "Number of Pin calls that failed after waiting deadlock_waiting_duration for a free buffer.",
		}),
		Available: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "emberdb",
			Subsystem: "buffer",
			Name:      "available",
			Help:      "Current number of unpinned buffers in the pool.",
		}),
	}
}

// Collectors returns every collector in m, for bulk registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Pins, m.Unpins, m.Evictions, m.DeadlockTimeouts, m.Available}
}
