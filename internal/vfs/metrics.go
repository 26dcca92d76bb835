package vfs

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the prometheus collectors the vfs layer exposes. Embedding
// applications register these against their own registry; this package
// never stands up an HTTP server itself.
type Metrics struct {
	HandleCacheHits        prometheus.Counter
	HandleCacheOpens       prometheus.Counter
	HandleCacheEvictions   prometheus.Counter
	HandleCacheOpenHandles prometheus.Gauge
	BlocksRead             prometheus.Counter
	BlocksWritten          prometheus.Counter
	BlocksAppended         prometheus.Counter
}

// NewMetrics constructs a Metrics with every collector initialized, ready to
// be passed to NewHandleCache/New and registered by the caller.
func NewMetrics() *Metrics {
	return &Metrics{
		HandleCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "vfs",
			Name:      "handle_cache_hits_total",
			Help:      "Number of FileManager file-handle lookups served from the cache.",
		}),
		HandleCacheOpens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "vfs",
			Name:      "handle_cache_opens_total",
			Help:      "Number of kernel file handles opened by the handle cache.",
		}),
		HandleCacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "vfs",
			Name:      "handle_cache_evictions_total",
			Help:      "Number of open handles evicted to respect the capacity bound.",
		}),
		HandleCacheOpenHandles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "emberdb",
			Subsystem: "vfs",
			Name:      "handle_cache_open_handles",
			Help:      "Current number of open kernel file handles.",
		}),
		BlocksRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "vfs",
			Name:      "blocks_read_total",
			Help:      "Number of blocks read through FileManager.Read.",
		}),
		BlocksWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "vfs",
			Name:      "blocks_written_total",
			Help:      "Number of blocks written through FileManager.Write.",
		}),
		BlocksAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberdb",
			Subsystem: "vfs",
			Name:      "blocks_appended_total",
			Help:      "Number of blocks appended through FileManager.Append.",
		}),
	}
}

// Collectors returns every collector in m, for bulk registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.HandleCacheHits,
		m.HandleCacheOpens,
		m.HandleCacheEvictions,
		m.HandleCacheOpenHandles,
		m.BlocksRead,
		m.BlocksWritten,
		m.BlocksAppended,
	}
}
