// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package emberdb

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/emberdb/emberdb/internal/buffer"
	"github.com/emberdb/emberdb/internal/vfs"
	"github.com/emberdb/emberdb/internal/wal"
)

// Metrics aggregates the prometheus collectors exposed by every component
// DB wires together. Pass a *Metrics to Options before calling Open so its
// collectors are populated by the running DB; the caller is responsible for
// registering them with a prometheus.Registerer.
type Metrics struct {
	vfs    *vfs.Metrics
	wal    *wal.Metrics
	buffer *buffer.Metrics
}

// NewMetrics constructs a Metrics with every underlying collector
// initialized, ready to be assigned to Options.Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		vfs:    vfs.NewMetrics(),
		wal:    wal.NewMetrics(),
		buffer: buffer.NewMetrics(),
	}
}

// Collectors returns every collector across all three components, for bulk
// registration with a prometheus.Registerer.
func (m *Metrics) Collectors() []prometheus.Collector {
	var out []prometheus.Collector
	out = append(out, m.vfs.Collectors()...)
	out = append(out, m.wal.Collectors()...)
	out = append(out, m.buffer.Collectors()...)
	return out
}

// String renders a short human-readable summary of the log's cumulative
// byte throughput, suitable for a periodic log line.
func (m *Metrics) String() string {
	bytesAppended := counterValue(m.wal.BytesAppended)
	return fmt.Sprintf("wal: %s appended, %s flushes",
		humanize.IBytes(uint64(bytesAppended)), counterString(m.wal.Flushes))
}

func counterValue(c prometheus.Counter) float64 {
	var pb dto.Metric
	if err := c.Write(&pb); err != nil {
		return 0
	}
	return pb.GetCounter().GetValue()
}

func counterString(c prometheus.Counter) string {
	return humanize.Comma(int64(counterValue(c)))
}
