// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package metrics

import "github.com/prometheus/client_golang/prometheus"

// PoolStatFunc returns database pool statistics without importing pgxpool here.
type PoolStatFunc func() (total, idle, acquired int32)

// poolCollector implements prometheus.Collector for connection pool stats.
type poolCollector struct {
	statFunc PoolStatFunc

	totalDesc    *prometheus.Desc
	idleDesc     *prometheus.Desc
	acquiredDesc *prometheus.Desc
}

// RegisterPoolCollector registers a collector exposing live pgx pool gauges.
func (m *Metrics) RegisterPoolCollector(statFunc PoolStatFunc) {
	m.registry.MustRegister(&poolCollector{
		statFunc: statFunc,
		totalDesc: prometheus.NewDesc(
			"stockroom_db_pool_total_conns",
			"Total number of connections in the DB pool.",
			nil, nil,
		),
		idleDesc: prometheus.NewDesc(
			"stockroom_db_pool_idle_conns",
			"Number of idle connections in the DB pool.",
			nil, nil,
		),
		acquiredDesc: prometheus.NewDesc(
			"stockroom_db_pool_acquired_conns",
			"Number of acquired connections in the DB pool.",
			nil, nil,
		),
	})
}

// Describe sends the descriptors of each metric to the channel.
func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalDesc
	ch <- c.idleDesc
	ch <- c.acquiredDesc
}

// Collect fetches pool stats and sends them as gauge metrics.
func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	total, idle, acquired := c.statFunc()
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(total))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(idle))
	ch <- prometheus.MustNewConstMetric(c.acquiredDesc, prometheus.GaugeValue, float64(acquired))
}
