// Package metrics holds Prometheus instruments shared across the platform.
// All collectors register with the global registry, so importing this
// package from cmd/web is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TenantResolveTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_total",
			Help: "Cumulative number of successful tenant resolutions.",
		})

	TenantResolveMissTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_miss_total",
			Help: "Cumulative number of resolutions for unknown or inactive slugs.",
		})

	TenantResolveErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_errors_total",
			Help: "Cumulative number of tenant resolutions failed by storage errors.",
		})

	RecordOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_ops_total",
			Help: "Record store operations by op and collection.",
		},
		[]string{"op", "collection"})

	ValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_validation_failures_total",
			Help: "Inserts rejected for missing required fields, by collection.",
		},
		[]string{"collection"})
)

func init() {
	prometheus.MustRegister(
		TenantResolveTotal,
		TenantResolveMissTotal,
		TenantResolveErrorsTotal,
		ValidationFailuresTotal,
		RecordOpsTotal,
	)
}
