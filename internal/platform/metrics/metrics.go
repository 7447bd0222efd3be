package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Services treat
// the pointer as optional; tests pass nil.
type Metrics struct {
	QueriesTotal      prometheus.Counter
	QueryFailures     prometheus.Counter
	QueriesSuperseded prometheus.Counter
	SubqueryFailures  prometheus.Counter
	QueryDuration     prometheus.Histogram

	CatalogRefreshes prometheus.Counter
	CatalogCacheHits prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		QueriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "migflow_queries_total",
			Help: "Total number of migration-flow queries received",
		}),
		QueryFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "migflow_query_failures_total",
			Help: "Total number of migration-flow queries that failed",
		}),
		QueriesSuperseded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "migflow_queries_superseded_total",
			Help: "Total number of query results discarded by a newer request",
		}),
		SubqueryFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "migflow_subquery_failures_total",
			Help: "Total number of failed per-year upstream sub-queries",
		}),
		QueryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "migflow_query_duration_seconds",
			Help:    "End-to-end duration of migration-flow queries",
			Buckets: prometheus.DefBuckets,
		}),
		CatalogRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "migflow_catalog_refreshes_total",
			Help: "Total number of location-catalog fetches from upstream",
		}),
		CatalogCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "migflow_catalog_cache_hits_total",
			Help: "Total number of catalog reads served from the cache",
		}),
	}
}

// ObserveQueryDuration records one query's end-to-end latency.
func (m *Metrics) ObserveQueryDuration(d time.Duration) {
	m.QueryDuration.Observe(d.Seconds())
}
