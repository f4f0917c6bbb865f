// Package metrics holds the Prometheus collectors exported by mediamix.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediamix_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediamix_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Provider fetches, one per media kind and page
	KindFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediamix_kind_fetches_total",
			Help: "Total number of per-kind search requests",
		},
		[]string{"kind", "status"},
	)

	ItemsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediamix_items_fetched_total",
			Help: "Total number of normalized media items fetched",
		},
		[]string{"kind"},
	)

	// Feed state
	PageLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediamix_page_loads_total",
			Help: "Total number of feed page loads",
		},
		[]string{"mode", "outcome"},
	)

	FeedSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mediamix_feed_items",
			Help: "Number of items in the current feed",
		},
	)

	FavoritesCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mediamix_favorites",
			Help: "Number of saved favorites",
		},
	)

	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediamix_downloads_total",
			Help: "Total number of download requests",
		},
		[]string{"status"},
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mediamix_application_info",
			Help: "Application information",
		},
		[]string{"version"},
	)
)

// Init records static application labels.
func Init(version string) {
	ApplicationInfo.WithLabelValues(version).Set(1)
}
