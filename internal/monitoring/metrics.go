// internal/monitoring/metrics.go
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ResponseTimeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "Histogram of response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AssetStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_store_operations_total",
			Help: "Remote asset store calls by driver, operation and result",
		},
		[]string{"driver", "operation", "result"},
	)

	AssetStoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "asset_store_operation_seconds",
			Help:    "Latency of remote asset store calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"driver", "operation"},
	)

	ReferralCommissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referral_commission_logs_total",
			Help: "Referral profit log rows appended, by team",
		},
		[]string{"team"},
	)
)
