package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus collectors used by the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     *prometheus.GaugeVec
	DBIdleConns     *prometheus.GaugeVec
	DBWaitCount     *prometheus.GaugeVec

	SweeperRunsTotal    prometheus.Counter
	SweeperExpiredTotal prometheus.Counter

	NotificationsEnqueuedTotal *prometheus.CounterVec
}

// New registers and returns the service collectors.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		DBOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		SweeperRunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "hold_sweeper_runs_total",
			Help:        "Total number of hold-expiry sweeper runs.",
			ConstLabels: constLabels,
		}),

		SweeperExpiredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "hold_sweeper_expired_total",
			Help:        "Total number of holds expired by the sweeper.",
			ConstLabels: constLabels,
		}),

		NotificationsEnqueuedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_enqueued_total",
			Help:        "Total number of notification events enqueued.",
			ConstLabels: constLabels,
		}, []string{"event"}),
	}
}
