package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatweb_http_requests_total",
			Help: "Total number of HTTP requests served by the front end",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seatweb_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the front end",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seatweb_http_active_requests",
			Help: "Number of HTTP requests currently in flight",
		},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatweb_upstream_requests_total",
			Help: "Total number of calls made to the upstream API",
		},
		[]string{"operation", "outcome"}, // outcome: ok, status, transport
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seatweb_upstream_request_duration_seconds",
			Help:    "Duration of calls made to the upstream API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	PageCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seatweb_page_cache_hits_total",
			Help: "Static pages served from the page cache",
		},
	)

	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seatweb_rate_limited_requests_total",
			Help: "Requests rejected by the login rate limiter",
		},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUpstreamCall records one call to the upstream API.
func RecordUpstreamCall(operation, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(operation, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}
