package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation resolver
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empedi_recommendation_requests_total",
			Help: "Total number of recommendation resolver calls",
		},
		[]string{"outcome"}, // "ok", "empty_skills", "invalid", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "empedi_recommendation_duration_seconds",
			Help:    "Latency of one resolver call across all categories",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "empedi_recommendation_results",
			Help:    "Number of items returned per category",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50},
		},
		[]string{"category"},
	)

	// Curated lists versus computed fallback on detail pages
	RecommendationSource = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empedi_recommendation_source_total",
			Help: "Detail-page sections served from curated lists or computed fallback",
		},
		[]string{"page", "section", "source"},
	)

	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empedi_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "empedi_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// Job postings
	JobsPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empedi_jobs_posted_total",
			Help: "Total number of postings created",
		},
		[]string{"kind"},
	)

	JobsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "empedi_jobs_expired_total",
			Help: "Total number of postings closed by the expiry sweeper",
		},
	)

	// Candidate activity
	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empedi_applications_submitted_total",
			Help: "Total number of job and internship applications",
		},
		[]string{"kind"},
	)

	CourseEnrollments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "empedi_course_enrollments_total",
			Help: "Total number of course enrollments",
		},
	)

	// Skills cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empedi_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empedi_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// WebSocket
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "empedi_ws_connections",
			Help: "Current number of websocket clients",
		},
	)

	WSBroadcasts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "empedi_ws_broadcasts_total",
			Help: "Total number of events broadcast to websocket clients",
		},
	)
)

// RecordRecommendation records one resolver call. counts is indexed by
// category name and may be nil for calls that returned early.
func RecordRecommendation(outcome string, duration time.Duration, counts map[string]int) {
	RecommendationRequests.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	for category, n := range counts {
		RecommendationResults.WithLabelValues(category).Observe(float64(n))
	}
}

func RecordRecommendationSource(page, section string, curated bool) {
	source := "computed"
	if curated {
		source = "curated"
	}
	RecommendationSource.WithLabelValues(page, section, source).Inc()
}

// RecordHTTPRequest records an HTTP request metric
func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}
