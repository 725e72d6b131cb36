package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "finbook_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	reportGenerations *prometheus.CounterVec
)

// Init registers the process metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "code"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		)
		reportGenerations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_generations_total",
				Help: "Total report generations by report kind",
			},
			[]string{"report"},
		)

		prometheus.MustRegister(httpRequests, httpLatency, reportGenerations)
	})
}

// Handler exposes the registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, route string, code int, duration time.Duration) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// CountReport records one report generation.
func CountReport(report string) {
	if reportGenerations == nil {
		return
	}
	reportGenerations.WithLabelValues(report).Inc()
}
