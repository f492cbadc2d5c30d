package telemetry

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agriprofit/agriprofit/internal/logger"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agriprofit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agriprofit_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agriprofit_predictions_total",
			Help: "Predictions served, by predicted crop and outcome",
		},
		[]string{"crop", "outcome"},
	)

	predictionCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agriprofit_prediction_cache_total",
			Help: "Prediction cache lookups, by result",
		},
		[]string{"result"},
	)
)

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, path string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObservePrediction records one served prediction. Outcome is "profit",
// "loss" or "failure".
func ObservePrediction(crop string, outcome string) {
	predictionsTotal.WithLabelValues(crop, outcome).Inc()
}

// ObserveCacheLookup records a prediction cache hit or miss.
func ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	predictionCacheTotal.WithLabelValues(result).Inc()
}

// StartServer exposes /metrics on its own port.
func StartServer(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := ":" + strconv.Itoa(port)
	logger.Infof("Telemetry server listening on %s", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Errorf("Telemetry server error: %v", err)
		}
	}()
}
