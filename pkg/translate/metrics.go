package translate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Call metrics, recorded once per Detect/Translate.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polyglot_requests_total",
			Help: "Total number of detect and translate calls",
		},
		[]string{"operation", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "polyglot_request_duration_seconds",
			Help:    "Duration of detect and translate calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"operation", "status"},
	)

	requestTextSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "polyglot_request_text_size_bytes",
			Help:    "Size of the text submitted for detection or translation",
			Buckets: []float64{16, 64, 256, 512, 1024, 2048, 4096, 8192},
		},
		[]string{"operation"},
	)

	// Transport metrics.
	responseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "polyglot_response_size_bytes",
			Help:    "Size of the response line read from the service",
			Buckets: []float64{32, 64, 128, 256, 512, 1024, 2048},
		},
		[]string{"host"},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polyglot_errors_total",
			Help: "Total number of failed calls by error kind",
		},
		[]string{"kind"},
	)
)

// MetricsCollector records call and transport metrics.
type MetricsCollector struct {
	host string
}

// NewMetricsCollector creates a collector that labels transport metrics with host.
func NewMetricsCollector(host string) *MetricsCollector {
	return &MetricsCollector{host: host}
}

// RecordCall records the outcome of a Detect or Translate call.
func (mc *MetricsCollector) RecordCall(operation string, duration time.Duration, textSize int, err error) {
	status := "success"
	if err != nil {
		status = "error"
		errorsTotal.WithLabelValues(errorKind(err)).Inc()
	}

	requestsTotal.WithLabelValues(operation, status).Inc()
	requestDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
	requestTextSize.WithLabelValues(operation).Observe(float64(textSize))
}

// RecordResponse records the size of a response line.
func (mc *MetricsCollector) RecordResponse(size int) {
	responseSize.WithLabelValues(mc.host).Observe(float64(size))
}
