package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the blob store.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	blobOpTotal     *prometheus.CounterVec
	storageUsed     prometheus.Gauge
	storageObjects  prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	blobOpTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blob_operations_total",
		Help: "Total blob store operations by kind and outcome",
	}, []string{"operation", "outcome"})

	storageUsed := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storage_used_bytes",
		Help: "Bytes currently stored across the bucket",
	})

	storageObjects := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storage_objects_total",
		Help: "Objects currently stored across the bucket",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, blobOpTotal, storageUsed, storageObjects, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		blobOpTotal:     blobOpTotal,
		storageUsed:     storageUsed,
		storageObjects:  storageObjects,
	}
}

// Handler serves the /metrics endpoint.
func (s *MetricsService) Handler() http.Handler { return s.handler }

// ObserveHTTPRequest records one completed request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	statusLabel := fmt.Sprintf("%d", status)
	s.requestDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(method, path, statusLabel).Inc()
}

// ObserveBlobOperation counts one adapter call.
func (s *MetricsService) ObserveBlobOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.blobOpTotal.WithLabelValues(operation, outcome).Inc()
}

// SetStorageUsage refreshes the storage gauges from a usage report.
func (s *MetricsService) SetStorageUsage(usedBytes int64, objectCount int) {
	s.storageUsed.Set(float64(usedBytes))
	s.storageObjects.Set(float64(objectCount))
}
