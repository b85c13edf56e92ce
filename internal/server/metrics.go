package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textspot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "textspot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	spotRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textspot_spot_requests_total",
			Help: "Total number of text spotting requests",
		},
		[]string{"transport", "status"}, // transport: http, websocket
	)

	spotProcessingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "textspot_spot_processing_duration_seconds",
			Help:    "Text spotting processing duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 25},
		},
		[]string{"transport"},
	)

	spotRegionsAccepted = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "textspot_regions_accepted",
			Help:    "Number of text regions accepted per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"transport"},
	)

	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textspot_upload_size_bytes",
			Help:    "Size of uploaded images in bytes",
			Buckets: []float64{1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024, 50 * 1024 * 1024},
		},
	)

	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "textspot_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)
)
