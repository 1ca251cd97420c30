package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hvac_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hvac_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// DocumentsIssued counts numbered documents, labelled by kind (pmoc, receipt).
	DocumentsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hvac_documents_issued_total",
			Help: "Numbered documents issued, by kind.",
		},
		[]string{"kind"},
	)

	// ImageUploads counts stored images; compressed is "true" or "false".
	ImageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hvac_image_uploads_total",
			Help: "Images stored in the object bucket, by content type and compression outcome.",
		},
		[]string{"content_type", "compressed"},
	)

	ImageUploadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hvac_image_upload_bytes_total",
			Help: "Bytes written to the object bucket.",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hvac_cache_lookups_total",
			Help: "List cache lookups by result (hit, miss).",
		},
		[]string{"result"},
	)
)
