package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "image_pipeline",
			Subsystem: "intake",
			Name:      "upload_requests_total",
			Help:      "Upload grant requests by outcome",
		},
		[]string{"status"},
	)

	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "image_pipeline",
			Subsystem: "consumer",
			Name:      "messages_total",
			Help:      "Queue messages handled by queue and outcome",
		},
		[]string{"queue", "outcome"},
	)

	ResizeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "image_pipeline",
			Subsystem: "resize",
			Name:      "duration_seconds",
			Help:      "Time to produce and store one variant",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"size"},
	)

	EventPublishFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "image_pipeline",
			Subsystem: "events",
			Name:      "publish_failures_total",
			Help:      "Event stream publish failures by action",
		},
		[]string{"action"},
	)

	VariantViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "image_pipeline",
			Subsystem: "delivery",
			Name:      "variant_views_total",
			Help:      "Variant delivery redirects by size",
		},
		[]string{"size"},
	)
)

func RecordUploadRequest(status string) {
	UploadRequestsTotal.WithLabelValues(status).Inc()
}

func RecordMessage(queue, outcome string) {
	MessagesTotal.WithLabelValues(queue, outcome).Inc()
}

func ObserveResize(size string, seconds float64) {
	ResizeDuration.WithLabelValues(size).Observe(seconds)
}

func RecordEventPublishFailure(action string) {
	EventPublishFailuresTotal.WithLabelValues(action).Inc()
}

func RecordVariantView(size string) {
	VariantViewsTotal.WithLabelValues(size).Inc()
}
