package metrics

import "github.com/prometheus/client_golang/prometheus"

// Route generation Prometheus metrics.
var (
	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tourii",
			Name:      "generation_requests_total",
			Help:      "Total number of text generation requests",
		},
		[]string{"provider", "model", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tourii",
			Name:      "generation_request_duration_seconds",
			Help:      "Text generation request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider", "model"},
	)

	GenerationFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tourii",
			Name:      "generation_fallbacks_total",
			Help:      "Total number of content generations served by the deterministic fallback",
		},
		[]string{"reason"},
	)

	ImageLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tourii",
			Name:      "image_lookups_total",
			Help:      "Total number of location image lookups",
		},
		[]string{"status"},
	)

	ImageCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tourii",
			Name:      "image_cache_total",
			Help:      "Image lookup cache hits and misses",
		},
		[]string{"result"},
	)

	RoutesGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tourii",
			Name:      "routes_generated_total",
			Help:      "Total number of routes generated and persisted",
		},
	)
)

// RegisterGenerationMetrics registers generation metrics with the default
// registry. Called once from main (no init()).
func RegisterGenerationMetrics() {
	prometheus.MustRegister(GenerationRequestsTotal)
	prometheus.MustRegister(GenerationRequestDuration)
	prometheus.MustRegister(GenerationFallbacksTotal)
	prometheus.MustRegister(ImageLookupsTotal)
	prometheus.MustRegister(ImageCacheTotal)
	prometheus.MustRegister(RoutesGeneratedTotal)
}
