// Package telemetry bundles the Prometheus metrics and OpenTelemetry tracer
// shared by the transports and the recommendation pipeline.
package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/slideforge/layout-engine"

// Metrics holds the engine's Prometheus collectors. Collectors register on
// the default registry, so the set is created once per process and shared
// by every Provider.
type Metrics struct {
	RecommendationsTotal *prometheus.CounterVec
	RecommendDuration    prometheus.Histogram
	AnalyzeDuration      prometheus.Histogram
	CatalogSize          prometheus.Gauge
	CatalogReloads       prometheus.Counter
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

func sharedMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			RecommendationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "layout_engine",
				Name:      "recommendations_total",
				Help:      "Recommendation requests served, by detected content type.",
			}, []string{"content_type"}),
			RecommendDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Namespace: "layout_engine",
				Name:      "recommend_duration_seconds",
				Help:      "End-to-end recommendation latency.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
			}),
			AnalyzeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Namespace: "layout_engine",
				Name:      "analyze_duration_seconds",
				Help:      "Content analysis latency.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
			}),
			CatalogSize: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "layout_engine",
				Name:      "catalog_layouts",
				Help:      "Layouts in the active catalog.",
			}),
			CatalogReloads: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "layout_engine",
				Name:      "catalog_reloads_total",
				Help:      "Successful catalog hot reloads.",
			}),
		}
	})
	return metrics
}

// Provider exposes the tracer and metrics to the rest of the engine.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider returns a provider backed by the global tracer provider and
// the process-wide metric set.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(tracerName),
		Metrics: sharedMetrics(),
	}
}

// Handler serves the Prometheus scrape endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}
