package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GatewayMetrics records latency and outcome of remote catalog calls.
type GatewayMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	cache    *prometheus.CounterVec
}

// NewGatewayMetrics registers the gateway metrics on the provided registerer.
func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	if reg == nil {
		return &GatewayMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_request_duration_seconds",
		Help:    "Duration of catalog gateway calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_request_success",
		Help: "Successful catalog gateway calls.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_request_failure",
		Help: "Failed catalog gateway calls.",
	}, []string{"operation", "code"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_cache_lookups",
		Help: "Catalog cache lookups by result (hit, miss, error).",
	}, []string{"operation", "result"})
	reg.MustRegister(duration, success, failure, cache)
	return &GatewayMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		cache:    cache,
	}
}

// ObserveDuration records the duration for the named operation.
func (g *GatewayMetrics) ObserveDuration(operation string, duration time.Duration) {
	if g == nil || g.duration == nil {
		return
	}
	g.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (g *GatewayMetrics) IncSuccess(operation string) {
	if g == nil || g.success == nil {
		return
	}
	g.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation and error code.
func (g *GatewayMetrics) IncFailure(operation, code string) {
	if g == nil || g.failure == nil {
		return
	}
	g.failure.WithLabelValues(normalizeLabel(operation), normalizeLabel(code)).Inc()
}

// IncCache counts a cache lookup outcome.
func (g *GatewayMetrics) IncCache(operation, result string) {
	if g == nil || g.cache == nil {
		return
	}
	g.cache.WithLabelValues(normalizeLabel(operation), normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
