package metricsvc

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/masomo-console/core"
)

const namespace = "masomo"

// PrometheusMetrics reports the service's counters to a prometheus registry.
type PrometheusMetrics struct {
	catalogUnavailable *prometheus.CounterVec
	navigationBuilds   prometheus.Counter
	navigationNodes    prometheus.Histogram
	requests           *prometheus.HistogramVec
}

var _ core.Metrics = (*PrometheusMetrics)(nil)

func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		catalogUnavailable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_unavailable_total",
			Help:      "Feature catalog fetches that failed and fell back to an empty list.",
		}, []string{"source"}),
		navigationBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigation_builds_total",
			Help:      "Navigation trees built.",
		}),
		navigationNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "navigation_root_nodes",
			Help:      "Root nodes per built navigation tree.",
			Buckets:   prometheus.LinearBuckets(2, 2, 6),
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
	reg.MustRegister(m.catalogUnavailable, m.navigationBuilds, m.navigationNodes, m.requests)
	return m
}

func (m *PrometheusMetrics) CatalogUnavailable(source string) {
	m.catalogUnavailable.WithLabelValues(source).Inc()
}

func (m *PrometheusMetrics) NavigationBuilt(nodes int) {
	m.navigationBuilds.Inc()
	m.navigationNodes.Observe(float64(nodes))
}

// ObserveRequest records one served HTTP request.
func (m *PrometheusMetrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}
