package metricsvc

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	m.CatalogUnavailable("api")
	m.CatalogUnavailable("api")
	m.CatalogUnavailable("database")
	m.NavigationBuilt(3)
	m.ObserveRequest("GET", "/v1/navigation", 200, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.catalogUnavailable.WithLabelValues("api")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogUnavailable.WithLabelValues("database")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigationBuilds))

	expected := `
# HELP masomo_catalog_unavailable_total Feature catalog fetches that failed and fell back to an empty list.
# TYPE masomo_catalog_unavailable_total counter
masomo_catalog_unavailable_total{source="api"} 2
masomo_catalog_unavailable_total{source="database"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "masomo_catalog_unavailable_total"))

	n, err := testutil.GatherAndCount(reg, "masomo_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewPrometheusMetrics_registersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusMetrics(reg)
	assert.Panics(t, func() { NewPrometheusMetrics(reg) })
}
