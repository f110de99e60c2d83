package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollkit/eigenda-client/da/eigenda"
	"github.com/rollkit/eigenda-client/pkg/log"
)

func TestMetricsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := eigenda.PrometheusMetrics(reg, "eigenda")
	m.Retrievals.Add(1)

	rec := httptest.NewRecorder()
	MetricsRouter(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "eigenda_client_retrievals_total 1")

	rec = httptest.NewRecorder()
	MetricsRouter(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStartMetricsServer(t *testing.T) {
	stop, err := StartMetricsServer("127.0.0.1:0", prometheus.NewRegistry(), log.NewNopLogger())
	require.NoError(t, err)
	assert.NoError(t, stop())
}
