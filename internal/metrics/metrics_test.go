package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, ok := Init(true).(*Metrics)
	require.True(t, ok, "Init(true) should return *Metrics")
	return m
}

func TestInit(t *testing.T) {
	m := promMetrics(t)
	assert.NotNil(t, m.AuthAttemptsTotal)
	assert.NotNil(t, m.TokensIssuedTotal)
	assert.NotNil(t, m.HTTPRequestsTotal)

	assert.Same(t, m, promMetrics(t), "Init should register metrics once")
}

func TestInitNoop(t *testing.T) {
	m := Init(false)
	_, ok := m.(*NoopMetrics)
	assert.True(t, ok, "Init(false) should return *NoopMetrics")

	// Must not panic
	m.RecordAuthAttempt("local", "success", time.Millisecond)
	m.RecordExternalAPICall("http_api", time.Millisecond)
	m.RecordClientCacheLookup(true)
	m.RecordTokenIssued("access", "password", time.Millisecond)
	m.RecordTokenValidation("valid", time.Millisecond)
	m.RecordDatabaseQueryError("get_client")
}

func TestRecordAuthAttempt(t *testing.T) {
	m := promMetrics(t)

	for _, outcome := range []string{"success", "failure", "error"} {
		before := testutil.ToFloat64(m.AuthAttemptsTotal.WithLabelValues("local", outcome))
		m.RecordAuthAttempt("local", outcome, 20*time.Millisecond)
		after := testutil.ToFloat64(m.AuthAttemptsTotal.WithLabelValues("local", outcome))
		assert.Equal(t, before+1, after, outcome)
	}
}

func TestRecordClientCacheLookup(t *testing.T) {
	m := promMetrics(t)

	hits := testutil.ToFloat64(m.ClientCacheLookupsTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(m.ClientCacheLookupsTotal.WithLabelValues("miss"))

	m.RecordClientCacheLookup(true)
	m.RecordClientCacheLookup(false)
	m.RecordClientCacheLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(m.ClientCacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(m.ClientCacheLookupsTotal.WithLabelValues("miss")))
}

func TestRecordTokenMetrics(t *testing.T) {
	m := promMetrics(t)

	issued := testutil.ToFloat64(m.TokensIssuedTotal.WithLabelValues("access", "password"))
	m.RecordTokenIssued("access", "password", 5*time.Millisecond)
	assert.Equal(t, issued+1, testutil.ToFloat64(m.TokensIssuedTotal.WithLabelValues("access", "password")))

	expired := testutil.ToFloat64(m.TokenValidationTotal.WithLabelValues("expired"))
	m.RecordTokenValidation("expired", time.Millisecond)
	assert.Equal(t, expired+1, testutil.ToFloat64(m.TokenValidationTotal.WithLabelValues("expired")))
}

func TestRecordDatabaseQueryError(t *testing.T) {
	m := promMetrics(t)

	before := testutil.ToFloat64(m.DatabaseQueryErrorsTotal.WithLabelValues("get_client"))
	m.RecordDatabaseQueryError("get_client")
	assert.Equal(t, before+1, testutil.ToFloat64(m.DatabaseQueryErrorsTotal.WithLabelValues("get_client")))
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := promMetrics(t)

	r := gin.New()
	r.Use(HTTPMetricsMiddleware(m))
	r.POST("/oauth/token", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/oauth/token", "401")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/oauth/token", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	self := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics", "200")
	selfBefore := testutil.ToFloat64(self)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, selfBefore, testutil.ToFloat64(self), "metrics endpoint is not recorded")
	assert.Equal(t, float64(0), testutil.ToFloat64(m.HTTPRequestsInFlight))
}

func TestHTTPMetricsMiddleware_Noop(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(HTTPMetricsMiddleware(NewNoopMetrics()))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "unknown", normalizePath(""))
	assert.Equal(t, "/oauth/token", normalizePath("/oauth/token"))
}
