package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(synthesisAttemptsTotal.WithLabelValues("validation"))
	IncSynthesisAttempt("validation")
	IncSynthesisAttempt("validation")
	assert.InDelta(t, before+2, testutil.ToFloat64(synthesisAttemptsTotal.WithLabelValues("validation")), 1e-9)

	beforeFetch := testutil.ToFloat64(githubFetchTotal.WithLabelValues("not_found"))
	IncGitHubFetch("not_found")
	assert.InDelta(t, beforeFetch+1, testutil.ToFloat64(githubFetchTotal.WithLabelValues("not_found")), 1e-9)
}

func TestHandlerExposesRouteCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `resumegenius_http_requests_total{method="GET",path="/ping",status="204"}`)
	assert.Contains(t, body, "resumegenius_synthesis_duration_seconds")
}
