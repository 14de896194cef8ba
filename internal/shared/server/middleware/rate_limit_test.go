package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generationGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/v1/analyze", "/api/v1/generate_pdf":
		return "GENERATE"
	}
	return ""
}

func newLimitedRouter(limiter *RateLimiter, rule RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "UNLIMITED",
		GroupFor:     generationGroup,
		Limiter:      limiter,
		Rules:        map[string]RateLimitRule{"GENERATE": rule},
	}))
	r.POST("/api/v1/analyze", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/api/v1/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRateLimitOnlyAppliesToConfiguredGroups(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(NewRateLimiter(func() time.Time { return now }), RateLimitRule{Rate: 1, Burst: 2})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/health").Code)
	}
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/v1/analyze").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/v1/analyze").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/api/v1/analyze").Code)
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(NewRateLimiter(func() time.Time { return now }), RateLimitRule{Rate: 0.5, Burst: 1})

	require.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/v1/analyze").Code)
	resp := serve(r, http.MethodPost, "/api/v1/analyze")
	require.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "2", resp.Header().Get("Retry-After"))

	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "rate_limited", payload.Error.Code)
	assert.EqualValues(t, 2000, payload.Error.Details["retry_after_ms"])
}

func TestRateLimiterRefills(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	ok, _ := limiter.Allow("k", rule)
	require.True(t, ok)
	ok, wait := limiter.Allow("k", rule)
	require.False(t, ok)
	assert.Equal(t, time.Second, wait)

	now = now.Add(time.Second)
	ok, _ = limiter.Allow("k", rule)
	assert.True(t, ok)
}

func TestRateLimiterDisabledRule(t *testing.T) {
	limiter := NewRateLimiter(nil)
	for i := 0; i < 10; i++ {
		ok, _ := limiter.Allow("k", RateLimitRule{})
		assert.True(t, ok)
	}
}

func TestRateLimiterEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 5}

	for i := 0; i < 100; i++ {
		ok, _ := limiter.Allow("10.0.0."+strconv.Itoa(i)+"|GENERATE", rule)
		require.True(t, ok)
	}
	require.Equal(t, 100, limiter.Len())

	now = now.Add(30 * time.Second)
	ok, _ := limiter.Allow("busy", rule)
	require.True(t, ok)
	assert.Equal(t, 101, limiter.Len(), "no sweep before the interval")

	now = now.Add(35 * time.Second)
	ok, _ = limiter.Allow("busy", rule)
	require.True(t, ok)
	assert.Equal(t, 1, limiter.Len(), "idle buckets are dropped")
}

func TestRateLimiterKeepsDrainedBucketsThroughSweep(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	slow := RateLimitRule{Rate: 0.01, Burst: 1}

	ok, _ := limiter.Allow("slow", slow)
	require.True(t, ok)

	now = now.Add(61 * time.Second)
	ok, _ = limiter.Allow("other", RateLimitRule{Rate: 1, Burst: 1})
	require.True(t, ok)
	ok, wait := limiter.Allow("slow", slow)
	assert.False(t, ok, "a bucket still refilling must not be forgotten")
	assert.Positive(t, wait)
}
