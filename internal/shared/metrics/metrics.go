package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resumegenius"

var (
	registry = prometheus.NewRegistry()
	factory  = promauto.With(registry)

	githubFetchTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "github_fetch_total",
		Help:      "GitHub summary fetches by outcome",
	}, []string{"outcome"})

	synthesisAttemptsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "synthesis_attempts_total",
		Help:      "Resume synthesis attempts by outcome",
	}, []string{"outcome"})

	synthesisDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "synthesis_duration_seconds",
		Help:      "End-to-end resume synthesis duration",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	})

	renderDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "render_duration_seconds",
		Help:      "PDF render duration",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	httpRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status",
	}, []string{"method", "path", "status"})
)

func init() {
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// IncGitHubFetch counts a summarizer run with the given outcome.
func IncGitHubFetch(outcome string) {
	githubFetchTotal.WithLabelValues(outcome).Inc()
}

// IncSynthesisAttempt counts one generation attempt ("ok", "validation", "generation").
func IncSynthesisAttempt(outcome string) {
	synthesisAttemptsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSynthesisDuration records how long a synthesis call took.
func ObserveSynthesisDuration(d time.Duration) {
	synthesisDuration.Observe(d.Seconds())
}

// ObserveRenderDuration records how long a render call took.
func ObserveRenderDuration(d time.Duration) {
	renderDuration.Observe(d.Seconds())
}

// Middleware counts requests per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
