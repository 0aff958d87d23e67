package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// AttemptsStarted counts StartAttempt calls by outcome: created or resumed.
	AttemptsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "test_attempts_started_total",
			Help: "Test attempts started or resumed",
		},
		[]string{"outcome"},
	)

	// AttemptsRejected counts eligibility failures by error kind.
	AttemptsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "test_attempts_rejected_total",
			Help: "Test attempt operations rejected by the engine",
		},
		[]string{"reason"},
	)

	AttemptsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "test_attempts_submitted_total",
			Help: "Graded test attempts",
		},
		[]string{"passed"},
	)

	AttemptPercentage = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "test_attempt_percentage_score",
			Help:    "Percentage score of graded attempts",
			Buckets: []float64{0, 20, 40, 60, 80, 100},
		},
	)

	PracticeAnswers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "practice_answers_total",
			Help: "Practice answers graded",
		},
		[]string{"correct"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AttemptsStarted,
			AttemptsRejected,
			AttemptsSubmitted,
			AttemptPercentage,
			PracticeAnswers,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
