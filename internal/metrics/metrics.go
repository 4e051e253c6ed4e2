package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "trivia"

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	QuestionsServed *prometheus.CounterVec
	QuizExhausted   *prometheus.CounterVec
	CatalogChanges  *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		QuestionsServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quiz_questions_served_total",
				Help:      "Quiz questions handed out, by category",
			},
			[]string{"category"},
		),
		QuizExhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quiz_exhausted_total",
				Help:      "Quiz requests with no question left to serve, by category",
			},
			[]string{"category"},
		),
		CatalogChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_changes_total",
				Help:      "Questions created or deleted",
			},
			[]string{"type"},
		),
	}

	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.QuestionsServed,
		m.QuizExhausted,
		m.CatalogChanges,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveQuestionServed records a served quiz question for category
func (m *Metrics) ObserveQuestionServed(category string) {
	if m == nil {
		return
	}
	m.QuestionsServed.WithLabelValues(category).Inc()
}

// ObserveQuizExhausted records a quiz request whose pool was empty
func (m *Metrics) ObserveQuizExhausted(category string) {
	if m == nil {
		return
	}
	m.QuizExhausted.WithLabelValues(category).Inc()
}

// ObserveCatalogChange records a catalog event type
func (m *Metrics) ObserveCatalogChange(eventType string) {
	if m == nil {
		return
	}
	m.CatalogChanges.WithLabelValues(eventType).Inc()
}

// Middleware records request counts and latency per route
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			// Inner middleware normally hands errors to the error handler,
			// so the committed status is authoritative.
			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = http.StatusInternalServerError
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				}
			}

			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "unmatched"
			}

			m.RequestCounter.WithLabelValues(c.Request().Method, endpoint, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(c.Request().Method, endpoint).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
