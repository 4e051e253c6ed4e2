package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/categories", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/broken", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/broken", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues(http.MethodGet, "/categories", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues(http.MethodGet, "/broken", "404")))
}

func TestQuizCounters(t *testing.T) {
	m := New()
	m.ObserveQuestionServed("Science")
	m.ObserveQuestionServed("Science")
	m.ObserveQuizExhausted("All")
	m.ObserveCatalogChange("question_created")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuestionsServed.WithLabelValues("Science")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuizExhausted.WithLabelValues("All")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogChanges.WithLabelValues("question_created")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveQuestionServed("Art")
		m.ObserveQuizExhausted("Art")
		m.ObserveCatalogChange("question_deleted")
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveQuestionServed("History")

	e := echo.New()
	e.GET("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `trivia_quiz_questions_served_total{category="History"} 1`)
}
