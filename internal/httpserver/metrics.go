package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/extract"
)

// Metrics owns a private registry so several servers can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	documents *prometheus.CounterVec
	fields    *prometheus.CounterVec
	analyses  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"route", "method"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cv_documents_total",
			Help: "Documents run through extraction, by media type",
		}, []string{"media"}),
		fields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cv_fields_found_total",
			Help: "Extracted fields that were recognized, by field",
		}, []string{"field"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cv_analyses_total",
			Help: "Analyses served, by source",
		}, []string{"source"}),
	}

	m.registry.MustRegister(m.requests, m.duration, m.documents, m.fields, m.analyses)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies by route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := routePattern(r)
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(statusOf(ww))).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) ObserveExtraction(media string, cv *extract.ParsedCV) {
	m.documents.WithLabelValues(media).Inc()
	if cv == nil {
		return
	}

	found := map[string]bool{
		"name":       cv.Name != nil,
		"email":      cv.Email != nil,
		"phone":      cv.Phone != nil,
		"skills":     len(cv.Skills) > 0,
		"experience": cv.Experience != nil,
		"education":  cv.Education != nil,
	}
	for field, ok := range found {
		if ok {
			m.fields.WithLabelValues(field).Inc()
		}
	}
}

func (m *Metrics) ObserveAnalysis(source ai.Source) {
	m.analyses.WithLabelValues(string(source)).Inc()
}
