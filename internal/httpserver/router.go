package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RouterConfig holds the transport knobs of BuildRouter.
type RouterConfig struct {
	CORSOrigins     string
	RateLimitPerMin int
	RequestTimeout  time.Duration
}

// ParseOrigins splits a comma-separated origin list. Empty input allows all.
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg RouterConfig, srv *Server, metrics *Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID(logger))
	r.Use(Recoverer)
	r.Use(AccessLog)
	if metrics != nil {
		r.Use(metrics.Middleware)
	}
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: ParseOrigins(cfg.CORSOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{headerRequestID},
		MaxAge:         300,
	}))

	r.Group(func(wr chi.Router) {
		if cfg.RateLimitPerMin > 0 {
			wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute))
		}
		wr.Post("/upload-pdf", srv.UploadPDFHandler())
		wr.Post("/analyze-cv", srv.AnalyzeHandler())
	})

	r.Get("/test-models", srv.TestModelsHandler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "ai": srv.Reviews.AIEnabled()})
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	return SecurityHeaders(r)
}
