package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ProductStore/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// RateLimit is optional; nil serves every request.
	RateLimit *kit.IPRateLimiter
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if s.Log == nil {
		s.Log = deps.Log
	}

	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, s, deps)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusMethodNotAllowed, r.Method+" not allowed")
	})

	r.Mount("/", s.Routes())
	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
	r.Use(deps.RateLimit.Middleware)
}

func setupMetrics(r *chi.Mux, s *Server, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if s.Mutations == nil {
		s.Mutations = NewMutations(deps.Registry)
	}

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}
