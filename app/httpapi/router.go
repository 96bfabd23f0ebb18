package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/scoreline-bot/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	AllowedOrigins []string
	// Gatherer backs /metrics. Nil leaves the route out.
	Gatherer prometheus.Gatherer
	// RateLimit is requests per second per client IP; zero disables limiting.
	RateLimit rate.Limit
	RateBurst int
}

// NewRouter builds the facade routes.
func NewRouter(h *Handlers, logger *slog.Logger, opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(CORSMiddleware(opts.AllowedOrigins))

	r.Get("/healthz", h.HandleHealthz)
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(RateLimitMiddleware(ratelimit.New[string](opts.RateLimit, opts.RateBurst)))
		}
		r.Get("/", h.HandleIndex)
		r.Get("/matches", h.HandleMatches)
		r.Get("/predictions.xlsx", h.HandlePredictionsXLSX)
	})

	return r
}
