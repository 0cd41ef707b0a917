package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"riskguard-lab/internal/api/handlers"
	apimiddleware "riskguard-lab/internal/api/middleware"
	"riskguard-lab/internal/config"
	"riskguard-lab/internal/infrastructure/cache"
	"riskguard-lab/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Public routes
	router.Group(func(pub chi.Router) {
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)
		pub.Get("/api/v1/stats", r.handlers.Stats.Get)
	})

	// API v1 routes (authenticated, rate limited)
	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(apimiddleware.APIKeyAuth(r.config.Auth.APIKeys))

		if r.config.RateLimit.Enabled {
			v1.Use(apimiddleware.RateLimiter(r.limiter(), r.config.RateLimit))
		}

		v1.Route("/analyze", func(an chi.Router) {
			an.Post("/text", r.handlers.Analyze.Text)
			an.Post("/text/batch", r.handlers.Analyze.TextBatch)
			an.Post("/url", r.handlers.Analyze.URL)
			an.Post("/combined", r.handlers.Analyze.Combined)
			an.Post("/qr", r.handlers.Analyze.QR)
		})

		v1.Get("/patterns", r.handlers.Analyze.Patterns)
	})

	return router
}

// limiter picks the shared Redis counter when a cache is configured,
// falling back to a per-process window
func (r *Router) limiter() apimiddleware.Limiter {
	if r.cache != nil {
		return apimiddleware.NewRedisLimiter(r.cache)
	}
	r.logger.Warn().Msg("redis not configured, rate limits are per-process")
	return apimiddleware.NewMemoryLimiter()
}
