// AngelaMos | 2026
// routes.go

package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"github.com/suprilp8221/Store-Rating-Platform/internal/admin"
	"github.com/suprilp8221/Store-Rating-Platform/internal/auth"
	"github.com/suprilp8221/Store-Rating-Platform/internal/config"
	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/health"
	"github.com/suprilp8221/Store-Rating-Platform/internal/middleware"
	"github.com/suprilp8221/Store-Rating-Platform/internal/rating"
	"github.com/suprilp8221/Store-Rating-Platform/internal/store"
	"github.com/suprilp8221/Store-Rating-Platform/internal/user"
)

const (
	authRequestsPerMinute = 10
)

// services holds the domain layer. Construction order matters: ratings
// feed the owner aggregate on users, and stores look up both.
type services struct {
	Ratings *rating.Service
	Users   *user.Service
	Stores  *store.Service
	Auth    *auth.Service
}

func newServices(
	users user.Repository,
	stores store.Repository,
	ratings rating.Repository,
	tokens *auth.JWTManager,
) *services {
	ratingSvc := rating.NewService(ratings)
	userSvc := user.NewService(users, ratingSvc)
	storeSvc := store.NewService(stores, userSvc, ratingSvc)

	return &services{
		Ratings: ratingSvc,
		Users:   userSvc,
		Stores:  storeSvc,
		Auth:    auth.NewService(tokens, userSvc),
	}
}

type routerConfig struct {
	Logger     *slog.Logger
	Tracer     trace.Tracer
	Metrics    *middleware.Metrics
	Redis      *redis.Client
	RateLimit  config.RateLimitConfig
	CORS       config.CORSConfig
	Production bool
	JWT        *auth.JWTManager
	Health     *health.Handler
	Admin      admin.HandlerConfig
}

func mountRoutes(router chi.Router, svc *services, cfg routerConfig) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing(cfg.Tracer))
	router.Use(cfg.Metrics.Middleware)
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(
		middleware.NewRateLimiter(cfg.Redis, middleware.RateLimitConfig{
			Limit: middleware.Per(
				cfg.RateLimit.Window,
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.Production))
	router.Use(middleware.CORS(cfg.CORS))

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		core.NotFound(w, "route")
	})

	cfg.Health.RegisterRoutes(router)

	router.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	router.Get("/.well-known/jwks.json", cfg.JWT.GetJWKSHandler())

	authenticator := middleware.Authenticator(cfg.JWT)
	credentialLimiter := middleware.NewRateLimiter(cfg.Redis, middleware.RateLimitConfig{
		Limit:    middleware.Per(time.Minute, authRequestsPerMinute, authRequestsPerMinute),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
	}).Handler

	adminCfg := cfg.Admin
	adminCfg.Users = svc.Users
	adminCfg.Stores = svc.Stores
	adminCfg.Ratings = svc.Ratings

	router.Route("/api", func(r chi.Router) {
		auth.NewHandler(svc.Auth).RegisterRoutes(r, authenticator, credentialLimiter)

		userHandler := user.NewHandler(svc.Users)
		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator)

		storeHandler := store.NewHandler(svc.Stores)
		storeHandler.RegisterRoutes(r, authenticator)
		storeHandler.RegisterAdminRoutes(r, authenticator)

		rating.NewHandler(svc.Ratings).RegisterRoutes(r, authenticator)

		admin.NewHandler(adminCfg).RegisterRoutes(r, authenticator)
	})
}
