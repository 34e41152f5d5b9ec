package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/globescholar/scholarhub/internal/auth"
	"github.com/globescholar/scholarhub/internal/config"
	"github.com/globescholar/scholarhub/internal/http/handlers"
	"github.com/globescholar/scholarhub/internal/http/middlewares"
	"github.com/globescholar/scholarhub/internal/observability"
	"github.com/globescholar/scholarhub/internal/repo/postgres"
	"github.com/globescholar/scholarhub/internal/suggest"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config, prom *observability.Prom, reg *prometheus.Registry) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20)) // 1 MiB

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	if cfg.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware("scholarhub-api"))
	}

	// health

	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if reg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// wire up repositories and services

	usersRepo := postgres.NewUsersRepo(pool, prom)
	scholarshipsRepo := postgres.NewScholarshipsRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())

	var completer suggest.Completer

	if cfg.ProviderAPIKey != "" {
		completer = suggest.NewProtectedCompleter(
			suggest.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.ProviderModel, cfg.ProviderTimeout()),
			suggest.ProtectedCompleterConfig{Timeout: cfg.ProviderTimeout()},
		)
	}

	gateway := suggest.NewGateway(completer, log, prom)

	// handlers

	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager)
	scholarshipsHandler := handlers.NewScholarshipsHandler(scholarshipsRepo, gateway)

	authMw := middlewares.NewAuthMiddleware(jwtManager, usersRepo)

	authLimiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, time.Duration(cfg.AuthRateWindowSec)*time.Second)
	fetchLimiter := middlewares.NewRateLimiter(cfg.FetchRateLimit, time.Duration(cfg.FetchRateWindowSec)*time.Second)

	// public routes

	authGroup := r.Group("/auth")
	authGroup.Use(middlewares.RequireJSON())
	authGroup.Use(authLimiter.Middleware(middlewares.KeyByIP))
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)

	r.POST("/fetch-scholarships",
		middlewares.RequireJSON(),
		fetchLimiter.Middleware(middlewares.KeyByUserOrIP),
		scholarshipsHandler.Fetch,
	)

	// protected routes

	protected := r.Group("/")
	protected.Use(authMw.RequireAuth())
	protected.GET("/me", authHandler.Me)
	protected.POST("/scholarships/save", middlewares.RequireJSON(), scholarshipsHandler.Save)
	protected.GET("/scholarships/saved", scholarshipsHandler.ListSaved)
	protected.DELETE("/scholarships/saved/:id", scholarshipsHandler.DeleteSaved)

	return r
}
