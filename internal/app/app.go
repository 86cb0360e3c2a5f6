package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	authdb "github.com/mirellenails/salon-backend/internal/auth/db"
	authhandler "github.com/mirellenails/salon-backend/internal/auth/handler"
	jwtauth "github.com/mirellenails/salon-backend/internal/auth/jwt"
	"github.com/mirellenails/salon-backend/internal/auth/password"
	"github.com/mirellenails/salon-backend/internal/auth/ratelimit"
	authservice "github.com/mirellenails/salon-backend/internal/auth/service"
	"github.com/mirellenails/salon-backend/internal/config"
	reviewdb "github.com/mirellenails/salon-backend/internal/review/db"
	reviewhandler "github.com/mirellenails/salon-backend/internal/review/handler"
	reviewservice "github.com/mirellenails/salon-backend/internal/review/service"
	settingscache "github.com/mirellenails/salon-backend/internal/settings/cache"
	settingsdb "github.com/mirellenails/salon-backend/internal/settings/db"
	settingshandler "github.com/mirellenails/salon-backend/internal/settings/handler"
	"github.com/mirellenails/salon-backend/internal/settings/store"
	pgclient "github.com/mirellenails/salon-backend/pkg/client/postgresql"
	redisclient "github.com/mirellenails/salon-backend/pkg/client/redis"
	"go.uber.org/zap"
)

type App struct {
	HTTPServer *http.Server
}

func NewApp(log *zap.Logger, cfg config.Config) *App {
	ctx := context.TODO()

	pgClient, err := pgclient.NewClient(ctx, cfg.PostgreSQL)
	if err != nil {
		log.Fatal(err.Error())
	}

	// The cache is a best-effort fallback; an unreachable redis degrades to a
	// process-local cache instead of blocking startup.
	localCache := store.NewMemoryCache()
	if redisClient, err := redisclient.NewClient(cfg.Redis); err != nil {
		log.Warn("redis unavailable, falling back to in-memory settings cache", zap.Error(err))
	} else {
		localCache = settingscache.NewLocalCache(redisClient)
	}

	router := chi.NewRouter()

	router.Use(
		LoggingMiddleware(log),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.HTTPServer.AllowedOrigins,
			AllowCredentials: cfg.HTTPServer.AllowCredentials,
		}),
		middleware.Recoverer,
	)

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", PingHandler)

		settingsStore := store.New(settingsdb.NewRemoteStore(pgClient, log), localCache, log)
		settingsStore.Load(ctx)
		settingsStore.InitializeFromRemote(ctx)

		tokenManager := jwtauth.NewManager(cfg.JWT)

		passwordManager := password.New(log)

		authRepository := authdb.NewRepository(pgClient, log)

		authService := authservice.NewService(authRepository, tokenManager, passwordManager, cfg.Admin, log)

		if err := authService.EnsureAdmin(ctx); err != nil {
			log.Fatal("failed to provision admin account", zap.Error(err))
		}

		authMiddleware := jwtauth.NewMiddleware(log, tokenManager, cfg.Admin.Email)

		loginLimiter := ratelimit.New(cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)

		authHandler := authhandler.New(authService, authMiddleware, loginLimiter.Middleware, cfg.JWT.SessionTTL, log)

		log.Info("register auth handlers")

		authHandler.Register(r)

		settingsHandler := settingshandler.New(settingsStore, authMiddleware, log)

		log.Info("register settings handlers")

		settingsHandler.Register(r)

		reviewRepository := reviewdb.NewRepository(pgClient, log)

		reviewService := reviewservice.NewService(reviewRepository, log)

		reviewHandler := reviewhandler.New(reviewService, authMiddleware, log)

		log.Info("register review handlers")

		reviewHandler.Register(r)
	})

	srv := &http.Server{
		Addr:        cfg.HTTPServer.Address,
		Handler:     router,
		ReadTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout: cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		HTTPServer: srv,
	}
}

func (a *App) MustRun() {
	if err := a.HTTPServer.ListenAndServe(); err != nil {
		panic("failed to start server")
	}
}

func LoggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// @Tags		other
// @Success	200	{string}	string
// @Router		/ping [get]
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}
