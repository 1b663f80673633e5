// Package main is the entry point for the StarterKit web server.
// StarterKit is a minimal web-application starter kit: registration, login,
// a protected dashboard and session-based language switching.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/prn-tf/starterkit/internal/cache/memory"
	rediscache "github.com/prn-tf/starterkit/internal/cache/redis"
	"github.com/prn-tf/starterkit/internal/config"
	"github.com/prn-tf/starterkit/internal/handler"
	"github.com/prn-tf/starterkit/internal/i18n"
	"github.com/prn-tf/starterkit/internal/logging"
	"github.com/prn-tf/starterkit/internal/metrics"
	"github.com/prn-tf/starterkit/internal/repository"
	"github.com/prn-tf/starterkit/internal/repository/factory"
	"github.com/prn-tf/starterkit/internal/service"
	"github.com/prn-tf/starterkit/internal/session"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logger := logging.New(cfg.Logging)
	log.Logger = logger

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting StarterKit server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	result, err := factory.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer result.DB.Close()

	if err := result.DB.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Cache: Redis when enabled, in-memory otherwise.
	var cache repository.Cache
	if cfg.Redis.Enabled {
		redisCache, err := rediscache.NewCache(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer redisCache.Close()
		cache = redisCache
	} else {
		memCache := memory.NewCache()
		defer memCache.Close()
		cache = memCache
	}

	users := repository.NewCachedUserRepository(result.Users, cache, cfg.Session.CacheTTL, logger)

	// Services
	userService := service.NewUserService(users, logger)

	// Sessions and i18n
	sessions := session.NewManager(session.Config{
		Secret:     []byte(cfg.Session.Secret),
		CookieName: cfg.Session.CookieName,
		MaxAge:     cfg.Session.MaxAge,
		Secure:     cfg.Session.Secure,
	}, logger)

	resolver := i18n.NewResolver(i18n.Locale(cfg.I18n.DefaultLocale))

	// Metrics
	var m *metrics.Metrics
	metricsPath := ""
	if cfg.Metrics.Enabled {
		m = metrics.New()
		metricsPath = cfg.Metrics.Path
	}

	// Router
	router, err := handler.NewRouter(handler.RouterConfig{
		UserService: userService,
		Sessions:    sessions,
		Resolver:    resolver,
		Metrics:     m,
		Logger:      logger,
		MetricsPath: metricsPath,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
