package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pickem-app-go/config"
	"pickem-app-go/database"
	"pickem-app-go/handlers"
	"pickem-app-go/logging"
	"pickem-app-go/middleware"
	"pickem-app-go/services"

	"github.com/itbasis/go-clock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(cfg.ToLoggingConfig())
	logger := logging.WithPrefix("Main")
	cfg.LogConfiguration()

	db, err := database.NewMongoConnection(cfg.ToDatabaseConfig())
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	gameRepo := database.NewMongoGameRepository(db)
	resultRepo := database.NewMongoResultRepository(db)
	weeklyPicksRepo := database.NewMongoWeeklyPicksRepository(db)
	userRepo := database.NewMongoUserRepository(db)
	weeklyScoreRepo := database.NewMongoWeeklyScoreRepository(db)

	clk := clock.New()
	cache := newLeaderboardCache(cfg, clk, logger)
	rules := cfg.RuleBook()
	loc := cfg.League.Location

	scoringService := services.NewScoringService(gameRepo, resultRepo, weeklyPicksRepo, userRepo, weeklyScoreRepo, rules, loc, cache)
	pickService := services.NewPickService(gameRepo, weeklyPicksRepo, rules, loc, clk, scoringService)
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, clk)

	router := handlers.Router{
		Auth:        handlers.NewAuthHandler(authService),
		Scores:      handlers.NewScoreHandler(scoringService),
		Picks:       handlers.NewPickHandler(pickService),
		Games:       handlers.NewGameHandler(pickService, loc),
		AuthMW:      middleware.NewAuthMiddleware(authService),
		BehindProxy: cfg.Server.BehindProxy,
	}

	server := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Results and schedule changes arrive from outside the API
	if cfg.Database.WatchChanges {
		watcher := database.NewChangeStreamWatcher(db, func(event database.ChangeEvent) {
			scoringService.InvalidateStandings(ctx)
		}, "results", "games")
		watcher.Start(ctx)
	}

	go func() {
		var err error
		if cfg.Server.UseTLS && !cfg.Server.BehindProxy {
			logger.Infof("HTTPS server starting on %s", server.Addr)
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			logger.Infof("HTTP server starting on %s", server.Addr)
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
	closeLeaderboardCache(cache, logger)
	logger.Info("Server stopped")
}

// newLeaderboardCache uses Redis when configured and falls back to memory if it is unreachable
func newLeaderboardCache(cfg *config.Config, clk clock.Clock, logger *logging.Logger) services.LeaderboardCache {
	if cfg.UseRedis() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cache, err := services.NewRedisLeaderboardCache(ctx, cfg.ToRedisConfig(), cfg.Redis.CacheTTL)
		if err == nil {
			logger.Infof("Caching standings in Redis at %s", cfg.Redis.Addr)
			return cache
		}
		logger.Warnf("Redis unavailable, caching standings in memory: %v", err)
	}
	return services.NewMemoryLeaderboardCache(clk, cfg.Redis.CacheTTL)
}

// closeLeaderboardCache releases the cache's connection when it holds one
func closeLeaderboardCache(cache services.LeaderboardCache, logger *logging.Logger) {
	closer, ok := cache.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warnf("Failed to close standings cache: %v", err)
	}
}
