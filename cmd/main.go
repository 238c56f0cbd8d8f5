package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Surabhi11/fantasy-cricket/config"
	"github.com/Surabhi11/fantasy-cricket/cricket"
	"github.com/Surabhi11/fantasy-cricket/db"
	"github.com/Surabhi11/fantasy-cricket/handlers"
	"github.com/Surabhi11/fantasy-cricket/live"
	"github.com/Surabhi11/fantasy-cricket/repositories"
	api "github.com/Surabhi11/fantasy-cricket/routes"
	"github.com/Surabhi11/fantasy-cricket/services"
	"github.com/Surabhi11/fantasy-cricket/storage"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	contestSchedulerInterval = 30 * time.Second
	sessionSweepInterval     = time.Hour
	livePollInterval         = 30 * time.Second
	shutdownTimeout          = 15 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.EnsureSchema(ctx, dbConn); err != nil {
		logger.Error("failed to initialize database schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema ensured")

	// Cricket gateway, optionally wrapped in a Redis cache.
	var gateway cricket.Gateway = cricket.NewGateway(cfg.CricketAPIBaseURL, cfg.CricketAPIKey, logger)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", slog.Any("error", err))
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		gateway = cricket.NewCachedGateway(gateway, rdb, logger)
		logger.Info("cricket response cache enabled")
	}

	// Avatar storage is optional; uploads are rejected when unset.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewR2Uploader(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 uploader initialized")
	}

	hub := live.NewHub(logger)
	go hub.Run()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)
	contestRepo := repositories.NewPostgresContestRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	leaderboardRepo := repositories.NewPostgresLeaderboardRepository(dbConn)
	engagementRepo := repositories.NewPostgresEngagementRepository(dbConn)
	txBeginner := repositories.NewTxBeginner(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, sessionRepo, logger)
	contestService := services.NewContestService(txBeginner, contestRepo, teamRepo, leaderboardRepo, logger)
	engagementService := services.NewEngagementService(engagementRepo)
	userService := services.NewUserService(userRepo, uploader)
	logger.Info("services initialized")

	// Background loops: contest status promotion, session sweeping and the
	// live score poller feeding the WebSocket hub.
	go runContestScheduler(ctx, contestService, logger)
	go runSessionSweeper(ctx, authService, logger)
	go live.NewPoller(gateway, hub, livePollInterval, logger).Run(ctx)

	router := api.SetupRoutes(api.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Cricket:    handlers.NewCricketHandler(gateway),
		Contest:    handlers.NewContestHandler(contestService),
		Engagement: handlers.NewEngagementHandler(engagementService),
		User:       handlers.NewUserHandler(userService),
		WebSocket:  handlers.NewWebSocketHandler(hub, logger),
		Health:     handlers.NewHealthHandler(dbConn, cfg.CricketAPIKey != ""),
	}, authService)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}

// runContestScheduler promotes upcoming contests to live once their match
// has started. Runs once at startup, then on every tick.
func runContestScheduler(ctx context.Context, contestService services.ContestService, logger *slog.Logger) {
	ticker := time.NewTicker(contestSchedulerInterval)
	defer ticker.Stop()
	logger.Info("contest status scheduler started", slog.Duration("interval", contestSchedulerInterval))

	promote := func() {
		promoted, err := contestService.PromoteDueContests(ctx)
		if err != nil {
			logger.Error("contest status update failed", slog.Any("error", err))
			return
		}
		if promoted > 0 {
			logger.Info("contests promoted to live", slog.Int("count", promoted))
		}
	}

	promote()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			promote()
		}
	}
}

func runSessionSweeper(ctx context.Context, authService services.AuthService, logger *slog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := authService.CleanupExpiredSessions(ctx)
			if err != nil {
				logger.Error("session sweep failed", slog.Any("error", err))
				continue
			}
			if removed > 0 {
				logger.Info("expired sessions removed", slog.Int64("count", removed))
			}
		}
	}
}
