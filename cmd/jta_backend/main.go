package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/adapters/notify"
	"github.com/SscSPs/job_tracker_app/internal/adapters/queue"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/core/services"
	"github.com/SscSPs/job_tracker_app/internal/handlers"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
	"github.com/SscSPs/job_tracker_app/internal/platform/config"
	"github.com/SscSPs/job_tracker_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/job_tracker_app/internal/repositories/memory"
	"github.com/SscSPs/job_tracker_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Job Tracker API
// @version 1.0
// @description Tracks job applications, their status history, interviews and reminders.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	// The job facility needs the dispatcher and the dispatcher lives in the
	// container, which needs the job facility.
	var dispatcher portssvc.ReminderDispatcherSvc
	fire := func(ctx context.Context, job domain.ReminderJob) error {
		return dispatcher.HandleReminderFired(ctx, job)
	}
	scheduler, startScheduler, stopScheduler, err := setupScheduler(ctx, cfg, fire, logger)
	if err != nil {
		logger.Error("Failed to initialize reminder scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	container := services.NewServiceContainer(repos, services.Dependencies{
		Scheduler: scheduler,
		Notifier:  setupNotifier(cfg),
		Policy:    services.DemoUserPolicy{DemoEmail: cfg.DemoUserEmail},
	})
	dispatcher = container.ReminderDispatcher
	if err := startScheduler(); err != nil {
		logger.Error("Failed to start reminder scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer stopScheduler()

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateLimiter := limiter.New(limitermemory.NewStore(), rate)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.Metrics())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, container, rateLimiter); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// setupRepositories connects to Postgres and migrates it, or falls back to
// the in-memory store when no database URL is configured.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return *memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established")

	// Migrations run on a short-lived database/sql handle over the pgx driver.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	logger.Info("Running database migrations", slog.String("source", cfg.MigrationsPath))
	if err := database.RunMigrations(migrationDB, cfg.MigrationsPath, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// setupScheduler picks the Redis job facility when REDIS_URL is set and the
// in-process one otherwise. Polling begins with the returned start func.
func setupScheduler(ctx context.Context, cfg *config.Config, fire queue.FireHandler, logger *slog.Logger) (portssvc.JobScheduler, func() error, func(), error) {
	if cfg.RedisURL == "" {
		q := queue.NewInProcess(fire, logger)
		return q, func() error { return nil }, q.Close, nil
	}

	client, err := queue.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	q := queue.NewRedis(client, fire, logger, queue.RedisConfig{
		PollSpec:   cfg.QueuePollSpec,
		Visibility: cfg.QueueVisibility,
	})
	start := func() error { return q.Start(ctx) }
	return q, start, func() {
		q.Stop()
		if err := client.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}, nil
}

func setupNotifier(cfg *config.Config) portssvc.Notifier {
	if cfg.Mail.Host == "" {
		return notify.LogNotifier{}
	}
	return notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.User,
		Password: cfg.Mail.Pass,
		From:     cfg.Mail.From,
	})
}
