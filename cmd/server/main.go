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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"fractal.app/api/common/id"
	"fractal.app/api/common/logger"
	"fractal.app/api/common/otel"
	"fractal.app/api/core/config"
	"fractal.app/api/core/db"
	"fractal.app/api/internal/http/middleware"
	httprouter "fractal.app/api/internal/http/router"
	"fractal.app/api/internal/queue"
	"fractal.app/api/internal/service"
	"fractal.app/api/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "fractal api starting", "env", cfg.Env, "auth_provider", cfg.Auth.Provider)
	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	producer, err := newProducer(ctx, cfg.Notify)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	provider, err := service.NewIdentityProvider(cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to configure identity provider", "error", err)
		os.Exit(1)
	}

	services := service.NewServices(
		store.NewStores(database.Queries()),
		service.NewTxRunner(database),
		provider,
		service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL),
		producer,
		cfg.FrontendURL,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := service.RegisterMetrics(registry); err != nil {
		slog.ErrorContext(ctx, "failed to register metrics", "error", err)
		os.Exit(1)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, database, middleware.NewMetrics(registry))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go pruneSessions(janitorCtx, services.Auth(), time.Hour)

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")
	stopJanitor()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// pruneSessions removes expired sessions on every tick until ctx is done.
func pruneSessions(ctx context.Context, auth service.AuthService, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := auth.PruneSessions(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.WarnContext(ctx, "session prune failed", "error", err)
			}
		}
	}
}

// newProducer connects the notification stream. Without REDIS_URL invitation
// emails are not queued and only the invite link is returned.
func newProducer(ctx context.Context, cfg config.NotifyConfig) (queue.Producer, error) {
	if !cfg.Enabled() {
		slog.WarnContext(ctx, "notification stream disabled (no REDIS_URL configured)")
		return queue.NopProducer{}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Stream)

	return queue.NewRedisProducer(client, cfg.Stream, slog.Default()), nil
}

func setupRouter(cfg config.Config, services *service.Services, database *db.DB, metrics *middleware.Metrics) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	var authRate float64
	if cfg.RateLimit.Enabled() {
		authRate = cfg.RateLimit.PerSecond
	}

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		FrontendURL:   cfg.FrontendURL,
		IsProduction:  cfg.IsProduction(),
		SessionTTL:    cfg.JWT.TTL,
		AuthRateLimit: authRate,
		AuthBurst:     cfg.RateLimit.Burst,
		DB:            database,
		Metrics:       metrics,
	})

	return router
}

const banner = `
███████╗██████╗  █████╗  ██████╗████████╗ █████╗ ██╗     
██╔════╝██╔══██╗██╔══██╗██╔════╝╚══██╔══╝██╔══██╗██║     
█████╗  ██████╔╝███████║██║        ██║   ███████║██║     
██╔══╝  ██╔══██╗██╔══██║██║        ██║   ██╔══██║██║     
██║     ██║  ██║██║  ██║╚██████╗   ██║   ██║  ██║███████╗
╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝   ╚═╝   ╚═╝  ╚═╝╚══════╝
`
