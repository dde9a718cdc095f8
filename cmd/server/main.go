package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comandahq/comanda/config"
	"github.com/comandahq/comanda/internal/api"
	"github.com/comandahq/comanda/internal/api/handler"
	"github.com/comandahq/comanda/internal/metrics"
	"github.com/comandahq/comanda/internal/repository"
	"github.com/comandahq/comanda/internal/service"
	"github.com/comandahq/comanda/pkg/database"
	"github.com/comandahq/comanda/pkg/logger"
	"github.com/comandahq/comanda/pkg/telemetry"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	shutdownTracing := must(telemetry.Init(ctx, "comanda", cfg.Telemetry.OTLPEndpoint))
	defer shutdownTracing(context.Background())

	db := must(database.InitDB(cfg))

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, report cache disabled", zap.Error(err))
			cache = nil
		}
	}

	// repositories & services
	orderRepo := repository.NewOrderRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	clientRepo := repository.NewClientRepository(db)

	directory := service.NewDirectoryReplicator(clientRepo, 10000)
	stopDirectory := directory.Start(2)
	defer stopDirectory(context.Background())

	orderSvc := service.NewOrderService(orderRepo, directory, cfg.Server.BaseURL)
	metricsSvc := service.NewMetricsService(orderRepo, restaurantRepo, cache, cfg.Redis.CacheTTL)
	crmSvc := service.NewCRMService(orderRepo, restaurantRepo)
	authSvc := service.NewAuthService(restaurantRepo)

	counters := metrics.Registry("comanda")
	h := handler.New(orderSvc, metricsSvc, crmSvc, authSvc, counters, db)
	router := api.NewRouter(cfg, h, counters)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
