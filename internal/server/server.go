// Package server boots the whole application: config, logging, database,
// cache, storage, queue workers, scheduler, live feeds and the HTTP (and
// optional gRPC) listeners.
package server

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

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/config"
	"github.com/souqdz/souq/internal/kernel"
	"github.com/souqdz/souq/pkg/cache"
	"github.com/souqdz/souq/pkg/database"
	souqgrpc "github.com/souqdz/souq/pkg/grpc"
	"github.com/souqdz/souq/pkg/logger"
	"github.com/souqdz/souq/pkg/notification"
	"github.com/souqdz/souq/pkg/queue"
	"github.com/souqdz/souq/pkg/schedule"
	"github.com/souqdz/souq/pkg/storage"
	"github.com/souqdz/souq/pkg/workerpool"
	"github.com/souqdz/souq/pkg/ws"
)

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	setupLogging()

	if err := database.Connect(); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.DB.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.Order{}, &models.User{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, falling back to in-memory queue", "error", err)
	}
	storage.Connect()

	setupQueue()
	notification.SetSlackWebhook(config.SlackWebhook())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, 2)
	RegisterSchedule()
	schedule.Start(ctx)

	hub := ws.NewHub()
	go hub.Run()

	warmCaches()

	if port := config.GRPCPort(); port != "" {
		grpcSrv, lis, err := souqgrpc.Start(port)
		if err != nil {
			return fmt.Errorf("start grpc: %w", err)
		}
		defer souqgrpc.Stop(grpcSrv)
		logger.Info("grpc listening", "addr", lis.Addr().String())
	}

	httpKernel := kernel.NewHTTPKernel(hub)
	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("souq listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

// setupLogging attaches the Mongo sink when MONGO_LOG_URI is configured,
// keeping the stdout handler either way.
func setupLogging() {
	uri := config.MongoLogURI()
	if uri == "" {
		return
	}

	mongoHandler, err := logger.NewMongoHandler(uri, "souq", "logs")
	if err != nil {
		logger.Warn("mongo log sink unavailable", "error", err)
		return
	}

	logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), mongoHandler))
	slog.SetDefault(logger.L)
}

// setupQueue picks redis when available so jobs survive restarts, and
// records failed jobs in the database either way.
func setupQueue() {
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	} else {
		queue.SetDriver(queue.NewMemoryDriver())
	}
	queue.UseDB(database.DB)
}

// RegisterSchedule registers the recurring jobs. Called both by the
// embedded scheduler on serve and by the standalone schedule:run command.
func RegisterSchedule() {
	schedule.Hourly().Name("reconcile-active-flags").WithoutOverlapping().Run(func() {
		n, err := services.ReconcileActiveFlags(database.DB)
		if err != nil {
			logger.Error("active flag reconcile failed", "error", err)
			return
		}
		if n > 0 {
			logger.Info("active flags reconciled", "products", n)
		}
	})
}

// warmCaches primes the category cache in the background so the first
// storefront hit does not pay the cold read.
func warmCaches() {
	catalog := services.NewCatalogService(
		repositories.NewProductRepository(),
		repositories.NewCategoryRepository(),
	)

	pool := workerpool.New(2)
	tasks := []func(){
		func() {
			if _, err := catalog.Categories(); err != nil {
				logger.Warn("category cache warmup failed", "error", err)
			}
		},
		func() {
			if _, err := catalog.NewArrivals(); err != nil {
				logger.Warn("new arrivals warmup failed", "error", err)
			}
		},
	}
	for _, task := range tasks {
		if err := pool.Submit(task); err != nil {
			logger.Warn("warmup submit failed", "error", err)
		}
	}
	go func() {
		time.Sleep(5 * time.Second)
		pool.Shutdown()
	}()
}
