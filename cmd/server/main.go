package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/wss/backend/internal/application/datagen"
	"github.com/wss/backend/internal/application/transaction"
	"github.com/wss/backend/internal/infrastructure/config"
	"github.com/wss/backend/internal/infrastructure/logger"
	"github.com/wss/backend/internal/infrastructure/metrics"
	"github.com/wss/backend/internal/infrastructure/persistence"
	"github.com/wss/backend/internal/interfaces/http/handler"
	"github.com/wss/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("persistence", cfg.Persistence.Mode),
	)

	flusherCfg := persistence.FlusherConfig{
		Mode: cfg.Persistence.Mode,
		Dir:  cfg.Persistence.Dir,
	}
	if cfg.Persistence.Mode == persistence.ModeRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()
		flusherCfg.Redis = client
	}

	stores, err := persistence.NewStores(
		func() persistence.IdentityGenerator[string] { return persistence.UUIDGenerator{} },
		flusherCfg,
	)
	if err != nil {
		log.Fatal("failed to build record stores", zap.Error(err))
	}

	if cfg.Model.Initialize && stores.Warehouses.Count() == 0 {
		generator := datagen.NewGenerator(stores, cfg.Model, log)
		if err := generator.Generate(); err != nil {
			log.Fatal("failed to generate model data", zap.Error(err))
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	txMetrics := metrics.NewTransactionMetrics(registry)

	runner := persistence.NewTransactionRunner(
		cfg.Transaction.MaxRetries,
		cfg.Transaction.Backoff,
		log,
		txMetrics,
	)

	transactionHandler := handler.NewTransactionHandler(
		transaction.NewNewOrderService(stores, runner, cfg.Stock),
		transaction.NewPaymentService(stores, runner, cfg.Customer),
		transaction.NewOrderStatusService(stores, runner),
		transaction.NewDeliveryService(stores, runner),
		transaction.NewStockLevelService(stores, runner),
	)

	engine := router.New(router.Config{
		Logger:       log,
		Transactions: transactionHandler,
		Registry:     registry,
		Production:   cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
