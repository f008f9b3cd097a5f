package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"

	_ "github.com/lib/pq"

	"ledger-engine/internal/api"
	"ledger-engine/internal/config"
	"ledger-engine/internal/events"
	"ledger-engine/internal/pricing"
	"ledger-engine/internal/repository"
	"ledger-engine/internal/service"
)

func main() {
	config.LoadEnv()
	var cfg config.Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	txManager := repository.NewTxManager(db)
	operationRepo := repository.NewOperationRepository(db)
	accountRepo := repository.NewWalletAccountRepository(db)
	trackerRepo := repository.NewLimitTrackerRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)
	txTypeRepo := repository.NewTransactionTypeRepository(db)

	ctx := context.Background()
	for _, create := range []func(context.Context) error{
		operationRepo.CreateTableIfNotExists,
		accountRepo.CreateTableIfNotExists,
		trackerRepo.CreateTableIfNotExists,
		currencyRepo.CreateTableIfNotExists,
		txTypeRepo.CreateTableIfNotExists,
	} {
		if err := create(ctx); err != nil {
			log.Fatalf("Failed to create table: %v", err)
		}
	}

	publisher, err := events.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange, logger)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}
	defer publisher.Close()

	pricingClient := pricing.NewClient(cfg.Pricing.BaseURL)

	enforcer := service.NewBalanceEnforcer(accountRepo, service.RequireCover, logger)
	operationService := service.NewOperationService(
		txManager, operationRepo, accountRepo, trackerRepo, enforcer, publisher, currencyRepo, logger)
	averageCostService := service.NewAverageCostService(
		txManager, accountRepo, currencyRepo, txTypeRepo, pricingClient, pricingClient, logger)
	reconciler := service.NewReconcilerService(
		txManager, operationRepo, trackerRepo, cfg.Reconciler.PageSize, logger)

	consumer, err := events.NewConsumer(
		cfg.Broker.URL, cfg.Broker.Exchange, cfg.Broker.Queue, averageCostService, operationService, logger)
	if err != nil {
		log.Fatalf("Failed to initialize trigger consumer: %v", err)
	}
	defer consumer.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := consumer.Start(runCtx); err != nil {
			logger.Error("trigger consumer stopped", slog.String("error", err.Error()))
			cancel()
		}
	}()

	go runReconcilerLoop(runCtx, reconciler, cfg.Reconciler.Interval, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: api.NewRouter(operationRepo, accountRepo),
	}
	go func() {
		logger.Info("reporting server listening", slog.Int("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start reporting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-runCtx.Done():
	}

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("worker exited properly")
}

// runReconcilerLoop sweeps immediately on start and then on the configured
// cadence. A failed pass is logged and retried on the next tick; partial
// progress between pages is already durable.
func runReconcilerLoop(ctx context.Context, reconciler *service.ReconcilerService, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := reconciler.ReconcileIntervalLimits(ctx); err != nil {
			logger.Error("interval reconciliation pass failed", slog.String("error", err.Error()))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func initDatabase(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DataBase.URL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.ConnectionPool.MaxOpenConns)
	db.SetMaxIdleConns(cfg.ConnectionPool.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnectionPool.MaxLifetime)

	return db, nil
}
