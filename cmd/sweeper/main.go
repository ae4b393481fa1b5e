package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/perma-museum/custodian/internal/adapter"
	"github.com/perma-museum/custodian/internal/auth"
	"github.com/perma-museum/custodian/internal/config"
	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/exchange"
	"github.com/perma-museum/custodian/internal/logger"
	"github.com/perma-museum/custodian/internal/messaging"
	"github.com/perma-museum/custodian/internal/providers/jetstream"
	"github.com/perma-museum/custodian/internal/providers/ledgerd"
	"github.com/perma-museum/custodian/internal/registry"
	"github.com/perma-museum/custodian/internal/store"
	"github.com/perma-museum/custodian/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting settlement sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	httpClient := adapter.NewHTTPClient(10 * time.Second)
	clock := adapter.NewClock()
	oracle := auth.NewOracle()

	// Event publisher
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, broker publishing disabled")
	}

	// Settlement ledger client
	if cfg.Ledger.URL == "" {
		logger.FatalCtx(ctx, "ledger.url is required")
	}
	fundsLedger := ledgerd.NewClient(httpClient, cfg.Ledger.URL)

	// The sweeper ends auctions through the exchange service like any other
	// caller, acting as the platform principal
	platform := domain.Principal(cfg.PlatformAccount)
	registryService := registry.NewService(dataStore, oracle, nil, publisher, clock)
	exchangeService := exchange.NewService(dataStore, oracle, fundsLedger, registryService, publisher, clock, platform)

	sweeperConfig := &sweeper.SettlementSweeperConfig{
		BatchSize:      cfg.SettlementSweeper.BatchSize,
		WorkerPoolSize: cfg.SettlementSweeper.Worker.WorkerPoolSize,
	}
	settlementSweeper := sweeper.NewSettlementSweeper(sweeperConfig, dataStore, exchangeService, clock, platform)

	logger.InfoCtx(ctx, "Initialized settlement sweeper",
		zap.Int("batch_size", cfg.SettlementSweeper.BatchSize),
		zap.Int("worker_pool_size", cfg.SettlementSweeper.Worker.WorkerPoolSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := settlementSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := settlementSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Settlement sweeper stopped")
}
