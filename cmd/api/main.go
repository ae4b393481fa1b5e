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
	"github.com/perma-museum/custodian/internal/api/middleware"
	"github.com/perma-museum/custodian/internal/api/server"
	"github.com/perma-museum/custodian/internal/auth"
	"github.com/perma-museum/custodian/internal/config"
	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/exchange"
	"github.com/perma-museum/custodian/internal/logger"
	"github.com/perma-museum/custodian/internal/messaging"
	"github.com/perma-museum/custodian/internal/notifier"
	"github.com/perma-museum/custodian/internal/providers/jetstream"
	"github.com/perma-museum/custodian/internal/providers/ledgerd"
	"github.com/perma-museum/custodian/internal/providers/museum"
	"github.com/perma-museum/custodian/internal/providers/reputation"
	"github.com/perma-museum/custodian/internal/registry"
	"github.com/perma-museum/custodian/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Custodian API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database schema", zap.Error(err))
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

	// Event publishers: broker plus webhook fan-out
	var publishers []messaging.Publisher

	if cfg.NATS.URL != "" {
		jsPublisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		publishers = append(publishers, jsPublisher)
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, broker publishing disabled")
	}

	if len(cfg.Webhooks) > 0 {
		publishers = append(publishers, notifier.New(httpClient, notifier.Config{
			Endpoints: cfg.Webhooks,
		}))
		logger.InfoCtx(ctx, "Webhook delivery enabled", zap.Int("endpoints", len(cfg.Webhooks)))
	}

	var publisher messaging.Publisher
	if len(publishers) > 0 {
		publisher = messaging.NewFanout(publishers...)
		defer publisher.Close()
	}

	// Settlement ledger client
	if cfg.Ledger.URL == "" {
		logger.FatalCtx(ctx, "ledger.url is required")
	}
	fundsLedger := ledgerd.NewClient(httpClient, cfg.Ledger.URL)

	// Optional collaborator clients
	var museumClient museum.Client
	if cfg.Collaborators.MuseumURL != "" {
		museumClient = museum.NewClient(httpClient, cfg.Collaborators.MuseumURL)
	} else {
		logger.WarnCtx(ctx, "Museum registry not configured, custodian verification disabled")
	}

	var reputationClient reputation.Client
	if cfg.Collaborators.ReputationURL != "" {
		reputationClient = reputation.NewClient(httpClient, cfg.Collaborators.ReputationURL)
	}

	// Core services
	registryService := registry.NewService(dataStore, oracle, museumClient, publisher, clock)
	exchangeService := exchange.NewService(dataStore, oracle, fundsLedger, registryService, publisher, clock, domain.Principal(cfg.PlatformAccount))

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
		},
	}

	srv := server.New(serverConfig, registryService, exchangeService, museumClient, reputationClient)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
