package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/perma-museum/custodian/internal/adapter"
	"github.com/perma-museum/custodian/internal/auth"
	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/logger"
	"github.com/perma-museum/custodian/internal/store"
)

const (
	SWEEP_CYCLE_INTERVAL = 30 * time.Second // Time to sleep when no auctions are due
)

// AuctionCloser is the slice of the exchange the sweeper needs: ending an
// auction whose deadline has passed
//
//go:generate mockgen -source=settlement.go -destination=../mocks/auction_closer.go -package=mocks -mock_names=AuctionCloser=MockAuctionCloser
type AuctionCloser interface {
	// EndAuction settles or closes the auction for the given asset
	EndAuction(ctx context.Context, caller domain.Principal, ref domain.AssetRef) error
}

// SettlementSweeperConfig holds configuration for the settlement sweeper
type SettlementSweeperConfig struct {
	BatchSize      int // Expired auctions to pick up per cycle
	WorkerPoolSize int // Concurrent settlements
}

// settlementSweeper continuously scans for active auctions whose end time has
// passed and ends them on behalf of the platform principal
type settlementSweeper struct {
	config    *SettlementSweeperConfig
	store     store.Store
	closer    AuctionCloser
	clock     adapter.Clock
	platform  domain.Principal
	pool      pond.Pool
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewSettlementSweeper creates a new auction settlement sweeper
func NewSettlementSweeper(
	config *SettlementSweeperConfig,
	st store.Store,
	closer AuctionCloser,
	clock adapter.Clock,
	platform domain.Principal,
) Sweeper {
	return &settlementSweeper{
		config:    config,
		store:     st,
		closer:    closer,
		clock:     clock,
		platform:  platform,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *settlementSweeper) Name() string {
	return "settlement-sweeper"
}

// Start begins the sweeper's main loop. Blocks until the context is canceled
// or Stop is called.
func (s *settlementSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting settlement sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.String("platform", s.platform.String()),
	)

	// The sweeper acts as the platform principal when ending auctions
	ctx = auth.WithPrincipal(ctx, s.platform)

	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Settlement sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Settlement sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for in-flight settlements
func (s *settlementSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *settlementSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping settlement sweeper")

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Settlement sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Settlement sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle picks up one batch of expired auctions and settles them
func (s *settlementSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	auctions, err := s.store.ListExpiredAuctions(ctx, startTime, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list expired auctions: %w", err)
	}

	if len(auctions) == 0 {
		if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
			return ctx.Err()
		}
		return nil
	}

	logger.InfoCtx(ctx, "Found expired auctions to settle", zap.Int("count", len(auctions)))

	var settled, failed atomic.Int32

	for _, auction := range auctions {
		ref := domain.AssetRef(auction.AssetRef)
		s.pool.Submit(func() {
			if err := s.endWithRetry(ctx, ref); err != nil {
				failed.Add(1)
				logger.ErrorCtx(ctx, fmt.Errorf("failed to settle auction: %w", err),
					zap.String("assetRef", ref.String()))
				return
			}
			settled.Add(1)
		})
	}

	s.pool.StopAndWait()

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("picked_up", len(auctions)),
		zap.Int32("settled", settled.Load()),
		zap.Int32("failed", failed.Load()),
	)

	return nil
}

// endWithRetry ends one auction, retrying transient failures. An auction that
// another actor already ended is not an error.
func (s *settlementSweeper) endWithRetry(ctx context.Context, ref domain.AssetRef) error {
	operation := func() error {
		err := s.closer.EndAuction(ctx, s.platform, ref)
		if err == nil {
			return nil
		}
		// Someone else ended it between the scan and now, or the end time
		// moved out of the scan window
		if errors.Is(err, domain.ErrNotActive) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrTooEarly) {
			return nil
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request. Returns false when interrupted.
func (s *settlementSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
