package sweeper_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perma-museum/custodian/internal/adapter"
	"github.com/perma-museum/custodian/internal/auth"
	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/logger"
	"github.com/perma-museum/custodian/internal/mocks"
	"github.com/perma-museum/custodian/internal/store"
	"github.com/perma-museum/custodian/internal/store/schema"
	"github.com/perma-museum/custodian/internal/sweeper"
)

const platformAccount = domain.Principal("custodian-platform")

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func seedAuction(t *testing.T, s store.Store, ref string, endTime time.Time) {
	t.Helper()
	require.NoError(t, s.CreateAuction(context.Background(), &schema.Auction{
		AssetRef:      ref,
		Seller:        "louvre",
		StartingPrice: 500,
		HighestBidder: "louvre",
		StartTime:     endTime.Add(-time.Hour),
		EndTime:       endTime,
		Active:        true,
	}))
}

func TestSettlementSweeper_EndsExpiredAuctions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := store.NewMemoryStore()
	now := time.Now()
	seedAuction(t, s, "heritage-main:1", now.Add(-time.Minute))
	seedAuction(t, s, "heritage-main:2", now.Add(-time.Second))
	seedAuction(t, s, "heritage-main:3", now.Add(time.Hour)) // not due

	closer := mocks.NewMockAuctionCloser(ctrl)
	done := make(chan string, 2)
	for _, ref := range []string{"heritage-main:1", "heritage-main:2"} {
		ref := ref
		closer.EXPECT().
			EndAuction(gomock.Any(), platformAccount, domain.AssetRef(ref)).
			DoAndReturn(func(ctx context.Context, caller domain.Principal, r domain.AssetRef) error {
				// The sweeper must act under its own proven identity
				proven, ok := auth.PrincipalFromContext(ctx)
				assert.True(t, ok)
				assert.Equal(t, platformAccount, proven)

				// Deactivate so the next scan does not pick it up again
				auction, err := s.GetLatestAuction(ctx, r.String())
				require.NoError(t, err)
				require.NoError(t, s.DeactivateAuction(ctx, auction.ID))

				done <- r.String()
				return nil
			})
	}

	sw := sweeper.NewSettlementSweeper(
		&sweeper.SettlementSweeperConfig{BatchSize: 10, WorkerPoolSize: 2},
		s, closer, adapter.NewClock(), platformAccount,
	)
	assert.Equal(t, "settlement-sweeper", sw.Name())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	started := make(chan error, 1)
	go func() { started <- sw.Start(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			t.Fatal("sweeper never settled the expired auctions")
		}
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, sw.Stop(stopCtx))
	require.NoError(t, <-started)
}

func TestSettlementSweeper_ToleratesAlreadyEnded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := store.NewMemoryStore()
	seedAuction(t, s, "heritage-main:1", time.Now().Add(-time.Minute))

	closer := mocks.NewMockAuctionCloser(ctrl)
	done := make(chan struct{})
	closer.EXPECT().
		EndAuction(gomock.Any(), platformAccount, domain.AssetRef("heritage-main:1")).
		DoAndReturn(func(ctx context.Context, _ domain.Principal, r domain.AssetRef) error {
			auction, err := s.GetLatestAuction(ctx, r.String())
			require.NoError(t, err)
			require.NoError(t, s.DeactivateAuction(ctx, auction.ID))
			close(done)
			return domain.ErrNotActive
		})

	sw := sweeper.NewSettlementSweeper(
		&sweeper.SettlementSweeperConfig{BatchSize: 10, WorkerPoolSize: 1},
		s, closer, adapter.NewClock(), platformAccount,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	started := make(chan error, 1)
	go func() { started <- sw.Start(ctx) }()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("sweeper never picked up the auction")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, sw.Stop(stopCtx))
	require.NoError(t, <-started)
}

func TestSettlementSweeper_DoubleStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := store.NewMemoryStore()
	sw := sweeper.NewSettlementSweeper(
		&sweeper.SettlementSweeperConfig{BatchSize: 10, WorkerPoolSize: 1},
		s, mocks.NewMockAuctionCloser(ctrl), adapter.NewClock(), platformAccount,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	started := make(chan error, 1)
	go func() { started <- sw.Start(ctx) }()

	// Give the first Start a moment to claim the running flag
	time.Sleep(100 * time.Millisecond)
	assert.Error(t, sw.Start(ctx))

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, sw.Stop(stopCtx))
	require.NoError(t, <-started)
}
