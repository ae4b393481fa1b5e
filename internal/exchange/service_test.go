package exchange_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perma-museum/custodian/internal/adapter"
	"github.com/perma-museum/custodian/internal/auth"
	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/exchange"
	"github.com/perma-museum/custodian/internal/logger"
	"github.com/perma-museum/custodian/internal/mocks"
	"github.com/perma-museum/custodian/internal/registry"
	"github.com/perma-museum/custodian/internal/store"
)

const (
	adminPrincipal   = domain.Principal("registry-admin")
	platformAccount  = domain.Principal("custodian-platform")
	sellerPrincipal  = domain.Principal("louvre")
	buyerPrincipal   = domain.Principal("met")
	bidderPrincipal  = domain.Principal("uffizi")
	bidder2Principal = domain.Principal("prado")

	testFeeBps = int64(250) // 2.5%
)

var testRef = domain.NewAssetRef("heritage-main", 1)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeClock is a settable clock for driving auction deadlines
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }

func (c *fakeClock) After(d time.Duration) <-chan time.Time { return time.After(0) }

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ adapter.Clock = (*fakeClock)(nil)

type fixture struct {
	store    store.Store
	funds    *mocks.MockLedger
	clock    *fakeClock
	registry *registry.Service
	exchange *exchange.Service
}

// as returns a context whose proven principal is p
func as(p domain.Principal) context.Context {
	return auth.WithPrincipal(context.Background(), p)
}

// newFixture builds an initialized registry + exchange over a fresh in-memory
// store with one asset minted to the seller
func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()

	f := &fixture{
		store: store.NewMemoryStore(),
		funds: mocks.NewMockLedger(ctrl),
		clock: newFakeClock(),
	}
	oracle := auth.NewOracle()
	f.registry = registry.NewService(f.store, oracle, nil, nil, f.clock)
	f.exchange = exchange.NewService(f.store, oracle, f.funds, f.registry, nil, f.clock, platformAccount)

	require.NoError(t, f.registry.Initialize(as(adminPrincipal), adminPrincipal, "Perma Museum", "PERMA"))
	require.NoError(t, f.exchange.Initialize(as(adminPrincipal), adminPrincipal, testFeeBps))
	require.NoError(t, f.registry.Mint(as(adminPrincipal), adminPrincipal, sellerPrincipal, testRef, domain.AssetMetadata{
		Title:     "Winged Victory of Samothrace",
		Creator:   "Unknown",
		Custodian: sellerPrincipal,
	}, nil))

	return f
}

func TestInitialize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	feeBps, err := f.exchange.FeeBps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testFeeBps, feeBps)

	listings, err := f.exchange.TotalListings(context.Background())
	require.NoError(t, err)
	assert.Zero(t, listings)

	auctions, err := f.exchange.TotalAuctions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, auctions)

	err = f.exchange.Initialize(as(adminPrincipal), adminPrincipal, 100)
	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)
}

func TestInitialize_InvalidFee(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := store.NewMemoryStore()
	svc := exchange.NewService(s, auth.NewOracle(), mocks.NewMockLedger(ctrl), nil, nil, newFakeClock(), platformAccount)

	for _, feeBps := range []int64{-1, 10001} {
		err := svc.Initialize(as(adminPrincipal), adminPrincipal, feeBps)
		assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	}
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000))

	listing, err := f.exchange.GetListing(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, sellerPrincipal.String(), listing.Seller)
	assert.EqualValues(t, 1000, listing.Price)
	assert.True(t, listing.Active)

	total, err := f.exchange.TotalListings(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestList_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	// Zero price
	err := f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	// Non-owner
	err = f.exchange.List(as(buyerPrincipal), buyerPrincipal, testRef, 1000)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Unknown asset
	err = f.exchange.List(as(sellerPrincipal), sellerPrincipal, domain.NewAssetRef("heritage-main", 99), 1000)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Double listing
	require.NoError(t, f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000))
	err = f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1200)
	assert.ErrorIs(t, err, domain.ErrAlreadyListed)
}

func TestList_ExcludedByAuction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))

	err := f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000)
	assert.ErrorIs(t, err, domain.ErrAlreadyInAuction)
}

func TestBuy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000))

	// fee = 1000 * 250 / 10000 = 25
	gomock.InOrder(
		f.funds.EXPECT().Transfer(gomock.Any(), buyerPrincipal, sellerPrincipal, int64(975), gomock.Any()).Return(nil),
		f.funds.EXPECT().Transfer(gomock.Any(), buyerPrincipal, platformAccount, int64(25), gomock.Any()).Return(nil),
	)

	require.NoError(t, f.exchange.Buy(as(buyerPrincipal), buyerPrincipal, testRef))

	// Ownership moved with a sale provenance record
	owner, err := f.registry.OwnerOf(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, buyerPrincipal, owner)

	chain, err := f.registry.Provenance(context.Background(), testRef)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, domain.ProvenanceKindSale, chain[0].Kind)

	// Listing is terminal but still queryable
	listing, err := f.exchange.GetListing(context.Background(), testRef)
	require.NoError(t, err)
	assert.False(t, listing.Active)

	// Second purchase fails
	err = f.exchange.Buy(as(bidderPrincipal), bidderPrincipal, testRef)
	assert.ErrorIs(t, err, domain.ErrNotActive)
}

func TestBuy_SelfPurchase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000))

	err := f.exchange.Buy(as(sellerPrincipal), sellerPrincipal, testRef)
	assert.ErrorIs(t, err, domain.ErrSelfPurchase)
}

func TestBuy_NotListed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	err := f.exchange.Buy(as(buyerPrincipal), buyerPrincipal, testRef)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuy_LedgerFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000))

	f.funds.EXPECT().
		Transfer(gomock.Any(), buyerPrincipal, sellerPrincipal, int64(975), gomock.Any()).
		Return(errors.New("insufficient funds"))

	err := f.exchange.Buy(as(buyerPrincipal), buyerPrincipal, testRef)
	require.Error(t, err)

	// Listing still active, ownership unchanged
	listing, err := f.exchange.GetListing(context.Background(), testRef)
	require.NoError(t, err)
	assert.True(t, listing.Active)

	owner, err := f.registry.OwnerOf(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, sellerPrincipal, owner)
}

func TestCancelListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000))

	// Only the seller can cancel
	err := f.exchange.CancelListing(as(buyerPrincipal), buyerPrincipal, testRef)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, f.exchange.CancelListing(as(sellerPrincipal), sellerPrincipal, testRef))

	// Cancelling again fails
	err = f.exchange.CancelListing(as(sellerPrincipal), sellerPrincipal, testRef)
	assert.ErrorIs(t, err, domain.ErrNotActive)
}

func TestRelistAfterCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000))
	require.NoError(t, f.exchange.CancelListing(as(sellerPrincipal), sellerPrincipal, testRef))

	// A fresh listing at a new price is allowed
	require.NoError(t, f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1200))

	listing, err := f.exchange.GetListing(context.Background(), testRef)
	require.NoError(t, err)
	assert.True(t, listing.Active)
	assert.EqualValues(t, 1200, listing.Price)

	total, err := f.exchange.TotalListings(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestCreateAuction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))

	auction, err := f.exchange.GetAuction(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, sellerPrincipal.String(), auction.Seller)
	assert.EqualValues(t, 500, auction.StartingPrice)
	assert.Zero(t, auction.CurrentBid)
	assert.Equal(t, sellerPrincipal.String(), auction.HighestBidder)
	assert.Equal(t, f.clock.Now().Add(time.Hour), auction.EndTime)
	assert.True(t, auction.Active)

	// Second auction on the same asset fails
	err = f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour)
	assert.ErrorIs(t, err, domain.ErrAlreadyInAuction)

	// And so does a listing
	err = f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000)
	assert.ErrorIs(t, err, domain.ErrAlreadyInAuction)
}

func TestCreateAuction_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	err := f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 0, time.Hour)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	err = f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	err = f.exchange.CreateAuction(as(buyerPrincipal), buyerPrincipal, testRef, 500, time.Hour)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000))
	err = f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour)
	assert.ErrorIs(t, err, domain.ErrAlreadyListed)
}

func TestBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))

	f.funds.EXPECT().Escrow(gomock.Any(), bidderPrincipal, testRef, int64(600)).Return(nil)
	require.NoError(t, f.exchange.Bid(as(bidderPrincipal), bidderPrincipal, testRef, 600))

	auction, err := f.exchange.GetAuction(context.Background(), testRef)
	require.NoError(t, err)
	assert.EqualValues(t, 600, auction.CurrentBid)
	assert.Equal(t, bidderPrincipal.String(), auction.HighestBidder)

	bid, err := f.exchange.GetHighestBid(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, bidderPrincipal.String(), bid.Bidder)
	assert.EqualValues(t, 600, bid.Amount)
}

func TestBid_OutbidRefundsPrevious(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))

	f.funds.EXPECT().Escrow(gomock.Any(), bidderPrincipal, testRef, int64(600)).Return(nil)
	require.NoError(t, f.exchange.Bid(as(bidderPrincipal), bidderPrincipal, testRef, 600))

	gomock.InOrder(
		f.funds.EXPECT().RefundEscrow(gomock.Any(), testRef, bidderPrincipal, int64(600)).Return(nil),
		f.funds.EXPECT().Escrow(gomock.Any(), bidder2Principal, testRef, int64(700)).Return(nil),
	)
	require.NoError(t, f.exchange.Bid(as(bidder2Principal), bidder2Principal, testRef, 700))

	auction, err := f.exchange.GetAuction(context.Background(), testRef)
	require.NoError(t, err)
	assert.EqualValues(t, 700, auction.CurrentBid)
	assert.Equal(t, bidder2Principal.String(), auction.HighestBidder)
}

func TestBid_TooLow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))

	// Equal to the starting price is not enough
	err := f.exchange.Bid(as(bidderPrincipal), bidderPrincipal, testRef, 500)
	assert.ErrorIs(t, err, domain.ErrBidTooLow)

	f.funds.EXPECT().Escrow(gomock.Any(), bidderPrincipal, testRef, int64(600)).Return(nil)
	require.NoError(t, f.exchange.Bid(as(bidderPrincipal), bidderPrincipal, testRef, 600))

	// Equal to the current bid is not enough either
	err = f.exchange.Bid(as(bidder2Principal), bidder2Principal, testRef, 600)
	assert.ErrorIs(t, err, domain.ErrBidTooLow)
}

func TestBid_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	// No auction at all
	err := f.exchange.Bid(as(bidderPrincipal), bidderPrincipal, testRef, 600)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))

	// Seller bidding on its own auction
	err = f.exchange.Bid(as(sellerPrincipal), sellerPrincipal, testRef, 600)
	assert.ErrorIs(t, err, domain.ErrSelfPurchase)

	// Past the deadline
	f.clock.Advance(2 * time.Hour)
	err = f.exchange.Bid(as(bidderPrincipal), bidderPrincipal, testRef, 600)
	assert.ErrorIs(t, err, domain.ErrAuctionEnded)
}

func TestEndAuction_WithBids(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))
	f.funds.EXPECT().Escrow(gomock.Any(), bidderPrincipal, testRef, int64(1000)).Return(nil)
	require.NoError(t, f.exchange.Bid(as(bidderPrincipal), bidderPrincipal, testRef, 1000))

	// Too early while the auction runs
	err := f.exchange.EndAuction(as(buyerPrincipal), buyerPrincipal, testRef)
	assert.ErrorIs(t, err, domain.ErrTooEarly)

	f.clock.Advance(2 * time.Hour)

	// fee = 1000 * 250 / 10000 = 25; any authenticated caller may settle
	gomock.InOrder(
		f.funds.EXPECT().ReleaseEscrow(gomock.Any(), testRef, bidderPrincipal, sellerPrincipal, int64(975)).Return(nil),
		f.funds.EXPECT().ReleaseEscrow(gomock.Any(), testRef, bidderPrincipal, platformAccount, int64(25)).Return(nil),
	)
	require.NoError(t, f.exchange.EndAuction(as(buyerPrincipal), buyerPrincipal, testRef))

	owner, err := f.registry.OwnerOf(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, bidderPrincipal, owner)

	chain, err := f.registry.Provenance(context.Background(), testRef)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, domain.ProvenanceKindAuctionSettlement, chain[0].Kind)

	// Ending again fails
	err = f.exchange.EndAuction(as(buyerPrincipal), buyerPrincipal, testRef)
	assert.ErrorIs(t, err, domain.ErrNotActive)
}

func TestEndAuction_NoBids(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))
	f.clock.Advance(2 * time.Hour)

	// No ledger calls expected; the auction closes without a sale
	require.NoError(t, f.exchange.EndAuction(as(buyerPrincipal), buyerPrincipal, testRef))

	owner, err := f.registry.OwnerOf(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, sellerPrincipal, owner)

	// The asset is free for a new auction or listing
	require.NoError(t, f.exchange.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000))
}

func TestCancelAuction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))

	// Only the seller can cancel
	err := f.exchange.CancelAuction(as(buyerPrincipal), buyerPrincipal, testRef)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, f.exchange.CancelAuction(as(sellerPrincipal), sellerPrincipal, testRef))

	// The asset is free again
	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 600, time.Hour))
}

func TestCancelAuction_HasBids(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))
	f.funds.EXPECT().Escrow(gomock.Any(), bidderPrincipal, testRef, int64(600)).Return(nil)
	require.NoError(t, f.exchange.Bid(as(bidderPrincipal), bidderPrincipal, testRef, 600))

	err := f.exchange.CancelAuction(as(sellerPrincipal), sellerPrincipal, testRef)
	assert.ErrorIs(t, err, domain.ErrHasBids)
}

func TestBid_EscrowFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	require.NoError(t, f.exchange.CreateAuction(as(sellerPrincipal), sellerPrincipal, testRef, 500, time.Hour))

	f.funds.EXPECT().
		Escrow(gomock.Any(), bidderPrincipal, testRef, int64(600)).
		Return(errors.New("insufficient funds"))

	err := f.exchange.Bid(as(bidderPrincipal), bidderPrincipal, testRef, 600)
	require.Error(t, err)

	auction, err := f.exchange.GetAuction(context.Background(), testRef)
	require.NoError(t, err)
	assert.Zero(t, auction.CurrentBid)
	assert.Equal(t, sellerPrincipal.String(), auction.HighestBidder)

	_, err = f.exchange.GetHighestBid(context.Background(), testRef)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueries_NotInitialized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := exchange.NewService(store.NewMemoryStore(), auth.NewOracle(), mocks.NewMockLedger(ctrl), nil, nil, newFakeClock(), platformAccount)

	_, err := svc.FeeBps(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	err = svc.List(as(sellerPrincipal), sellerPrincipal, testRef, 1000)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}
