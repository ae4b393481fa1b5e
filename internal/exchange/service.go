package exchange

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/perma-museum/custodian/internal/adapter"
	"github.com/perma-museum/custodian/internal/auth"
	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/ledger"
	"github.com/perma-museum/custodian/internal/logger"
	"github.com/perma-museum/custodian/internal/messaging"
	"github.com/perma-museum/custodian/internal/registry"
	"github.com/perma-museum/custodian/internal/store"
	"github.com/perma-museum/custodian/internal/store/schema"
)

// Service implements the exchange engine: fixed-price listings and ascending
// auctions over registry assets. The two tracks exclude each other per asset
// through the asset lock; every operation runs as one store transaction.
type Service struct {
	store     store.Store
	oracle    auth.Oracle
	funds     ledger.Service
	settler   registry.Settler
	publisher messaging.Publisher
	clock     adapter.Clock

	// platform receives the marketplace fee cut
	platform domain.Principal
}

// NewService creates the exchange service. The publisher is optional.
func NewService(s store.Store, oracle auth.Oracle, funds ledger.Service, settler registry.Settler, publisher messaging.Publisher, clock adapter.Clock, platform domain.Principal) *Service {
	return &Service{
		store:     s,
		oracle:    oracle,
		funds:     funds,
		settler:   settler,
		publisher: publisher,
		clock:     clock,
		platform:  platform,
	}
}

// Initialize sets up the exchange instance with its administrator and fee
// schedule. It can only succeed once.
func (s *Service) Initialize(ctx context.Context, admin domain.Principal, feeBps int64) error {
	if err := s.oracle.Verify(ctx, admin); err != nil {
		return err
	}
	if feeBps < 0 || feeBps > 10000 {
		return fmt.Errorf("%w: fee basis points must be in [0, 10000]", domain.ErrInvalidParameter)
	}

	return s.store.Atomic(ctx, func(tx store.Store) error {
		_, found, err := tx.GetSetting(ctx, schema.SettingExchangeAdmin)
		if err != nil {
			return err
		}
		if found {
			return domain.ErrAlreadyInitialized
		}

		if err := tx.SetSetting(ctx, schema.SettingExchangeAdmin, admin.String()); err != nil {
			return err
		}
		if err := tx.SetSetting(ctx, schema.SettingExchangeFeeBps, strconv.FormatInt(feeBps, 10)); err != nil {
			return err
		}
		if err := tx.SetSetting(ctx, schema.SettingExchangeListings, "0"); err != nil {
			return err
		}
		return tx.SetSetting(ctx, schema.SettingExchangeAuctions, "0")
	})
}

// List creates a fixed-price listing for an asset owned by the seller
func (s *Service) List(ctx context.Context, seller domain.Principal, ref domain.AssetRef, price int64) error {
	if err := s.oracle.Verify(ctx, seller); err != nil {
		return err
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidParameter)
	}

	err := s.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := s.requireFeeBps(ctx, tx); err != nil {
			return err
		}
		if err := s.requireOwner(ctx, tx, ref, seller); err != nil {
			return err
		}
		if err := s.requireUnlocked(ctx, tx, ref); err != nil {
			return err
		}

		now := s.clock.Now()
		listing := &schema.Listing{
			AssetRef:  ref.String(),
			Seller:    seller.String(),
			Price:     price,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.CreateListing(ctx, listing); err != nil {
			return err
		}

		if err := tx.AcquireAssetLock(ctx, &schema.AssetLock{
			AssetRef: ref.String(),
			Track:    schema.LockTrackListing,
			HolderID: listing.ID,
		}); err != nil {
			return err
		}

		_, err := tx.IncrSetting(ctx, schema.SettingExchangeListings, 1)
		return err
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeListed, ref, seller, "", price)
	return nil
}

// Buy purchases an actively listed asset at its asking price. The listing is
// closed, the price moves from buyer to seller minus the marketplace fee, and
// ownership settles with a sale provenance record, all in one transaction.
func (s *Service) Buy(ctx context.Context, buyer domain.Principal, ref domain.AssetRef) error {
	if err := s.oracle.Verify(ctx, buyer); err != nil {
		return err
	}

	var (
		seller domain.Principal
		price  int64
	)
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		feeBps, err := s.requireFeeBps(ctx, tx)
		if err != nil {
			return err
		}

		listing, err := s.requireListing(ctx, tx, ref)
		if err != nil {
			return err
		}
		if listing.Seller == buyer.String() {
			return fmt.Errorf("%w: cannot buy own listing", domain.ErrSelfPurchase)
		}

		seller = domain.Principal(listing.Seller)
		price = listing.Price
		fee := domain.MarketFee(price, feeBps)

		if err := tx.DeactivateListing(ctx, listing.ID); err != nil {
			return err
		}
		if err := tx.ReleaseAssetLock(ctx, ref.String()); err != nil {
			return err
		}

		if err := s.settler.Settle(ctx, tx, seller, buyer, ref, domain.ProvenanceKindSale,
			fmt.Sprintf("sold at %d", price)); err != nil {
			return err
		}

		// Funds move last so a ledger failure rolls the whole purchase back
		if err := s.funds.Transfer(ctx, buyer, seller, price-fee, "sale "+ref.String()); err != nil {
			return err
		}
		if fee > 0 {
			if err := s.funds.Transfer(ctx, buyer, s.platform, fee, "fee "+ref.String()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeSold, ref, seller, buyer, price)
	return nil
}

// CancelListing withdraws an active listing. No funds move.
func (s *Service) CancelListing(ctx context.Context, seller domain.Principal, ref domain.AssetRef) error {
	if err := s.oracle.Verify(ctx, seller); err != nil {
		return err
	}

	err := s.store.Atomic(ctx, func(tx store.Store) error {
		listing, err := s.requireListing(ctx, tx, ref)
		if err != nil {
			return err
		}
		if listing.Seller != seller.String() {
			return fmt.Errorf("%w: caller is not the seller", domain.ErrUnauthorized)
		}

		if err := tx.DeactivateListing(ctx, listing.ID); err != nil {
			return err
		}
		return tx.ReleaseAssetLock(ctx, ref.String())
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeListingCancelled, ref, seller, "", 0)
	return nil
}

// CreateAuction opens a time-boxed ascending auction for an asset owned by
// the seller. The seller stands as its own highest bidder until the first bid.
func (s *Service) CreateAuction(ctx context.Context, seller domain.Principal, ref domain.AssetRef, startingPrice int64, duration time.Duration) error {
	if err := s.oracle.Verify(ctx, seller); err != nil {
		return err
	}
	if startingPrice <= 0 {
		return fmt.Errorf("%w: starting price must be positive", domain.ErrInvalidParameter)
	}
	if duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", domain.ErrInvalidParameter)
	}

	err := s.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := s.requireFeeBps(ctx, tx); err != nil {
			return err
		}
		if err := s.requireOwner(ctx, tx, ref, seller); err != nil {
			return err
		}
		if err := s.requireUnlocked(ctx, tx, ref); err != nil {
			return err
		}

		now := s.clock.Now()
		auction := &schema.Auction{
			AssetRef:      ref.String(),
			Seller:        seller.String(),
			StartingPrice: startingPrice,
			CurrentBid:    0,
			HighestBidder: seller.String(),
			StartTime:     now,
			EndTime:       now.Add(duration),
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.CreateAuction(ctx, auction); err != nil {
			return err
		}

		if err := tx.AcquireAssetLock(ctx, &schema.AssetLock{
			AssetRef: ref.String(),
			Track:    schema.LockTrackAuction,
			HolderID: auction.ID,
		}); err != nil {
			return err
		}

		_, err := tx.IncrSetting(ctx, schema.SettingExchangeAuctions, 1)
		return err
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeAuctionCreated, ref, seller, "", startingPrice)
	return nil
}

// Bid places a bid on an active auction. The amount must strictly exceed both
// the current bid and the starting price; the displaced bidder's escrow is
// refunded and the new amount escrowed atomically with the bid.
func (s *Service) Bid(ctx context.Context, bidder domain.Principal, ref domain.AssetRef, amount int64) error {
	if err := s.oracle.Verify(ctx, bidder); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: bid amount must be positive", domain.ErrInvalidParameter)
	}

	var seller domain.Principal
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		auction, err := s.requireAuction(ctx, tx, ref)
		if err != nil {
			return err
		}
		if !s.clock.Now().Before(auction.EndTime) {
			return fmt.Errorf("%w: auction for %q", domain.ErrAuctionEnded, ref.String())
		}
		if auction.Seller == bidder.String() {
			return fmt.Errorf("%w: seller cannot bid", domain.ErrSelfPurchase)
		}
		if amount <= auction.CurrentBid || amount <= auction.StartingPrice {
			return fmt.Errorf("%w: bid %d must exceed current bid %d and starting price %d",
				domain.ErrBidTooLow, amount, auction.CurrentBid, auction.StartingPrice)
		}

		seller = domain.Principal(auction.Seller)

		if err := tx.UpdateAuctionBid(ctx, auction.ID, amount, bidder.String()); err != nil {
			return err
		}
		if err := tx.UpsertBid(ctx, &schema.Bid{
			AuctionID: auction.ID,
			Bidder:    bidder.String(),
			Amount:    amount,
			Timestamp: s.clock.Now(),
		}); err != nil {
			return err
		}

		if auction.CurrentBid > 0 {
			if err := s.funds.RefundEscrow(ctx, ref, domain.Principal(auction.HighestBidder), auction.CurrentBid); err != nil {
				return err
			}
		}
		return s.funds.Escrow(ctx, bidder, ref, amount)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeBidPlaced, ref, bidder, seller, amount)
	return nil
}

// EndAuction settles an auction whose end time has passed. Any authenticated
// caller can end it; the sweeper does so on behalf of the platform. With bids
// the escrowed amount pays the seller minus the fee and ownership settles;
// without bids the auction simply closes.
func (s *Service) EndAuction(ctx context.Context, caller domain.Principal, ref domain.AssetRef) error {
	if err := s.oracle.Verify(ctx, caller); err != nil {
		return err
	}

	var (
		winner domain.Principal
		seller domain.Principal
		amount int64
	)
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		feeBps, err := s.requireFeeBps(ctx, tx)
		if err != nil {
			return err
		}

		auction, err := s.requireAuction(ctx, tx, ref)
		if err != nil {
			return err
		}
		if s.clock.Now().Before(auction.EndTime) {
			return fmt.Errorf("%w: auction for %q", domain.ErrTooEarly, ref.String())
		}

		seller = domain.Principal(auction.Seller)

		if err := tx.DeactivateAuction(ctx, auction.ID); err != nil {
			return err
		}
		if err := tx.ReleaseAssetLock(ctx, ref.String()); err != nil {
			return err
		}

		if auction.CurrentBid == 0 {
			return nil
		}

		winner = domain.Principal(auction.HighestBidder)
		amount = auction.CurrentBid
		fee := domain.MarketFee(amount, feeBps)

		if err := s.settler.Settle(ctx, tx, seller, winner, ref, domain.ProvenanceKindAuctionSettlement,
			fmt.Sprintf("auction settled at %d", amount)); err != nil {
			return err
		}

		if err := s.funds.ReleaseEscrow(ctx, ref, winner, seller, amount-fee); err != nil {
			return err
		}
		if fee > 0 {
			if err := s.funds.ReleaseEscrow(ctx, ref, winner, s.platform, fee); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if winner != "" {
		s.emit(ctx, domain.EventTypeAuctionSettled, ref, seller, winner, amount)
	} else {
		s.emit(ctx, domain.EventTypeAuctionClosed, ref, seller, "", 0)
	}
	return nil
}

// CancelAuction withdraws an active auction that has received no bids
func (s *Service) CancelAuction(ctx context.Context, seller domain.Principal, ref domain.AssetRef) error {
	if err := s.oracle.Verify(ctx, seller); err != nil {
		return err
	}

	err := s.store.Atomic(ctx, func(tx store.Store) error {
		auction, err := s.requireAuction(ctx, tx, ref)
		if err != nil {
			return err
		}
		if auction.Seller != seller.String() {
			return fmt.Errorf("%w: caller is not the seller", domain.ErrUnauthorized)
		}
		if auction.CurrentBid > 0 {
			return fmt.Errorf("%w: auction for %q", domain.ErrHasBids, ref.String())
		}

		if err := tx.DeactivateAuction(ctx, auction.ID); err != nil {
			return err
		}
		return tx.ReleaseAssetLock(ctx, ref.String())
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventTypeAuctionCancelled, ref, seller, "", 0)
	return nil
}

// GetListing returns the most recent listing record for an asset
func (s *Service) GetListing(ctx context.Context, ref domain.AssetRef) (*schema.Listing, error) {
	listing, err := s.store.GetLatestListing(ctx, ref.String())
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: no listing for %q", domain.ErrNotFound, ref.String())
	}
	return listing, nil
}

// GetAuction returns the most recent auction record for an asset
func (s *Service) GetAuction(ctx context.Context, ref domain.AssetRef) (*schema.Auction, error) {
	auction, err := s.store.GetLatestAuction(ctx, ref.String())
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, fmt.Errorf("%w: no auction for %q", domain.ErrNotFound, ref.String())
	}
	return auction, nil
}

// GetHighestBid returns the bid record held by the current highest bidder of
// the asset's most recent auction, or NotFound before any bid
func (s *Service) GetHighestBid(ctx context.Context, ref domain.AssetRef) (*schema.Bid, error) {
	auction, err := s.GetAuction(ctx, ref)
	if err != nil {
		return nil, err
	}
	if auction.CurrentBid == 0 {
		return nil, fmt.Errorf("%w: no bids for %q", domain.ErrNotFound, ref.String())
	}

	bid, err := s.store.GetBid(ctx, auction.ID, auction.HighestBidder)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, fmt.Errorf("%w: no bids for %q", domain.ErrNotFound, ref.String())
	}
	return bid, nil
}

// FeeBps returns the configured marketplace fee in basis points
func (s *Service) FeeBps(ctx context.Context) (int64, error) {
	return s.requireFeeBps(ctx, s.store)
}

// TotalListings returns the number of listings ever created
func (s *Service) TotalListings(ctx context.Context) (int64, error) {
	return s.requireCounter(ctx, schema.SettingExchangeListings)
}

// TotalAuctions returns the number of auctions ever created
func (s *Service) TotalAuctions(ctx context.Context) (int64, error) {
	return s.requireCounter(ctx, schema.SettingExchangeAuctions)
}

// requireFeeBps loads the fee schedule or fails with NotInitialized
func (s *Service) requireFeeBps(ctx context.Context, tx store.Store) (int64, error) {
	value, found, err := tx.GetSetting(ctx, schema.SettingExchangeFeeBps)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domain.ErrNotInitialized
	}

	feeBps, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt fee setting: %w", err)
	}
	return feeBps, nil
}

func (s *Service) requireCounter(ctx context.Context, key string) (int64, error) {
	value, found, err := s.store.GetSetting(ctx, key)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domain.ErrNotInitialized
	}

	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt counter %q: %w", key, err)
	}
	return count, nil
}

// requireOwner checks the asset exists and is owned by the seller
func (s *Service) requireOwner(ctx context.Context, tx store.Store, ref domain.AssetRef, seller domain.Principal) error {
	asset, err := tx.GetAsset(ctx, ref.String())
	if err != nil {
		return err
	}
	if asset == nil {
		return fmt.Errorf("%w: asset %q", domain.ErrNotFound, ref.String())
	}
	if asset.Owner != seller.String() {
		return fmt.Errorf("%w: %q does not own %q", domain.ErrUnauthorized, seller.String(), ref.String())
	}
	return nil
}

// requireUnlocked rejects a new listing or auction while either track holds
// the asset
func (s *Service) requireUnlocked(ctx context.Context, tx store.Store, ref domain.AssetRef) error {
	lock, err := tx.GetAssetLock(ctx, ref.String())
	if err != nil {
		return err
	}
	if lock == nil {
		return nil
	}
	if lock.Track == schema.LockTrackAuction {
		return fmt.Errorf("%w: asset %q has an active auction", domain.ErrAlreadyInAuction, ref.String())
	}
	return fmt.Errorf("%w: asset %q has an active listing", domain.ErrAlreadyListed, ref.String())
}

// requireListing loads the latest listing and checks it is still active
func (s *Service) requireListing(ctx context.Context, tx store.Store, ref domain.AssetRef) (*schema.Listing, error) {
	listing, err := tx.GetLatestListing(ctx, ref.String())
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: no listing for %q", domain.ErrNotFound, ref.String())
	}
	if !listing.Active {
		return nil, fmt.Errorf("%w: listing for %q", domain.ErrNotActive, ref.String())
	}
	return listing, nil
}

// requireAuction loads the latest auction and checks it is still active
func (s *Service) requireAuction(ctx context.Context, tx store.Store, ref domain.AssetRef) (*schema.Auction, error) {
	auction, err := tx.GetLatestAuction(ctx, ref.String())
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, fmt.Errorf("%w: no auction for %q", domain.ErrNotFound, ref.String())
	}
	if !auction.Active {
		return nil, fmt.Errorf("%w: auction for %q", domain.ErrNotActive, ref.String())
	}
	return auction, nil
}

// emit publishes a custody event after a committed state transition.
// Publishing is fire-and-forget; a broker outage never fails the operation.
func (s *Service) emit(ctx context.Context, eventType domain.EventType, ref domain.AssetRef, from, to domain.Principal, amount int64) {
	if s.publisher == nil {
		return
	}

	event := &domain.CustodyEvent{
		EventID:   ulid.MustNewDefault(s.clock.Now()).String(),
		EventType: eventType,
		AssetRef:  ref,
		From:      from,
		To:        to,
		Amount:    amount,
		Timestamp: s.clock.Now(),
	}

	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		logger.Error(errors.New("failed to publish custody event"),
			zap.Error(err),
			zap.String("eventType", string(eventType)),
			zap.String("assetRef", ref.String()))
	}
}
