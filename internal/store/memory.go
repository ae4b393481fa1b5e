package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/perma-museum/custodian/internal/store/schema"
)

// memoryState holds the whole in-memory dataset. Cloned wholesale for
// transactions so a failed Atomic call leaves the committed state untouched.
type memoryState struct {
	settings      map[string]string
	assetsByRef   map[string]uint64
	assets        map[uint64]schema.Asset
	provenance    map[uint64][]schema.ProvenanceRecord
	approvals     map[uint64]schema.Approval
	listings      map[uint64]schema.Listing
	auctions      map[uint64]schema.Auction
	bids          map[string]schema.Bid
	locks         map[string]schema.AssetLock
	nextAssetID   uint64
	nextListingID uint64
	nextAuctionID uint64
	nextBidID     uint64
}

func newMemoryState() *memoryState {
	return &memoryState{
		settings:      make(map[string]string),
		assetsByRef:   make(map[string]uint64),
		assets:        make(map[uint64]schema.Asset),
		provenance:    make(map[uint64][]schema.ProvenanceRecord),
		approvals:     make(map[uint64]schema.Approval),
		listings:      make(map[uint64]schema.Listing),
		auctions:      make(map[uint64]schema.Auction),
		bids:          make(map[string]schema.Bid),
		locks:         make(map[string]schema.AssetLock),
		nextAssetID:   1,
		nextListingID: 1,
		nextAuctionID: 1,
		nextBidID:     1,
	}
}

func (st *memoryState) clone() *memoryState {
	c := newMemoryState()
	for k, v := range st.settings {
		c.settings[k] = v
	}
	for k, v := range st.assetsByRef {
		c.assetsByRef[k] = v
	}
	for k, v := range st.assets {
		c.assets[k] = v
	}
	for k, v := range st.provenance {
		records := make([]schema.ProvenanceRecord, len(v))
		copy(records, v)
		c.provenance[k] = records
	}
	for k, v := range st.approvals {
		c.approvals[k] = v
	}
	for k, v := range st.listings {
		c.listings[k] = v
	}
	for k, v := range st.auctions {
		c.auctions[k] = v
	}
	for k, v := range st.bids {
		c.bids[k] = v
	}
	for k, v := range st.locks {
		c.locks[k] = v
	}
	c.nextAssetID = st.nextAssetID
	c.nextListingID = st.nextListingID
	c.nextAuctionID = st.nextAuctionID
	c.nextBidID = st.nextBidID
	return c
}

// memoryStore is an in-memory Store implementation used by unit tests and the
// benchmark tool. A single mutex serializes operations, mirroring the total
// order the hosting substrate guarantees.
type memoryStore struct {
	mu    sync.Mutex
	state *memoryState
	inTx  bool
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() Store {
	return &memoryStore{state: newMemoryState()}
}

// Atomic runs fn against a cloned state and commits the clone on success
func (s *memoryStore) Atomic(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		// Nested Atomic joins the enclosing transaction
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryStore{state: s.state.clone(), inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

func (s *memoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func bidKey(auctionID uint64, bidder string) string {
	return fmt.Sprintf("%d:%s", auctionID, bidder)
}

// GetSetting retrieves an instance setting
func (s *memoryStore) GetSetting(ctx context.Context, key string) (string, bool, error) {
	defer s.lock()()
	value, found := s.state.settings[key]
	return value, found, nil
}

// SetSetting stores an instance setting
func (s *memoryStore) SetSetting(ctx context.Context, key string, value string) error {
	defer s.lock()()
	s.state.settings[key] = value
	return nil
}

// IncrSetting atomically adds delta to a numeric setting
func (s *memoryStore) IncrSetting(ctx context.Context, key string, delta int64) (int64, error) {
	defer s.lock()()
	current := int64(0)
	if raw, found := s.state.settings[key]; found {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("setting %q is not numeric: %w", key, err)
		}
		current = parsed
	}
	next := current + delta
	s.state.settings[key] = strconv.FormatInt(next, 10)
	return next, nil
}

// CreateAsset persists an asset together with its genesis provenance records
func (s *memoryStore) CreateAsset(ctx context.Context, asset *schema.Asset, provenance []schema.ProvenanceRecord) error {
	defer s.lock()()
	if _, exists := s.state.assetsByRef[asset.AssetRef]; exists {
		return fmt.Errorf("failed to create asset: duplicate asset ref %q", asset.AssetRef)
	}

	asset.ID = s.state.nextAssetID
	s.state.nextAssetID++
	now := time.Now().UTC()
	asset.CreatedAt = now
	asset.UpdatedAt = now
	s.state.assets[asset.ID] = *asset
	s.state.assetsByRef[asset.AssetRef] = asset.ID

	records := make([]schema.ProvenanceRecord, len(provenance))
	copy(records, provenance)
	for i := range records {
		records[i].AssetID = asset.ID
		records[i].Seq = uint64(i + 1)
	}
	s.state.provenance[asset.ID] = records
	return nil
}

// GetAsset retrieves an asset by its canonical reference
func (s *memoryStore) GetAsset(ctx context.Context, assetRef string) (*schema.Asset, error) {
	defer s.lock()()
	id, found := s.state.assetsByRef[assetRef]
	if !found {
		return nil, nil
	}
	asset := s.state.assets[id]
	return &asset, nil
}

// UpdateAssetOwner sets the current owner of an asset
func (s *memoryStore) UpdateAssetOwner(ctx context.Context, assetID uint64, owner string) error {
	defer s.lock()()
	asset, found := s.state.assets[assetID]
	if !found {
		return fmt.Errorf("asset %d not found", assetID)
	}
	asset.Owner = owner
	asset.UpdatedAt = time.Now().UTC()
	s.state.assets[assetID] = asset
	return nil
}

// AppendProvenance appends one record to an asset's provenance chain
func (s *memoryStore) AppendProvenance(ctx context.Context, record *schema.ProvenanceRecord) error {
	defer s.lock()()
	chain := s.state.provenance[record.AssetID]
	record.Seq = uint64(len(chain) + 1)
	s.state.provenance[record.AssetID] = append(chain, *record)
	return nil
}

// ListProvenance retrieves an asset's provenance chain in insertion order
func (s *memoryStore) ListProvenance(ctx context.Context, assetID uint64) ([]schema.ProvenanceRecord, error) {
	defer s.lock()()
	chain := s.state.provenance[assetID]
	records := make([]schema.ProvenanceRecord, len(chain))
	copy(records, chain)
	return records, nil
}

// GetApproval retrieves the outstanding approval for an asset
func (s *memoryStore) GetApproval(ctx context.Context, assetID uint64) (*schema.Approval, error) {
	defer s.lock()()
	approval, found := s.state.approvals[assetID]
	if !found {
		return nil, nil
	}
	return &approval, nil
}

// UpsertApproval stores the single outstanding delegate for an asset
func (s *memoryStore) UpsertApproval(ctx context.Context, approval *schema.Approval) error {
	defer s.lock()()
	now := time.Now().UTC()
	if existing, found := s.state.approvals[approval.AssetID]; found {
		approval.CreatedAt = existing.CreatedAt
	} else {
		approval.CreatedAt = now
	}
	approval.UpdatedAt = now
	s.state.approvals[approval.AssetID] = *approval
	return nil
}

// DeleteApproval removes any outstanding approval for an asset
func (s *memoryStore) DeleteApproval(ctx context.Context, assetID uint64) error {
	defer s.lock()()
	delete(s.state.approvals, assetID)
	return nil
}

// CreateListing persists a new active listing
func (s *memoryStore) CreateListing(ctx context.Context, listing *schema.Listing) error {
	defer s.lock()()
	listing.ID = s.state.nextListingID
	s.state.nextListingID++
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	s.state.listings[listing.ID] = *listing
	return nil
}

// GetListing retrieves a listing by id
func (s *memoryStore) GetListing(ctx context.Context, id uint64) (*schema.Listing, error) {
	defer s.lock()()
	listing, found := s.state.listings[id]
	if !found {
		return nil, nil
	}
	return &listing, nil
}

// GetLatestListing retrieves the most recent listing record for an asset
func (s *memoryStore) GetLatestListing(ctx context.Context, assetRef string) (*schema.Listing, error) {
	defer s.lock()()
	var latest *schema.Listing
	for id := range s.state.listings {
		listing := s.state.listings[id]
		if listing.AssetRef != assetRef {
			continue
		}
		if latest == nil || listing.ID > latest.ID {
			l := listing
			latest = &l
		}
	}
	return latest, nil
}

// DeactivateListing marks a listing terminal
func (s *memoryStore) DeactivateListing(ctx context.Context, id uint64) error {
	defer s.lock()()
	listing, found := s.state.listings[id]
	if !found {
		return fmt.Errorf("listing %d not found", id)
	}
	listing.Active = false
	listing.UpdatedAt = time.Now().UTC()
	s.state.listings[id] = listing
	return nil
}

// CreateAuction persists a new active auction
func (s *memoryStore) CreateAuction(ctx context.Context, auction *schema.Auction) error {
	defer s.lock()()
	auction.ID = s.state.nextAuctionID
	s.state.nextAuctionID++
	now := time.Now().UTC()
	auction.CreatedAt = now
	auction.UpdatedAt = now
	s.state.auctions[auction.ID] = *auction
	return nil
}

// GetAuction retrieves an auction by id
func (s *memoryStore) GetAuction(ctx context.Context, id uint64) (*schema.Auction, error) {
	defer s.lock()()
	auction, found := s.state.auctions[id]
	if !found {
		return nil, nil
	}
	return &auction, nil
}

// GetLatestAuction retrieves the most recent auction record for an asset
func (s *memoryStore) GetLatestAuction(ctx context.Context, assetRef string) (*schema.Auction, error) {
	defer s.lock()()
	var latest *schema.Auction
	for id := range s.state.auctions {
		auction := s.state.auctions[id]
		if auction.AssetRef != assetRef {
			continue
		}
		if latest == nil || auction.ID > latest.ID {
			a := auction
			latest = &a
		}
	}
	return latest, nil
}

// UpdateAuctionBid sets the current bid and highest bidder of an auction
func (s *memoryStore) UpdateAuctionBid(ctx context.Context, id uint64, amount int64, bidder string) error {
	defer s.lock()()
	auction, found := s.state.auctions[id]
	if !found {
		return fmt.Errorf("auction %d not found", id)
	}
	auction.CurrentBid = amount
	auction.HighestBidder = bidder
	auction.UpdatedAt = time.Now().UTC()
	s.state.auctions[id] = auction
	return nil
}

// DeactivateAuction marks an auction terminal
func (s *memoryStore) DeactivateAuction(ctx context.Context, id uint64) error {
	defer s.lock()()
	auction, found := s.state.auctions[id]
	if !found {
		return fmt.Errorf("auction %d not found", id)
	}
	auction.Active = false
	auction.UpdatedAt = time.Now().UTC()
	s.state.auctions[id] = auction
	return nil
}

// ListExpiredAuctions retrieves active auctions whose end time has passed
func (s *memoryStore) ListExpiredAuctions(ctx context.Context, now time.Time, limit int) ([]schema.Auction, error) {
	defer s.lock()()
	var expired []schema.Auction
	for id := range s.state.auctions {
		auction := s.state.auctions[id]
		if auction.Active && !auction.EndTime.After(now) {
			expired = append(expired, auction)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].EndTime.Before(expired[j].EndTime)
	})
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}
	return expired, nil
}

// UpsertBid stores the latest bid for a bidder on an auction
func (s *memoryStore) UpsertBid(ctx context.Context, bid *schema.Bid) error {
	defer s.lock()()
	key := bidKey(bid.AuctionID, bid.Bidder)
	now := time.Now().UTC()
	if existing, found := s.state.bids[key]; found {
		bid.ID = existing.ID
		bid.CreatedAt = existing.CreatedAt
	} else {
		bid.ID = s.state.nextBidID
		s.state.nextBidID++
		bid.CreatedAt = now
	}
	bid.UpdatedAt = now
	s.state.bids[key] = *bid
	return nil
}

// GetBid retrieves a bidder's latest bid on an auction
func (s *memoryStore) GetBid(ctx context.Context, auctionID uint64, bidder string) (*schema.Bid, error) {
	defer s.lock()()
	bid, found := s.state.bids[bidKey(auctionID, bidder)]
	if !found {
		return nil, nil
	}
	return &bid, nil
}

// AcquireAssetLock inserts the per-asset lock row
func (s *memoryStore) AcquireAssetLock(ctx context.Context, lock *schema.AssetLock) error {
	defer s.lock()()
	if _, held := s.state.locks[lock.AssetRef]; held {
		return fmt.Errorf("failed to acquire asset lock: %q already locked", lock.AssetRef)
	}
	lock.CreatedAt = time.Now().UTC()
	s.state.locks[lock.AssetRef] = *lock
	return nil
}

// GetAssetLock retrieves the lock row for an asset
func (s *memoryStore) GetAssetLock(ctx context.Context, assetRef string) (*schema.AssetLock, error) {
	defer s.lock()()
	lock, found := s.state.locks[assetRef]
	if !found {
		return nil, nil
	}
	return &lock, nil
}

// ReleaseAssetLock removes the lock row for an asset
func (s *memoryStore) ReleaseAssetLock(ctx context.Context, assetRef string) error {
	defer s.lock()()
	delete(s.state.locks, assetRef)
	return nil
}
