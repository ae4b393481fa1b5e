package store

import (
	"context"
	"time"

	"github.com/perma-museum/custodian/internal/store/schema"
)

// Store defines the interface for database operations. Mutations performed by
// one public operation must run inside a single Atomic call so a failure
// leaves no partial state.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Atomic runs fn against a transactional view of the store. The whole
	// call commits or rolls back as one unit.
	Atomic(ctx context.Context, fn func(tx Store) error) error

	// GetSetting retrieves an instance setting; found is false when the key is absent
	GetSetting(ctx context.Context, key string) (value string, found bool, err error)
	// SetSetting stores an instance setting, overwriting any prior value
	SetSetting(ctx context.Context, key string, value string) error
	// IncrSetting atomically adds delta to a numeric setting and returns the new value.
	// An absent key is treated as zero.
	IncrSetting(ctx context.Context, key string, delta int64) (int64, error)

	// CreateAsset persists an asset together with its genesis provenance records
	CreateAsset(ctx context.Context, asset *schema.Asset, provenance []schema.ProvenanceRecord) error
	// GetAsset retrieves an asset by its canonical reference (nil when absent)
	GetAsset(ctx context.Context, assetRef string) (*schema.Asset, error)
	// UpdateAssetOwner sets the current owner of an asset
	UpdateAssetOwner(ctx context.Context, assetID uint64, owner string) error
	// AppendProvenance appends one record to an asset's provenance chain,
	// assigning the next sequence number
	AppendProvenance(ctx context.Context, record *schema.ProvenanceRecord) error
	// ListProvenance retrieves an asset's provenance chain in insertion order
	ListProvenance(ctx context.Context, assetID uint64) ([]schema.ProvenanceRecord, error)

	// GetApproval retrieves the outstanding approval for an asset (nil when absent)
	GetApproval(ctx context.Context, assetID uint64) (*schema.Approval, error)
	// UpsertApproval stores the single outstanding delegate for an asset
	UpsertApproval(ctx context.Context, approval *schema.Approval) error
	// DeleteApproval removes any outstanding approval for an asset
	DeleteApproval(ctx context.Context, assetID uint64) error

	// CreateListing persists a new active listing
	CreateListing(ctx context.Context, listing *schema.Listing) error
	// GetListing retrieves a listing by id (nil when absent)
	GetListing(ctx context.Context, id uint64) (*schema.Listing, error)
	// GetLatestListing retrieves the most recent listing record for an asset
	// regardless of its active flag (nil when none exists)
	GetLatestListing(ctx context.Context, assetRef string) (*schema.Listing, error)
	// DeactivateListing marks a listing terminal
	DeactivateListing(ctx context.Context, id uint64) error

	// CreateAuction persists a new active auction
	CreateAuction(ctx context.Context, auction *schema.Auction) error
	// GetAuction retrieves an auction by id (nil when absent)
	GetAuction(ctx context.Context, id uint64) (*schema.Auction, error)
	// GetLatestAuction retrieves the most recent auction record for an asset
	// regardless of its active flag (nil when none exists)
	GetLatestAuction(ctx context.Context, assetRef string) (*schema.Auction, error)
	// UpdateAuctionBid sets the current bid and highest bidder of an auction
	UpdateAuctionBid(ctx context.Context, id uint64, amount int64, bidder string) error
	// DeactivateAuction marks an auction terminal
	DeactivateAuction(ctx context.Context, id uint64) error
	// ListExpiredAuctions retrieves active auctions whose end time has passed
	ListExpiredAuctions(ctx context.Context, now time.Time, limit int) ([]schema.Auction, error)

	// UpsertBid stores the latest bid for a bidder on an auction
	UpsertBid(ctx context.Context, bid *schema.Bid) error
	// GetBid retrieves a bidder's latest bid on an auction (nil when absent)
	GetBid(ctx context.Context, auctionID uint64, bidder string) (*schema.Bid, error)

	// AcquireAssetLock inserts the per-asset lock row. Fails when either
	// exchange track already holds the asset.
	AcquireAssetLock(ctx context.Context, lock *schema.AssetLock) error
	// GetAssetLock retrieves the lock row for an asset (nil when unlocked)
	GetAssetLock(ctx context.Context, assetRef string) (*schema.AssetLock, error)
	// ReleaseAssetLock removes the lock row for an asset
	ReleaseAssetLock(ctx context.Context, assetRef string) error
}
