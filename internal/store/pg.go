package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/perma-museum/custodian/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the database schema for all custody and exchange tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.KeyValueStore{},
		&schema.Asset{},
		&schema.ProvenanceRecord{},
		&schema.Approval{},
		&schema.Listing{},
		&schema.Auction{},
		&schema.Bid{},
		&schema.AssetLock{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// database/sql treats MaxIdleConns above MaxOpenConns as MaxOpenConns anyway
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// Atomic runs fn inside a database transaction
func (s *pgStore) Atomic(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// GetSetting retrieves an instance setting
func (s *pgStore) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return kv.Value, true, nil
}

// SetSetting stores an instance setting, overwriting any prior value
func (s *pgStore) SetSetting(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}

// IncrSetting atomically adds delta to a numeric setting and returns the new value
func (s *pgStore) IncrSetting(ctx context.Context, key string, delta int64) (int64, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", key).
		First(&kv).Error
	current := int64(0)
	switch {
	case err == nil:
		current, err = strconv.ParseInt(kv.Value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("setting %q is not numeric: %w", key, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Absent counter starts at zero
	default:
		return 0, fmt.Errorf("failed to read setting %q: %w", key, err)
	}

	next := current + delta
	if err := s.SetSetting(ctx, key, strconv.FormatInt(next, 10)); err != nil {
		return 0, err
	}
	return next, nil
}

// CreateAsset persists an asset together with its genesis provenance records
func (s *pgStore) CreateAsset(ctx context.Context, asset *schema.Asset, provenance []schema.ProvenanceRecord) error {
	if err := s.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	for i := range provenance {
		provenance[i].AssetID = asset.ID
		provenance[i].Seq = uint64(i + 1)
	}
	if len(provenance) > 0 {
		if err := s.db.WithContext(ctx).Create(&provenance).Error; err != nil {
			return fmt.Errorf("failed to create genesis provenance: %w", err)
		}
	}

	return nil
}

// GetAsset retrieves an asset by its canonical reference
func (s *pgStore) GetAsset(ctx context.Context, assetRef string) (*schema.Asset, error) {
	var asset schema.Asset
	err := s.db.WithContext(ctx).Where("asset_ref = ?", assetRef).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

// UpdateAssetOwner sets the current owner of an asset
func (s *pgStore) UpdateAssetOwner(ctx context.Context, assetID uint64, owner string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Asset{}).
		Where("id = ?", assetID).
		Updates(map[string]interface{}{"owner": owner, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return fmt.Errorf("failed to update asset owner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("asset %d not found", assetID)
	}
	return nil
}

// AppendProvenance appends one record to an asset's provenance chain
func (s *pgStore) AppendProvenance(ctx context.Context, record *schema.ProvenanceRecord) error {
	var maxSeq uint64
	err := s.db.WithContext(ctx).
		Model(&schema.ProvenanceRecord{}).
		Where("asset_id = ?", record.AssetID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error
	if err != nil {
		return fmt.Errorf("failed to get provenance length: %w", err)
	}

	record.Seq = maxSeq + 1
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to append provenance: %w", err)
	}
	return nil
}

// ListProvenance retrieves an asset's provenance chain in insertion order
func (s *pgStore) ListProvenance(ctx context.Context, assetID uint64) ([]schema.ProvenanceRecord, error) {
	var records []schema.ProvenanceRecord
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("seq ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list provenance: %w", err)
	}
	return records, nil
}

// GetApproval retrieves the outstanding approval for an asset
func (s *pgStore) GetApproval(ctx context.Context, assetID uint64) (*schema.Approval, error) {
	var approval schema.Approval
	err := s.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&approval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}
	return &approval, nil
}

// UpsertApproval stores the single outstanding delegate for an asset
func (s *pgStore) UpsertApproval(ctx context.Context, approval *schema.Approval) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"delegate", "granted_by", "updated_at"}),
		}).
		Create(approval).Error
	if err != nil {
		return fmt.Errorf("failed to upsert approval: %w", err)
	}
	return nil
}

// DeleteApproval removes any outstanding approval for an asset
func (s *pgStore) DeleteApproval(ctx context.Context, assetID uint64) error {
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Delete(&schema.Approval{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete approval: %w", err)
	}
	return nil
}

// CreateListing persists a new active listing
func (s *pgStore) CreateListing(ctx context.Context, listing *schema.Listing) error {
	if err := s.db.WithContext(ctx).Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// GetListing retrieves a listing by id
func (s *pgStore) GetListing(ctx context.Context, id uint64) (*schema.Listing, error) {
	var listing schema.Listing
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// GetLatestListing retrieves the most recent listing record for an asset
func (s *pgStore) GetLatestListing(ctx context.Context, assetRef string) (*schema.Listing, error) {
	var listing schema.Listing
	err := s.db.WithContext(ctx).
		Where("asset_ref = ?", assetRef).
		Order("id DESC").
		First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest listing: %w", err)
	}
	return &listing, nil
}

// DeactivateListing marks a listing terminal
func (s *pgStore) DeactivateListing(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Listing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"active": false, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("listing %d not found", id)
	}
	return nil
}

// CreateAuction persists a new active auction
func (s *pgStore) CreateAuction(ctx context.Context, auction *schema.Auction) error {
	if err := s.db.WithContext(ctx).Create(auction).Error; err != nil {
		return fmt.Errorf("failed to create auction: %w", err)
	}
	return nil
}

// GetAuction retrieves an auction by id
func (s *pgStore) GetAuction(ctx context.Context, id uint64) (*schema.Auction, error) {
	var auction schema.Auction
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&auction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	return &auction, nil
}

// GetLatestAuction retrieves the most recent auction record for an asset
func (s *pgStore) GetLatestAuction(ctx context.Context, assetRef string) (*schema.Auction, error) {
	var auction schema.Auction
	err := s.db.WithContext(ctx).
		Where("asset_ref = ?", assetRef).
		Order("id DESC").
		First(&auction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest auction: %w", err)
	}
	return &auction, nil
}

// UpdateAuctionBid sets the current bid and highest bidder of an auction
func (s *pgStore) UpdateAuctionBid(ctx context.Context, id uint64, amount int64, bidder string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Auction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_bid":    amount,
			"highest_bidder": bidder,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update auction bid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("auction %d not found", id)
	}
	return nil
}

// DeactivateAuction marks an auction terminal
func (s *pgStore) DeactivateAuction(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Auction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"active": false, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate auction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("auction %d not found", id)
	}
	return nil
}

// ListExpiredAuctions retrieves active auctions whose end time has passed
func (s *pgStore) ListExpiredAuctions(ctx context.Context, now time.Time, limit int) ([]schema.Auction, error) {
	var auctions []schema.Auction
	query := s.db.WithContext(ctx).
		Where("active = ? AND end_time <= ?", true, now).
		Order("end_time ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("failed to list expired auctions: %w", err)
	}
	return auctions, nil
}

// UpsertBid stores the latest bid for a bidder on an auction
func (s *pgStore) UpsertBid(ctx context.Context, bid *schema.Bid) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "auction_id"}, {Name: "bidder"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "timestamp", "updated_at"}),
		}).
		Create(bid).Error
	if err != nil {
		return fmt.Errorf("failed to upsert bid: %w", err)
	}
	return nil
}

// GetBid retrieves a bidder's latest bid on an auction
func (s *pgStore) GetBid(ctx context.Context, auctionID uint64, bidder string) (*schema.Bid, error) {
	var bid schema.Bid
	err := s.db.WithContext(ctx).
		Where("auction_id = ? AND bidder = ?", auctionID, bidder).
		First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	return &bid, nil
}

// AcquireAssetLock inserts the per-asset lock row
func (s *pgStore) AcquireAssetLock(ctx context.Context, lock *schema.AssetLock) error {
	if err := s.db.WithContext(ctx).Create(lock).Error; err != nil {
		return fmt.Errorf("failed to acquire asset lock: %w", err)
	}
	return nil
}

// GetAssetLock retrieves the lock row for an asset
func (s *pgStore) GetAssetLock(ctx context.Context, assetRef string) (*schema.AssetLock, error) {
	var lock schema.AssetLock
	err := s.db.WithContext(ctx).Where("asset_ref = ?", assetRef).First(&lock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset lock: %w", err)
	}
	return &lock, nil
}

// ReleaseAssetLock removes the lock row for an asset
func (s *pgStore) ReleaseAssetLock(ctx context.Context, assetRef string) error {
	err := s.db.WithContext(ctx).
		Where("asset_ref = ?", assetRef).
		Delete(&schema.AssetLock{}).Error
	if err != nil {
		return fmt.Errorf("failed to release asset lock: %w", err)
	}
	return nil
}
