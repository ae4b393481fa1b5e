package schema

import "time"

// LockTrack identifies which exchange track holds an asset lock
type LockTrack string

const (
	// LockTrackListing marks a lock held by an active fixed-price listing
	LockTrackListing LockTrack = "listing"
	// LockTrackAuction marks a lock held by an active auction
	LockTrackAuction LockTrack = "auction"
)

// AssetLock represents the asset_locks table - one row per asset while an
// active listing or auction exists. The unique asset_ref key is what prevents
// the two exchange tracks from holding the same asset simultaneously.
type AssetLock struct {
	// AssetRef is the canonical reference of the locked asset
	AssetRef string `gorm:"column:asset_ref;primaryKey;type:text"`
	// Track identifies whether a listing or an auction holds the lock
	Track LockTrack `gorm:"column:track;not null;type:text"`
	// HolderID is the id of the listing or auction row holding the lock
	HolderID uint64 `gorm:"column:holder_id;not null"`
	// CreatedAt is the timestamp when the lock was acquired
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AssetLock model
func (AssetLock) TableName() string {
	return "asset_locks"
}
