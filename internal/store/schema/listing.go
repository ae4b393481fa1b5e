package schema

import "time"

// Listing represents the listings table - fixed-price sale offers. Terminal
// records (sold/cancelled) are kept for audit; at most one active listing per
// asset is enforced through the asset_locks table, so re-listing a previously
// sold or cancelled asset creates a fresh row.
type Listing struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetRef is the canonical reference of the listed asset
	AssetRef string `gorm:"column:asset_ref;not null;type:text;index:idx_listings_asset_ref"`
	// Seller is the principal that created the listing
	Seller string `gorm:"column:seller;not null;type:text"`
	// Price is the asking price in the smallest currency unit
	Price int64 `gorm:"column:price;not null"`
	// Active indicates whether the listing can still be bought or cancelled
	Active bool `gorm:"column:active;not null;default:true"`
	// CreatedAt is the timestamp when the listing was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last state change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}
