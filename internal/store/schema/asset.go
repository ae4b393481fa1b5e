package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Asset represents the assets table - the primary entity for tracked cultural
// assets. Exactly one owner at any time; token numbers are never reused and
// assets are never deleted.
type Asset struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetRef is the canonical asset reference in format: registryID:tokenID
	AssetRef string `gorm:"column:asset_ref;not null;uniqueIndex;type:text"`
	// RegistryID identifies the registry (asset contract) the token belongs to
	RegistryID string `gorm:"column:registry_id;not null;type:text;uniqueIndex:uq_assets_registry_token,priority:1"`
	// TokenNumber is the token id within the registry
	TokenNumber uint64 `gorm:"column:token_number;not null;uniqueIndex:uq_assets_registry_token,priority:2"`
	// Owner is the current owner principal
	Owner string `gorm:"column:owner;not null;type:text;index"`
	// Metadata is the immutable descriptive record captured at mint time
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	// CreatedAt is the timestamp when the asset was minted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last ownership change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Provenance []ProvenanceRecord `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
