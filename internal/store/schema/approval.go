package schema

import "time"

// Approval represents the approvals table - at most one outstanding transfer
// delegate per asset. Cleared on every ownership change.
type Approval struct {
	// AssetID references the asset the approval is granted for
	AssetID uint64 `gorm:"column:asset_id;primaryKey"`
	// Delegate is the principal allowed to transfer the asset on the owner's behalf
	Delegate string `gorm:"column:delegate;not null;type:text"`
	// GrantedBy is the owner who granted the approval
	GrantedBy string `gorm:"column:granted_by;not null;type:text"`
	// CreatedAt is the timestamp when the approval was granted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the approval was last overwritten
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Approval model
func (Approval) TableName() string {
	return "approvals"
}
