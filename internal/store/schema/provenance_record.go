package schema

import (
	"time"

	"github.com/perma-museum/custodian/internal/domain"
)

// ProvenanceRecord represents the provenance_records table - the append-only
// ownership history of an asset. Seq is the per-asset insertion ordinal;
// records are never updated or deleted.
type ProvenanceRecord struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetID references the asset this record belongs to
	AssetID uint64 `gorm:"column:asset_id;not null;uniqueIndex:uq_provenance_asset_seq,priority:1"`
	// Seq is the 1-based position within the asset's provenance chain
	Seq uint64 `gorm:"column:seq;not null;uniqueIndex:uq_provenance_asset_seq,priority:2"`
	// Kind identifies the transaction kind (transfer, approved_transfer, sale, auction_settlement)
	Kind domain.ProvenanceKind `gorm:"column:kind;not null;type:text"`
	// FromPrincipal is the previous owner
	FromPrincipal string `gorm:"column:from_principal;not null;type:text"`
	// ToPrincipal is the new owner
	ToPrincipal string `gorm:"column:to_principal;not null;type:text"`
	// Note is a free-text annotation supplied by the operation
	Note string `gorm:"column:note;type:text"`
	// Timestamp is the ledger time of the ownership change
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this record was persisted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ProvenanceRecord model
func (ProvenanceRecord) TableName() string {
	return "provenance_records"
}
