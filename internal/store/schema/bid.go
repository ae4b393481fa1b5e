package schema

import "time"

// Bid represents the bids table - the latest accepted bid per bidder per
// auction, overwritten on repeat bidding. This is not a full bid history.
type Bid struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AuctionID references the auction this bid belongs to
	AuctionID uint64 `gorm:"column:auction_id;not null;uniqueIndex:uq_bids_auction_bidder,priority:1"`
	// Bidder is the principal that placed the bid
	Bidder string `gorm:"column:bidder;not null;type:text;uniqueIndex:uq_bids_auction_bidder,priority:2"`
	// Amount is the bid amount in the smallest currency unit
	Amount int64 `gorm:"column:amount;not null"`
	// Timestamp is the ledger time the bid was accepted
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this record was first created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last overwritten
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Bid model
func (Bid) TableName() string {
	return "bids"
}
