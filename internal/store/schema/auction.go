package schema

import "time"

// Auction represents the auctions table - time-boxed ascending-bid sales.
// While CurrentBid is zero the HighestBidder equals the Seller; once a bid is
// accepted the HighestBidder is always a distinct principal. Terminal records
// are kept; uniqueness of the active auction per asset is enforced through the
// asset_locks table.
type Auction struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetRef is the canonical reference of the auctioned asset
	AssetRef string `gorm:"column:asset_ref;not null;type:text;index:idx_auctions_asset_ref"`
	// Seller is the principal that created the auction
	Seller string `gorm:"column:seller;not null;type:text"`
	// StartingPrice is the minimum acceptable opening bid threshold
	StartingPrice int64 `gorm:"column:starting_price;not null"`
	// CurrentBid is the highest accepted bid so far (0 before the first bid)
	CurrentBid int64 `gorm:"column:current_bid;not null;default:0"`
	// HighestBidder is the principal holding the current bid (seller until the first bid)
	HighestBidder string `gorm:"column:highest_bidder;not null;type:text"`
	// StartTime is when the auction opened
	StartTime time.Time `gorm:"column:start_time;not null;type:timestamptz"`
	// EndTime is StartTime plus the configured duration
	EndTime time.Time `gorm:"column:end_time;not null;type:timestamptz;index:idx_auctions_end_time"`
	// Active indicates whether the auction still accepts bids or settlement
	Active bool `gorm:"column:active;not null;default:true"`
	// CreatedAt is the timestamp when the auction was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last state change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Bids []Bid `gorm:"foreignKey:AuctionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Auction model
func (Auction) TableName() string {
	return "auctions"
}
