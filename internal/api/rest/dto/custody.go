package dto

import (
	"time"

	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/providers/museum"
	"github.com/perma-museum/custodian/internal/providers/reputation"
	"github.com/perma-museum/custodian/internal/store/schema"
)

// InitializeRegistryRequest sets up the registry instance
type InitializeRegistryRequest struct {
	Name   string `json:"name" binding:"required"`
	Symbol string `json:"symbol" binding:"required"`
}

// TransferAdminRequest hands administration to a new principal
type TransferAdminRequest struct {
	NewAdmin string `json:"new_admin" binding:"required"`
}

// MintRequest registers a new asset. Provenance carries the piece's
// pre-custody history and may be omitted for a freshly created asset.
type MintRequest struct {
	Ref        string                    `json:"ref" binding:"required"`
	Owner      string                    `json:"owner" binding:"required"`
	Metadata   domain.AssetMetadata      `json:"metadata" binding:"required"`
	Provenance []domain.ProvenanceRecord `json:"provenance"`
}

// TransferRequest moves custody to a new owner
type TransferRequest struct {
	To   string `json:"to" binding:"required"`
	Note string `json:"note"`
}

// ApproveRequest grants a transfer delegate
type ApproveRequest struct {
	Delegate string `json:"delegate" binding:"required"`
}

// TransferFromRequest executes a delegated transfer
type TransferFromRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
	Note string `json:"note"`
}

// InitializeExchangeRequest sets up the exchange instance
type InitializeExchangeRequest struct {
	FeeBps int64 `json:"fee_bps"`
}

// ListRequest creates a fixed-price listing
type ListRequest struct {
	Price int64 `json:"price" binding:"required"`
}

// CreateAuctionRequest opens an ascending auction
type CreateAuctionRequest struct {
	StartingPrice   int64 `json:"starting_price" binding:"required"`
	DurationSeconds int64 `json:"duration_seconds" binding:"required"`
}

// BidRequest places a bid on an active auction
type BidRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// RegistryResponse describes the registry instance
type RegistryResponse struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Admin       string `json:"admin"`
	TotalSupply int64  `json:"total_supply"`
}

// AssetResponse describes a registered asset
type AssetResponse struct {
	Ref      string               `json:"ref"`
	Owner    string               `json:"owner"`
	Metadata domain.AssetMetadata `json:"metadata"`
}

// ProvenanceResponse carries an asset's ownership history
type ProvenanceResponse struct {
	Ref     string                   `json:"ref"`
	Records []domain.ProvenanceRecord `json:"records"`
}

// ExchangeResponse describes the exchange instance
type ExchangeResponse struct {
	FeeBps        int64 `json:"fee_bps"`
	TotalListings int64 `json:"total_listings"`
	TotalAuctions int64 `json:"total_auctions"`
}

// ListingResponse describes a listing record
type ListingResponse struct {
	Ref       string    `json:"ref"`
	Seller    string    `json:"seller"`
	Price     int64     `json:"price"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewListingResponse maps a listing row to its API shape
func NewListingResponse(listing *schema.Listing) ListingResponse {
	return ListingResponse{
		Ref:       listing.AssetRef,
		Seller:    listing.Seller,
		Price:     listing.Price,
		Active:    listing.Active,
		CreatedAt: listing.CreatedAt,
	}
}

// AuctionResponse describes an auction record
type AuctionResponse struct {
	Ref           string    `json:"ref"`
	Seller        string    `json:"seller"`
	StartingPrice int64     `json:"starting_price"`
	CurrentBid    int64     `json:"current_bid"`
	HighestBidder string    `json:"highest_bidder"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Active        bool      `json:"active"`
}

// NewAuctionResponse maps an auction row to its API shape
func NewAuctionResponse(auction *schema.Auction) AuctionResponse {
	return AuctionResponse{
		Ref:           auction.AssetRef,
		Seller:        auction.Seller,
		StartingPrice: auction.StartingPrice,
		CurrentBid:    auction.CurrentBid,
		HighestBidder: auction.HighestBidder,
		StartTime:     auction.StartTime,
		EndTime:       auction.EndTime,
		Active:        auction.Active,
	}
}

// BidResponse describes a bid record
type BidResponse struct {
	Bidder    string    `json:"bidder"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// ProfileResponse combines the external collaborator views of a principal
type ProfileResponse struct {
	Principal string               `json:"principal"`
	Museum    *museum.Profile      `json:"museum,omitempty"`
	Standing  *reputation.Standing `json:"standing,omitempty"`
}
