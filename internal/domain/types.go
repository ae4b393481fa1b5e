package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Principal is a cryptographically provable identity used for authorization
// checks. The value is the subject proven by the authorization oracle
// (the JWT subject claim in this deployment).
type Principal string

// String returns the string representation of the Principal
func (p Principal) String() string {
	return string(p)
}

// Valid checks that the principal is non-empty and has no whitespace
func (p Principal) Valid() bool {
	return p != "" && !strings.ContainsAny(string(p), " \t\n")
}

// AssetRef identifies a tokenized item across registries in the format:
// registryID:tokenID (e.g., "heritage-main:42")
type AssetRef string

var registryIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// NewAssetRef creates a new AssetRef
func NewAssetRef(registryID string, tokenID uint64) AssetRef {
	return AssetRef(fmt.Sprintf("%s:%d", registryID, tokenID))
}

// String returns the string representation of the AssetRef
func (r AssetRef) String() string {
	return string(r)
}

// Parse splits the AssetRef into registry id and token id
func (r AssetRef) Parse() (string, uint64, error) {
	idx := strings.LastIndex(string(r), ":")
	if idx <= 0 || idx == len(r)-1 {
		return "", 0, fmt.Errorf("malformed asset ref %q", string(r))
	}
	tokenID, err := strconv.ParseUint(string(r)[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed token id in asset ref %q: %w", string(r), err)
	}
	return string(r)[:idx], tokenID, nil
}

// Valid checks if the AssetRef is well-formed
func (r AssetRef) Valid() bool {
	registryID, _, err := r.Parse()
	if err != nil {
		return false
	}
	return registryIDPattern.MatchString(registryID)
}

// AssetMetadata is the descriptive record attached to a cultural asset at mint
// time. It is immutable once minted.
type AssetMetadata struct {
	Title        string    `json:"title"`
	Creator      string    `json:"creator"`
	Period       string    `json:"period"`
	Culture      string    `json:"culture"`
	Material     string    `json:"material"`
	Dimensions   string    `json:"dimensions"`
	Condition    string    `json:"condition"`
	Significance string    `json:"significance"`
	Custodian    Principal `json:"custodian"`
}

// Valid checks the minimal metadata requirements for minting
func (m *AssetMetadata) Valid() bool {
	return m.Title != "" && m.Creator != "" && m.Custodian.Valid()
}

// ProvenanceKind is the transaction kind recorded in a provenance entry
type ProvenanceKind string

const (
	// ProvenanceKindTransfer records a direct owner-initiated transfer
	ProvenanceKindTransfer ProvenanceKind = "transfer"
	// ProvenanceKindApprovedTransfer records a transfer executed by an approved delegate
	ProvenanceKindApprovedTransfer ProvenanceKind = "approved_transfer"
	// ProvenanceKindSale records a fixed-price sale settlement
	ProvenanceKindSale ProvenanceKind = "sale"
	// ProvenanceKindAuctionSettlement records an auction settlement
	ProvenanceKindAuctionSettlement ProvenanceKind = "auction_settlement"
)

// ValidProvenanceKind checks if a provenance kind is one of the known kinds
func ValidProvenanceKind(kind ProvenanceKind) bool {
	switch kind {
	case ProvenanceKindTransfer, ProvenanceKindApprovedTransfer,
		ProvenanceKindSale, ProvenanceKindAuctionSettlement:
		return true
	}
	return false
}

// ProvenanceRecord is one immutable entry of an asset's ownership history.
// Records are append-only; insertion order is the total order.
type ProvenanceRecord struct {
	Timestamp time.Time      `json:"timestamp"`
	From      Principal      `json:"from"`
	To        Principal      `json:"to"`
	Kind      ProvenanceKind `json:"kind"`
	Note      string         `json:"note"`
}

// EventType represents the type of custody/marketplace event published to NATS
type EventType string

const (
	EventTypeMinted           EventType = "minted"
	EventTypeTransferred      EventType = "transferred"
	EventTypeListed           EventType = "listed"
	EventTypeSold             EventType = "sold"
	EventTypeListingCancelled EventType = "listing_cancelled"
	EventTypeAuctionCreated   EventType = "auction_created"
	EventTypeBidPlaced        EventType = "bid_placed"
	EventTypeAuctionSettled   EventType = "auction_settled"
	EventTypeAuctionClosed    EventType = "auction_closed"
	EventTypeAuctionCancelled EventType = "auction_cancelled"
	EventTypeAdminTransferred EventType = "admin_transferred"
	EventTypeApprovalGranted  EventType = "approval_granted"
)

// CustodyEvent is the normalized event published to the message broker after a
// successful state transition. Amount is zero for non-monetary events.
type CustodyEvent struct {
	EventID   string    `json:"event_id"` // ULID, time-sortable
	EventType EventType `json:"event_type"`
	AssetRef  AssetRef  `json:"asset_ref"`
	From      Principal `json:"from,omitempty"`
	To        Principal `json:"to,omitempty"`
	Amount    int64     `json:"amount,omitempty"` // smallest currency unit
	Timestamp time.Time `json:"timestamp"`
}

// RegistryScoped reports whether the event type concerns the registry itself
// rather than a single asset. Registry-scoped events carry no AssetRef.
func (t EventType) RegistryScoped() bool {
	return t == EventTypeAdminTransferred
}

// Valid checks the event invariants before publishing
func (e *CustodyEvent) Valid() bool {
	if e.EventID == "" {
		return false
	}
	if e.EventType.RegistryScoped() {
		if e.AssetRef != "" {
			return false
		}
	} else if !e.AssetRef.Valid() {
		return false
	}
	if e.Amount < 0 {
		return false
	}
	switch e.EventType {
	case EventTypeMinted, EventTypeTransferred, EventTypeListed, EventTypeSold,
		EventTypeListingCancelled, EventTypeAuctionCreated, EventTypeBidPlaced,
		EventTypeAuctionSettled, EventTypeAuctionClosed, EventTypeAuctionCancelled,
		EventTypeAdminTransferred, EventTypeApprovalGranted:
		return true
	}
	return false
}

// MarketFee computes the marketplace fee for a sale price in basis points.
// feeBps is clamped by validation to [0, 10000] at initialization.
func MarketFee(price int64, feeBps int64) int64 {
	return price * feeBps / 10000
}
