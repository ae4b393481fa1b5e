package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/perma-museum/custodian/internal/api/rest/dto"
	"github.com/perma-museum/custodian/internal/auth"
	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/exchange"
	"github.com/perma-museum/custodian/internal/providers/museum"
	"github.com/perma-museum/custodian/internal/providers/reputation"
	"github.com/perma-museum/custodian/internal/registry"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetRegistry returns the registry instance descriptor
	// GET /api/v1/registry
	GetRegistry(c *gin.Context)

	// InitializeRegistry performs one-time registry setup
	// POST /api/v1/registry/initialize
	InitializeRegistry(c *gin.Context)

	// TransferAdmin hands registry administration to a new principal
	// POST /api/v1/registry/admin
	TransferAdmin(c *gin.Context)

	// Mint registers a new asset
	// POST /api/v1/assets
	Mint(c *gin.Context)

	// GetAsset returns an asset's owner and metadata
	// GET /api/v1/assets/:ref
	GetAsset(c *gin.Context)

	// GetProvenance returns an asset's full ownership history
	// GET /api/v1/assets/:ref/provenance
	GetProvenance(c *gin.Context)

	// Transfer moves custody of an asset to a new owner
	// POST /api/v1/assets/:ref/transfer
	Transfer(c *gin.Context)

	// Approve grants a transfer delegate for an asset
	// POST /api/v1/assets/:ref/approve
	Approve(c *gin.Context)

	// TransferFrom executes a delegated transfer
	// POST /api/v1/assets/:ref/transfer-from
	TransferFrom(c *gin.Context)

	// GetExchange returns the exchange instance descriptor
	// GET /api/v1/exchange
	GetExchange(c *gin.Context)

	// InitializeExchange performs one-time exchange setup
	// POST /api/v1/exchange/initialize
	InitializeExchange(c *gin.Context)

	// CreateListing lists an asset at a fixed price
	// POST /api/v1/assets/:ref/listing
	CreateListing(c *gin.Context)

	// GetListing returns the most recent listing for an asset
	// GET /api/v1/assets/:ref/listing
	GetListing(c *gin.Context)

	// Buy purchases an actively listed asset
	// POST /api/v1/assets/:ref/listing/buy
	Buy(c *gin.Context)

	// CancelListing withdraws an active listing
	// DELETE /api/v1/assets/:ref/listing
	CancelListing(c *gin.Context)

	// CreateAuction opens an ascending auction for an asset
	// POST /api/v1/assets/:ref/auction
	CreateAuction(c *gin.Context)

	// GetAuction returns the most recent auction for an asset
	// GET /api/v1/assets/:ref/auction
	GetAuction(c *gin.Context)

	// PlaceBid places a bid on an active auction
	// POST /api/v1/assets/:ref/auction/bids
	PlaceBid(c *gin.Context)

	// GetHighestBid returns the current highest bid on an auction
	// GET /api/v1/assets/:ref/auction/bids/highest
	GetHighestBid(c *gin.Context)

	// EndAuction settles an auction whose end time has passed
	// POST /api/v1/assets/:ref/auction/end
	EndAuction(c *gin.Context)

	// CancelAuction withdraws an auction that has received no bids
	// DELETE /api/v1/assets/:ref/auction
	CancelAuction(c *gin.Context)

	// GetProfile returns the external collaborator view of a principal
	// GET /api/v1/principals/:principal/profile
	GetProfile(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	registry    *registry.Service
	exchange    *exchange.Service
	museums     museum.Client
	reputations reputation.Client
}

// NewHandler creates a new REST handler. Museum and reputation clients are
// optional; the profile endpoint degrades to an empty profile without them.
func NewHandler(reg *registry.Service, exch *exchange.Service, museums museum.Client, reputations reputation.Client) Handler {
	return &handler{
		registry:    reg,
		exchange:    exch,
		museums:     museums,
		reputations: reputations,
	}
}

// caller returns the proven principal stored by the auth middleware
func (h *handler) caller(c *gin.Context) (domain.Principal, bool) {
	principal, ok := auth.PrincipalFromContext(c.Request.Context())
	if !ok {
		respondWithError(c, http.StatusUnauthorized, errCodeUnauthorized, "No authenticated principal")
		return "", false
	}
	return principal, true
}

// assetRef parses and validates the :ref path parameter
func (h *handler) assetRef(c *gin.Context) (domain.AssetRef, bool) {
	ref := domain.AssetRef(c.Param("ref"))
	if !ref.Valid() {
		respondWithError(c, http.StatusUnprocessableEntity, errCodeValidationFailed, "Malformed asset ref")
		return "", false
	}
	return ref, true
}

func (h *handler) GetRegistry(c *gin.Context) {
	ctx := c.Request.Context()

	name, err := h.registry.Name(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	symbol, err := h.registry.Symbol(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	admin, err := h.registry.Admin(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	supply, err := h.registry.TotalSupply(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RegistryResponse{
		Name:        name,
		Symbol:      symbol,
		Admin:       admin.String(),
		TotalSupply: supply,
	})
}

func (h *handler) InitializeRegistry(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.InitializeRegistryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.registry.Initialize(c.Request.Context(), principal, req.Name, req.Symbol); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"admin": principal.String()})
}

func (h *handler) TransferAdmin(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.TransferAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.registry.TransferAdmin(c.Request.Context(), principal, domain.Principal(req.NewAdmin)); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": req.NewAdmin})
}

func (h *handler) Mint(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	ref := domain.AssetRef(req.Ref)
	if err := h.registry.Mint(c.Request.Context(), principal, domain.Principal(req.Owner), ref, req.Metadata, req.Provenance); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AssetResponse{
		Ref:      ref.String(),
		Owner:    req.Owner,
		Metadata: req.Metadata,
	})
}

func (h *handler) GetAsset(c *gin.Context) {
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	owner, err := h.registry.OwnerOf(ctx, ref)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	metadata, err := h.registry.Metadata(ctx, ref)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AssetResponse{
		Ref:      ref.String(),
		Owner:    owner.String(),
		Metadata: *metadata,
	})
}

func (h *handler) GetProvenance(c *gin.Context) {
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	records, err := h.registry.Provenance(c.Request.Context(), ref)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProvenanceResponse{
		Ref:     ref.String(),
		Records: records,
	})
}

func (h *handler) Transfer(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.registry.Transfer(c.Request.Context(), principal, principal, domain.Principal(req.To), ref, req.Note); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref": ref.String(), "owner": req.To})
}

func (h *handler) Approve(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.registry.Approve(c.Request.Context(), principal, principal, domain.Principal(req.Delegate), ref); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref": ref.String(), "delegate": req.Delegate})
}

func (h *handler) TransferFrom(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	var req dto.TransferFromRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.registry.TransferFrom(c.Request.Context(), principal, principal,
		domain.Principal(req.From), domain.Principal(req.To), ref, req.Note); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref": ref.String(), "owner": req.To})
}

func (h *handler) GetExchange(c *gin.Context) {
	ctx := c.Request.Context()

	feeBps, err := h.exchange.FeeBps(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	listings, err := h.exchange.TotalListings(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	auctions, err := h.exchange.TotalAuctions(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExchangeResponse{
		FeeBps:        feeBps,
		TotalListings: listings,
		TotalAuctions: auctions,
	})
}

func (h *handler) InitializeExchange(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.InitializeExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.exchange.Initialize(c.Request.Context(), principal, req.FeeBps); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"admin": principal.String(), "fee_bps": req.FeeBps})
}

func (h *handler) CreateListing(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.exchange.List(c.Request.Context(), principal, ref, req.Price); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ref": ref.String(), "price": req.Price})
}

func (h *handler) GetListing(c *gin.Context) {
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	listing, err := h.exchange.GetListing(c.Request.Context(), ref)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListingResponse(listing))
}

func (h *handler) Buy(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	if err := h.exchange.Buy(c.Request.Context(), principal, ref); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref": ref.String(), "owner": principal.String()})
}

func (h *handler) CancelListing(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	if err := h.exchange.CancelListing(c.Request.Context(), principal, ref); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref": ref.String()})
}

func (h *handler) CreateAuction(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	var req dto.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	duration := time.Duration(req.DurationSeconds) * time.Second
	if err := h.exchange.CreateAuction(c.Request.Context(), principal, ref, req.StartingPrice, duration); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ref": ref.String(), "starting_price": req.StartingPrice})
}

func (h *handler) GetAuction(c *gin.Context) {
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	auction, err := h.exchange.GetAuction(c.Request.Context(), ref)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuctionResponse(auction))
}

func (h *handler) PlaceBid(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	var req dto.BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.exchange.Bid(c.Request.Context(), principal, ref, req.Amount); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ref": ref.String(), "amount": req.Amount})
}

func (h *handler) GetHighestBid(c *gin.Context) {
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	bid, err := h.exchange.GetHighestBid(c.Request.Context(), ref)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BidResponse{
		Bidder:    bid.Bidder,
		Amount:    bid.Amount,
		Timestamp: bid.Timestamp,
	})
}

func (h *handler) EndAuction(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	if err := h.exchange.EndAuction(c.Request.Context(), principal, ref); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref": ref.String()})
}

func (h *handler) CancelAuction(c *gin.Context) {
	principal, ok := h.caller(c)
	if !ok {
		return
	}
	ref, ok := h.assetRef(c)
	if !ok {
		return
	}

	if err := h.exchange.CancelAuction(c.Request.Context(), principal, ref); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref": ref.String()})
}

func (h *handler) GetProfile(c *gin.Context) {
	principal := domain.Principal(c.Param("principal"))
	if !principal.Valid() {
		respondWithError(c, http.StatusUnprocessableEntity, errCodeValidationFailed, "Malformed principal")
		return
	}
	ctx := c.Request.Context()

	response := dto.ProfileResponse{Principal: principal.String()}

	if h.museums != nil {
		profile, err := h.museums.GetProfile(ctx, principal)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		response.Museum = profile
	}
	if h.reputations != nil {
		standing, err := h.reputations.GetStanding(ctx, principal)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		response.Standing = standing
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
