package domain

import "errors"

var (
	// ErrAlreadyInitialized is returned when Initialize is called a second time
	ErrAlreadyInitialized = errors.New("already initialized")

	// ErrNotInitialized is returned when querying configuration before Initialize
	ErrNotInitialized = errors.New("not initialized")

	// ErrUnauthorized is returned when the caller fails principal verification
	// or is not permitted to perform the operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when minting an asset whose id is taken
	ErrAlreadyExists = errors.New("asset already exists")

	// ErrAlreadyListed is returned when an active listing exists for the asset
	ErrAlreadyListed = errors.New("asset already listed")

	// ErrAlreadyInAuction is returned when an active auction exists for the asset
	ErrAlreadyInAuction = errors.New("asset already in auction")

	// ErrInvalidParameter is returned for non-positive prices, durations or fees
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotActive is returned when operating on a deactivated listing or auction
	ErrNotActive = errors.New("not active")

	// ErrTooEarly is returned when ending an auction before its end time
	ErrTooEarly = errors.New("auction not ended yet")

	// ErrAuctionEnded is returned when bidding after the auction end time
	ErrAuctionEnded = errors.New("auction ended")

	// ErrBidTooLow is returned when a bid does not strictly exceed both the
	// current bid and the starting price
	ErrBidTooLow = errors.New("bid too low")

	// ErrSelfPurchase is returned when a seller tries to buy or outbid their own sale
	ErrSelfPurchase = errors.New("seller cannot purchase own asset")

	// ErrHasBids is returned when cancelling an auction that has received bids
	ErrHasBids = errors.New("cannot cancel auction with bids")
)
