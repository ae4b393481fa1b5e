package ledgerd

import (
	"context"
	"fmt"

	"github.com/perma-museum/custodian/internal/adapter"
	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/ledger"
)

// transferRequest is the ledgerd transfer API payload
type transferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
	Memo   string `json:"memo,omitempty"`
}

// escrowRequest is the ledgerd escrow API payload. The escrow account is
// keyed by asset reference and bidder so concurrent auctions never collide.
type escrowRequest struct {
	Account string `json:"account"`
	Bidder  string `json:"bidder"`
	To      string `json:"to,omitempty"`
	Amount  int64  `json:"amount"`
}

type ledgerResponse struct {
	TxID string `json:"tx_id"`
	OK   bool   `json:"ok"`
}

// Client implements ledger.Service against a ledgerd HTTP API
type Client struct {
	httpClient adapter.HTTPClient
	baseURL    string
}

// NewClient creates a new ledgerd client
func NewClient(httpClient adapter.HTTPClient, baseURL string) ledger.Service {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Transfer moves amount from one principal to another
func (c *Client) Transfer(ctx context.Context, from, to domain.Principal, amount int64, memo string) error {
	request := transferRequest{
		From:   string(from),
		To:     string(to),
		Amount: amount,
		Memo:   memo,
	}

	var response ledgerResponse
	if err := c.httpClient.PostJSON(ctx, c.baseURL+"/v1/transfers", request, &response); err != nil {
		return fmt.Errorf("failed to call ledgerd transfer API: %w", err)
	}
	if !response.OK {
		return fmt.Errorf("ledgerd rejected transfer from %s to %s", from, to)
	}

	return nil
}

// Escrow holds amount from the bidder against the given asset
func (c *Client) Escrow(ctx context.Context, bidder domain.Principal, ref domain.AssetRef, amount int64) error {
	request := escrowRequest{
		Account: escrowAccount(ref),
		Bidder:  string(bidder),
		Amount:  amount,
	}

	var response ledgerResponse
	if err := c.httpClient.PostJSON(ctx, c.baseURL+"/v1/escrows", request, &response); err != nil {
		return fmt.Errorf("failed to call ledgerd escrow API: %w", err)
	}
	if !response.OK {
		return fmt.Errorf("ledgerd rejected escrow for %s on %s", bidder, ref)
	}

	return nil
}

// ReleaseEscrow pays escrowed funds held for ref on behalf of bidder out to
// the recipient
func (c *Client) ReleaseEscrow(ctx context.Context, ref domain.AssetRef, bidder, to domain.Principal, amount int64) error {
	request := escrowRequest{
		Account: escrowAccount(ref),
		Bidder:  string(bidder),
		To:      string(to),
		Amount:  amount,
	}

	var response ledgerResponse
	if err := c.httpClient.PostJSON(ctx, c.baseURL+"/v1/escrows/release", request, &response); err != nil {
		return fmt.Errorf("failed to call ledgerd escrow release API: %w", err)
	}
	if !response.OK {
		return fmt.Errorf("ledgerd rejected escrow release for %s on %s", bidder, ref)
	}

	return nil
}

// RefundEscrow returns escrowed funds held for ref back to the bidder
func (c *Client) RefundEscrow(ctx context.Context, ref domain.AssetRef, bidder domain.Principal, amount int64) error {
	request := escrowRequest{
		Account: escrowAccount(ref),
		Bidder:  string(bidder),
		Amount:  amount,
	}

	var response ledgerResponse
	if err := c.httpClient.PostJSON(ctx, c.baseURL+"/v1/escrows/refund", request, &response); err != nil {
		return fmt.Errorf("failed to call ledgerd escrow refund API: %w", err)
	}
	if !response.OK {
		return fmt.Errorf("ledgerd rejected escrow refund for %s on %s", bidder, ref)
	}

	return nil
}

func escrowAccount(ref domain.AssetRef) string {
	return "escrow:" + string(ref)
}
