package reputation

import (
	"context"
	"fmt"
	"net/url"

	"github.com/perma-museum/custodian/internal/adapter"
	"github.com/perma-museum/custodian/internal/domain"
)

// Standing represents a principal's standing in the reputation service
type Standing struct {
	Principal string   `json:"principal"`
	Points    int64    `json:"points"`
	Badges    []string `json:"badges"`
}

type standingResponse struct {
	Standing *Standing `json:"standing"`
}

// Client defines the interface for reputation lookups to enable mocking.
// Standing is read-only from this service; the reputation ledger is owned
// elsewhere and never mutated here.
//
//go:generate mockgen -source=client.go -destination=../../mocks/reputation_client.go -package=mocks -mock_names=Client=MockReputationClient
type Client interface {
	// GetStanding fetches the standing for a principal, returning nil when
	// the principal has no reputation record
	GetStanding(ctx context.Context, principal domain.Principal) (*Standing, error)
}

// ReputationClient implements Client against the reputation HTTP API
type ReputationClient struct {
	httpClient adapter.HTTPClient
	baseURL    string
}

// NewClient creates a new reputation client
func NewClient(httpClient adapter.HTTPClient, baseURL string) Client {
	return &ReputationClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// GetStanding fetches the standing for a principal
func (c *ReputationClient) GetStanding(ctx context.Context, principal domain.Principal) (*Standing, error) {
	endpoint := fmt.Sprintf("%s/v1/standings/%s", c.baseURL, url.PathEscape(string(principal)))

	var response standingResponse
	if err := c.httpClient.Get(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to call reputation API: %w", err)
	}

	return response.Standing, nil
}
