package museum

import (
	"context"
	"fmt"
	"net/url"

	"github.com/perma-museum/custodian/internal/adapter"
	"github.com/perma-museum/custodian/internal/domain"
)

// Profile represents a museum record from the verification registry
type Profile struct {
	Principal   string `json:"principal"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Specialties string `json:"specialties"`
	Verified    bool   `json:"verified"`
	Reputation  uint32 `json:"reputation"`
}

type profileResponse struct {
	Museum *Profile `json:"museum"`
}

// Client defines the interface for museum registry lookups to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/museum_client.go -package=mocks -mock_names=Client=MockMuseumClient
type Client interface {
	// GetProfile fetches the museum profile for a principal, returning nil
	// when the principal is not registered
	GetProfile(ctx context.Context, principal domain.Principal) (*Profile, error)

	// IsVerified reports whether the principal is a verified museum
	IsVerified(ctx context.Context, principal domain.Principal) (bool, error)
}

// MuseumClient implements Client against the museum registry HTTP API
type MuseumClient struct {
	httpClient adapter.HTTPClient
	baseURL    string
}

// NewClient creates a new museum registry client
func NewClient(httpClient adapter.HTTPClient, baseURL string) Client {
	return &MuseumClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// GetProfile fetches the museum profile for a principal
func (c *MuseumClient) GetProfile(ctx context.Context, principal domain.Principal) (*Profile, error) {
	endpoint := fmt.Sprintf("%s/v1/museums/%s", c.baseURL, url.PathEscape(string(principal)))

	var response profileResponse
	if err := c.httpClient.Get(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to call museum registry API: %w", err)
	}

	return response.Museum, nil
}

// IsVerified reports whether the principal is a verified museum
func (c *MuseumClient) IsVerified(ctx context.Context, principal domain.Principal) (bool, error) {
	profile, err := c.GetProfile(ctx, principal)
	if err != nil {
		return false, err
	}

	return profile != nil && profile.Verified, nil
}
