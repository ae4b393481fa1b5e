package webhook_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/webhook"
)

func buildTestEvent() *domain.CustodyEvent {
	return &domain.CustodyEvent{
		EventID:   "01JD0000000000000000000000",
		EventType: domain.EventTypeSold,
		AssetRef:  domain.NewAssetRef("louvre-antiquities", 7),
		From:      "louvre",
		To:        "met",
		Amount:    1000,
		Timestamp: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerateSignedPayload(t *testing.T) {
	event := buildTestEvent()

	payload, signature, timestamp, err := webhook.GenerateSignedPayload("secret", event)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(signature, "sha256="))
	assert.InDelta(t, time.Now().Unix(), timestamp, 5)

	// Payload stays valid JSON carrying the event
	var decoded domain.CustodyEvent
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, event.EventType, decoded.EventType)
	assert.Equal(t, event.Amount, decoded.Amount)
}

func TestVerifySignature_RoundTrip(t *testing.T) {
	event := buildTestEvent()

	payload, signature, timestamp, err := webhook.GenerateSignedPayload("secret", event)
	require.NoError(t, err)

	ok, err := webhook.VerifySignature("secret", event.EventID, signature, timestamp, payload)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifySignature_ReencodedBody(t *testing.T) {
	event := buildTestEvent()

	payload, signature, timestamp, err := webhook.GenerateSignedPayload("secret", event)
	require.NoError(t, err)

	// A receiver that decodes and re-encodes the body gets different byte
	// ordering; canonicalization must still verify it
	var intermediate map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &intermediate))
	reencoded, err := json.Marshal(intermediate)
	require.NoError(t, err)

	ok, err := webhook.VerifySignature("secret", event.EventID, signature, timestamp, reencoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifySignature_Rejections(t *testing.T) {
	event := buildTestEvent()

	payload, signature, timestamp, err := webhook.GenerateSignedPayload("secret", event)
	require.NoError(t, err)

	tests := []struct {
		name      string
		secret    string
		eventID   string
		signature string
		timestamp int64
		body      []byte
	}{
		{"wrong secret", "other", event.EventID, signature, timestamp, payload},
		{"wrong event id", "secret", "01JD0000000000000000000001", signature, timestamp, payload},
		{"wrong timestamp", "secret", event.EventID, signature, timestamp + 1, payload},
		{"tampered body", "secret", event.EventID, signature, timestamp, []byte(`{"amount":9999}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := webhook.VerifySignature(tt.secret, tt.eventID, tt.signature, tt.timestamp, tt.body)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestEndpoint_Matches(t *testing.T) {
	endpoint := webhook.Endpoint{
		Name:       "curator-feed",
		URL:        "https://curators.example.com/hooks",
		EventTypes: []string{string(domain.EventTypeSold), string(domain.EventTypeAuctionSettled)},
	}

	assert.True(t, endpoint.Matches(string(domain.EventTypeSold)))
	assert.True(t, endpoint.Matches(string(domain.EventTypeAuctionSettled)))
	assert.False(t, endpoint.Matches(string(domain.EventTypeMinted)))

	wildcard := webhook.Endpoint{EventTypes: []string{webhook.EventTypeWildcard}}
	assert.True(t, wildcard.Matches(string(domain.EventTypeMinted)))

	empty := webhook.Endpoint{}
	assert.False(t, empty.Matches(string(domain.EventTypeMinted)))
}
