package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gowebpki/jcs"

	"github.com/perma-museum/custodian/internal/domain"
)

// GenerateSignedPayload generates a signed webhook payload with HMAC-SHA256 signature.
// The payload is canonicalized with JCS (RFC 8785) before signing so receivers
// can re-serialize the JSON body and still verify the signature.
// Returns the canonical JSON payload, signature header value, timestamp, and any error.
func GenerateSignedPayload(secret string, event *domain.CustodyEvent) (payload []byte, signature string, timestamp int64, err error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	payload, err = jcs.Transform(raw)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to canonicalize event: %w", err)
	}

	timestamp = time.Now().Unix()

	signature = Sign(secret, event.EventID, timestamp, payload)

	return payload, signature, timestamp, nil
}

// Sign computes the signature header value for a canonical payload.
// The signed string is "{timestamp}.{event_id}.{payload}" which lets clients
// verify the timestamp against replay, the event ID for deduplication, and
// the body integrity in one pass.
func Sign(secret, eventID string, timestamp int64, payload []byte) string {
	signaturePayload := fmt.Sprintf("%d.%s.%s", timestamp, eventID, string(payload))

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(signaturePayload))

	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks a received payload against its signature header.
// The body is canonicalized before comparison so receivers that re-encoded
// the JSON still verify.
func VerifySignature(secret, eventID, signature string, timestamp int64, body []byte) (bool, error) {
	canonical, err := jcs.Transform(body)
	if err != nil {
		return false, fmt.Errorf("failed to canonicalize body: %w", err)
	}

	expected := Sign(secret, eventID, timestamp, canonical)

	return hmac.Equal([]byte(expected), []byte(signature)), nil
}
