package webhook

// EventTypeWildcard is a special filter that matches all event types
const EventTypeWildcard = "*"

// Endpoint represents a configured webhook receiver
type Endpoint struct {
	// Name identifies the endpoint in logs
	Name string `json:"name" mapstructure:"name"`
	// URL is the delivery target
	URL string `json:"url" mapstructure:"url"`
	// Secret is the shared HMAC secret for payload signing
	Secret string `json:"secret" mapstructure:"secret"`
	// EventTypes filters which custody events the endpoint receives; a
	// single "*" entry subscribes to everything
	EventTypes []string `json:"event_types" mapstructure:"event_types"`
}

// Matches reports whether the endpoint subscribes to the given event type
func (e Endpoint) Matches(eventType string) bool {
	for _, t := range e.EventTypes {
		if t == EventTypeWildcard || t == eventType {
			return true
		}
	}
	return false
}

// DeliveryResult represents the result of a webhook delivery attempt
type DeliveryResult struct {
	// Success indicates whether the delivery was successful
	Success bool
	// StatusCode is the HTTP status code returned by the webhook endpoint
	StatusCode int
	// Body is the response body (limited to 4KB)
	Body string
	// Error contains error details if delivery failed
	Error string
}
