package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/perma-museum/custodian/internal/adapter"
	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/logger"
	"github.com/perma-museum/custodian/internal/webhook"
)

const (
	workerPoolSize  = 8
	workerQueueSize = 256
	maxResponseSize = 4 * 1024
)

// Config holds webhook delivery settings
type Config struct {
	Endpoints []webhook.Endpoint

	// MaxElapsedTime caps delivery retries per endpoint
	MaxElapsedTime time.Duration
}

// Notifier fans custody events out to configured webhook endpoints.
// Deliveries run on a bounded worker pool and never block the caller;
// per-endpoint failures are retried with exponential backoff and logged,
// not surfaced back to the operation that emitted the event.
type Notifier struct {
	httpClient adapter.HTTPClient
	endpoints  []webhook.Endpoint
	maxElapsed time.Duration
	pool       pond.Pool
}

// New creates a webhook notifier
func New(httpClient adapter.HTTPClient, cfg Config) *Notifier {
	maxElapsed := cfg.MaxElapsedTime
	if maxElapsed == 0 {
		maxElapsed = 2 * time.Minute
	}

	return &Notifier{
		httpClient: httpClient,
		endpoints:  cfg.Endpoints,
		maxElapsed: maxElapsed,
		pool: pond.NewPool(
			workerPoolSize,
			pond.WithQueueSize(workerQueueSize),
		),
	}
}

// Notify schedules delivery of an event to every subscribed endpoint
func (n *Notifier) Notify(ctx context.Context, event *domain.CustodyEvent) {
	for _, endpoint := range n.endpoints {
		if !endpoint.Matches(string(event.EventType)) {
			continue
		}

		ep := endpoint
		n.pool.Submit(func() {
			n.deliver(context.WithoutCancel(ctx), ep, event)
		})
	}
}

// PublishEvent implements messaging.Publisher so the notifier can sit in a
// fan-out next to the broker publisher. Scheduling never fails; delivery
// errors are retried and logged on the worker pool.
func (n *Notifier) PublishEvent(ctx context.Context, event *domain.CustodyEvent) error {
	n.Notify(ctx, event)
	return nil
}

// Close drains in-flight deliveries
func (n *Notifier) Close() {
	n.pool.StopAndWait()
}

func (n *Notifier) deliver(ctx context.Context, endpoint webhook.Endpoint, event *domain.CustodyEvent) {
	payload, signature, timestamp, err := webhook.GenerateSignedPayload(endpoint.Secret, event)
	if err != nil {
		logger.Error(errors.New("failed to generate signed payload"),
			zap.Error(err),
			zap.String("endpoint", endpoint.Name),
			zap.String("eventID", event.EventID))
		return
	}

	headers := map[string]string{
		"Content-Type":         "application/json",
		"X-Custody-Signature":  signature,
		"X-Custody-Event-ID":   event.EventID,
		"X-Custody-Event-Type": string(event.EventType),
		"X-Custody-Timestamp":  fmt.Sprintf("%d", timestamp),
		"User-Agent":           "PermaMuseum-Custodian/1.0",
	}

	operation := func() error {
		result := n.attempt(ctx, endpoint.URL, headers, payload)
		if result.Success {
			return nil
		}
		return errors.New(result.Error)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = n.maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		logger.Error(errors.New("webhook delivery failed after retries"),
			zap.Error(err),
			zap.String("endpoint", endpoint.Name),
			zap.String("eventID", event.EventID))
		return
	}

	logger.Info("webhook delivered",
		zap.String("endpoint", endpoint.Name),
		zap.String("eventID", event.EventID),
		zap.String("eventType", string(event.EventType)))
}

func (n *Notifier) attempt(ctx context.Context, url string, headers map[string]string, payload []byte) webhook.DeliveryResult {
	resp, err := n.httpClient.PostWithHeadersNoRetry(ctx, url, headers, bytes.NewReader(payload))
	if err != nil {
		return webhook.DeliveryResult{Error: err.Error()}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", zap.Error(err), zap.String("url", url))
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		respBody = []byte{}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return webhook.DeliveryResult{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Error:      fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}

	return webhook.DeliveryResult{
		Success:    true,
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}
}
