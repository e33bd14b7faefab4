package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fleet-backend/internal/shared/metrics"
	"fleet-backend/internal/shared/telemetry"
)

// Sink receives outbound notifications such as submitted service requests.
type Sink interface {
	Deliver(ctx context.Context, event string, payload any) error
}

// LogSink writes each notification as a structured log line.
type LogSink struct{}

func (LogSink) Deliver(ctx context.Context, event string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	telemetry.Info("webhook.delivered", map[string]any{
		"event":   event,
		"sink":    "log",
		"payload": payload,
	})
	return nil
}

// StatusError reports a non-2xx response from the webhook endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook http status %d: %s", e.StatusCode, e.Body)
}

// HTTPSink POSTs notifications as JSON to a fixed URL.
type HTTPSink struct {
	URL        string
	httpClient *http.Client
}

// NewHTTPSink builds an HTTPSink with the given request timeout.
func NewHTTPSink(url string, timeout time.Duration) (*HTTPSink, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("webhook url is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSink{
		URL:        url,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (s *HTTPSink) Deliver(ctx context.Context, event string, payload any) error {
	start := time.Now()
	err := s.post(ctx, event, payload)
	elapsed := metrics.Since(start)
	metrics.ObserveWebhookDurationMs(elapsed)

	fields := map[string]any{
		"event":       event,
		"sink":        "http",
		"duration_ms": elapsed,
	}
	if err != nil {
		fields["error"] = err.Error()
		telemetry.Error("webhook.failed", fields)
		return err
	}
	telemetry.Info("webhook.delivered", fields)
	return nil
}

func (s *HTTPSink) post(ctx context.Context, event string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Fleet-Event", event)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return fmt.Errorf("webhook request timeout: %w", err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

var (
	_ Sink = LogSink{}
	_ Sink = (*HTTPSink)(nil)
)
