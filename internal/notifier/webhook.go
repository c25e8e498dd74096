package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultTimeout = 10 * time.Second

// WebhookNotifier posts one JSON document per event to a configured URL.
// Delivery failures are the caller's to log; they never fail a backup run.
type WebhookNotifier struct {
	url    string
	host   string
	client *http.Client
}

type payload struct {
	Event     string `json:"event"`
	Host      string `json:"host"`
	Source    string `json:"source,omitempty"`
	Location  string `json:"location,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	Deleted   int    `json:"deleted,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func NewWebhookNotifier(url string) (*WebhookNotifier, error) {
	if url == "" {
		return nil, fmt.Errorf("webhook url is empty")
	}
	host, _ := os.Hostname()
	if host == "" {
		host = "unknown"
	}
	return &WebhookNotifier{
		url:    url,
		host:   host,
		client: &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (w *WebhookNotifier) NotifySuccess(ctx context.Context, source, location string, size int64, duration time.Duration) error {
	return w.post(ctx, payload{
		Event:     "backup.success",
		Source:    source,
		Location:  location,
		SizeBytes: size,
		Duration:  duration.Round(time.Second).String(),
	})
}

func (w *WebhookNotifier) NotifyError(ctx context.Context, source string, err error) error {
	return w.post(ctx, payload{
		Event:  "backup.error",
		Source: source,
		Error:  err.Error(),
	})
}

func (w *WebhookNotifier) NotifyPrune(ctx context.Context, deleted int) error {
	return w.post(ctx, payload{
		Event:   "backup.prune",
		Deleted: deleted,
	})
}

func (w *WebhookNotifier) post(ctx context.Context, p payload) error {
	p.Host = w.host
	p.Timestamp = time.Now().UTC().Format(time.RFC3339)
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

var _ Notifier = (*WebhookNotifier)(nil)
