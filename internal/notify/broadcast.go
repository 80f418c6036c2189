package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Broadcaster POSTs newly stored jobs to a companion websocket service so
// connected clients see them live. Strictly best-effort: a failure here
// never affects the primary delivery.
type Broadcaster struct {
	url    string
	client *http.Client
}

func NewBroadcaster(url string) *Broadcaster {
	return &Broadcaster{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (b *Broadcaster) BroadcastJob(ctx context.Context, job JobData) error {
	if b == nil || b.url == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]JobData{"job": job})
	if err != nil {
		return fmt.Errorf("marshal broadcast payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create broadcast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("broadcast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("broadcast returned status %d", resp.StatusCode)
	}
	return nil
}
