package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/streamkit/donation-notifier/internal/model"
)

// Broadcaster sends a broadcast message to the downstream chat service.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg model.BroadcastMessage) error
}

// Client is an HTTP Broadcaster targeting the chat server's broadcast endpoint.
// The http.Client is injected so tests can point it at a local server and so
// its timeout is configured in one place.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, log *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log,
	}
}

// Broadcast POSTs the message as JSON to <baseURL>/api/broadcast. The response
// body is discarded; any non-2xx status is an error.
func (c *Client) Broadcast(ctx context.Context, msg model.BroadcastMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast message: %w", err)
	}

	url := c.baseURL + "/api/broadcast"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build broadcast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("broadcast request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("chat server returned status %d", resp.StatusCode)
	}

	c.log.Debug("Broadcast delivered", slog.String("url", url))
	return nil
}
