package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/ingest"
)

// Client sends archive documents to the liftlog server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	login      string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the liftlog server. A non-empty
// login is sent as the dev login header; on a tailnet the server resolves
// identity from the connection instead.
func NewClient(serverURL, apiKey, login string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		login:     login,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendArchive POSTs an archive document to the server's import endpoint.
// Retries up to 3 times with exponential backoff on failure.
func (c *Client) SendArchive(data []byte) (*ingest.Result, error) {
	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, c.serverURL+"/api/v1/import", bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)
		if c.login != "" {
			req.Header.Set("X-Liftlog-Login", c.login)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			var result ingest.Result
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("decoding import result: %w", err)
			}
			return &result, nil
		}
		lastErr = fmt.Errorf("import failed (status %d): %s", resp.StatusCode, body)
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
