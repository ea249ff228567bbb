// Package webhook forwards raw JSON payloads to externally owned workflow
// endpoints. The relay has no contract with their internals beyond "returns
// JSON or text, may fail".
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client posts raw payloads to workflow webhooks.
type Client struct {
	httpClient   *http.Client
	secretHeader string
	secretValue  string
}

// NewClient creates a webhook client. secretHeader/secretValue are attached
// to every outbound call when secretValue is non-empty.
func NewClient(timeout time.Duration, secretHeader, secretValue string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		secretHeader: secretHeader,
		secretValue:  secretValue,
	}
}

// Result is the outcome of one forward. JSON is nil when the upstream body
// did not parse; Body always holds the raw bytes.
type Result struct {
	StatusCode int
	Body       []byte
	JSON       map[string]interface{}
}

// Success reports whether the upstream call itself succeeded. Success is
// derived from the HTTP status, never from payload content.
func (r *Result) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Forward posts rawBody verbatim to url and reads the full response.
// A non-2xx upstream status is not an error here; the caller decides how to
// report it. Only transport-level failures return an error.
func (c *Client) Forward(ctx context.Context, url string, rawBody []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(rawBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.secretValue != "" {
		req.Header.Set(c.secretHeader, c.secretValue)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call webhook: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook response: %w", err)
	}

	result := &Result{
		StatusCode: resp.StatusCode,
		Body:       body,
	}

	// Best effort: treat the body as raw text when it is not a JSON object.
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err == nil {
		result.JSON = parsed
	}

	return result, nil
}

// fallbackReply is substituted when the upstream payload carries none of the
// recognized reply fields.
const fallbackReply = "The workflow completed but returned no reply."

// ExtractReply scans an upstream payload for the canonical reply text,
// checking reply, then message, then content, in that priority order. The
// boolean reports whether any of them was present as a string.
func ExtractReply(payload map[string]interface{}) (string, bool) {
	for _, key := range []string{"reply", "message", "content"} {
		if val, ok := payload[key]; ok {
			if s, ok := val.(string); ok {
				return s, true
			}
		}
	}
	return fallbackReply, false
}
