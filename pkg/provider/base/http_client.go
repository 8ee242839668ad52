package base

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"zynlepay/pkg/provider"
)

const (
	DefaultTimeout = 30 * time.Second
	UserAgent      = "ZynlePay-Go-SDK/1.0"
)

// HTTPClient posts JSON payloads to one gateway endpoint and decodes the
// JSON reply. It holds no per-call state.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	name    string // provider name for logging
	logger  provider.Logger
}

// NewHTTPClient creates a client for baseURL. A nil hc gets a client with
// DefaultTimeout; a nil logger discards output.
func NewHTTPClient(providerName, baseURL string, hc *http.Client, logger provider.Logger) *HTTPClient {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = provider.NopLogger{}
	}
	return &HTTPClient{
		client:  hc,
		baseURL: baseURL,
		name:    providerName,
		logger:  logger,
	}
}

// URL resolves endpoint against the base URL. An empty endpoint addresses
// the base URL exactly as configured.
func (c *HTTPClient) URL(endpoint string) string {
	if endpoint == "" {
		return c.baseURL
	}
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// PostJSON sends payload and returns the decoded business response. A body
// nested under "response" is unwrapped so callers always see the same shape.
func (c *HTTPClient) PostJSON(ctx context.Context, endpoint string, payload any) (provider.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, provider.NewProtocolError("failed to marshal JSON payload", err)
	}

	url := c.URL(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, provider.NewTransportError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("HTTP request failed", map[string]any{
			"provider": c.name,
			"url":      url,
			"error":    err.Error(),
		})
		return nil, provider.NewTransportError("API request failed", err)
	}

	raw, err := readResponse(resp)
	if err != nil {
		return nil, provider.NewTransportError("failed to read response body", err)
	}

	c.logger.Info("received HTTP response", map[string]any{
		"provider":    c.name,
		"url":         url,
		"status_code": raw.StatusCode,
		"body_length": len(raw.Body),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if !raw.IsSuccess() {
		return nil, provider.NewRemoteError(raw.StatusCode, strings.TrimSpace(string(raw.Body)))
	}
	return decodeResponse(raw.Body)
}

// rawResponse is an HTTP reply with the body already drained.
type rawResponse struct {
	StatusCode int
	Body       []byte
}

func readResponse(resp *http.Response) (*rawResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &rawResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// IsSuccess checks for a 2xx status code.
func (r *rawResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func decodeResponse(body []byte) (provider.Response, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, provider.NewProtocolError("empty response from API", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, provider.NewProtocolError("invalid JSON response from API", err)
	}
	if dec.More() {
		return nil, provider.NewProtocolError("trailing data after JSON response", nil)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, provider.NewProtocolError("unexpected JSON response shape", nil)
	}
	raw, nested := obj["response"]
	if !nested {
		return provider.Response(obj), nil
	}
	inner, ok := raw.(map[string]any)
	if !ok {
		return nil, provider.NewProtocolError("unexpected JSON response shape", nil)
	}
	return provider.Response(inner), nil
}
