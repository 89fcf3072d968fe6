package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// TokenSource supplies the bearer credential attached to every request.
// An empty token means the call goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is the single HTTP boundary to the commerce backend. Every
// repository in this module goes through it: base URL resolution, bearer
// injection, JSON codec and error mapping all live here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter

	calls    Counter
	failures Counter
}

// Outbound politeness limit toward the backend. Generous enough to never
// throttle interactive use; it only smooths bursts.
const (
	outboundLimit = rate.Limit(50)
	outboundBurst = 100
)

// NewClient creates a client with sane defaults.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		tokens:  tokens,
		limiter: rate.NewLimiter(outboundLimit, outboundBurst),
	}
}

// Stats reports how many backend calls this client has made and how many
// of them failed.
func (c *Client) Stats() Stats {
	return Stats{
		Calls:    c.calls.Load(),
		Failures: c.failures.Load(),
	}
}

// Get issues a GET and decodes the JSON response into R.
func Get[R any](ctx context.Context, c *Client, path string) (*R, error) {
	return do[R](ctx, c, http.MethodGet, path, nil)
}

// Post issues a JSON POST and decodes the response into R.
func Post[T any, R any](ctx context.Context, c *Client, path string, payload T) (*R, error) {
	return do[R](ctx, c, http.MethodPost, path, &payload)
}

// Put issues a JSON PUT and decodes the response into R.
func Put[T any, R any](ctx context.Context, c *Client, path string, payload T) (*R, error) {
	return do[R](ctx, c, http.MethodPut, path, &payload)
}

// Delete issues a DELETE and decodes the response into R.
func Delete[R any](ctx context.Context, c *Client, path string) (*R, error) {
	return do[R](ctx, c, http.MethodDelete, path, nil)
}

func do[R any](ctx context.Context, c *Client, method, path string, payload any) (*R, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.calls.Inc()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.failures.Inc()
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.failures.Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.failures.Inc()
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(bodyBytes),
		}
	}

	var out R
	if len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, &out); err != nil {
			c.failures.Inc()
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	return &out, nil
}

// errorMessage pulls the server's human-readable reason out of an error
// body. Both `message` and `error` keys are in use across the backend.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
