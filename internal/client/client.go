// Package client talks to the quill proxy on behalf of the writer panel.
package client

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

	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/observability"
)

const maxResponseBytes = 16 << 20

// Config contains proxy client settings.
type Config struct {
	BaseURL string `env:"QUILL_URL"     envDefault:"http://localhost:8080"`
	Token   string `env:"QUILL_TOKEN"`
	Timeout int    `env:"QUILL_TIMEOUT" envDefault:"120"`
}

// Client wraps the HTTP client for proxy calls.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a proxy client.
func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("proxy URL is required")
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		token:   config.Token,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}, nil
}

type generateResponse struct {
	Text string `json:"text"`
}

type statusResponse struct {
	Configured bool `json:"configured"`
}

// Generate posts a prompt and returns the generated text. Proxy failures
// are returned as *domain.Error.
func (c *Client) Generate(ctx context.Context, prompt string, config domain.GenerationConfig) (string, error) {
	var out generateResponse
	err := c.do(ctx, http.MethodPost, "/v1/generate", domain.GenerationRequest{
		Prompt: prompt,
		Config: config,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

// APIKeyConfigured reports whether the proxy holds a provider key.
func (c *Client) APIKeyConfigured(ctx context.Context) (bool, error) {
	var out statusResponse
	if err := c.do(ctx, http.MethodGet, "/v1/settings/api-key", nil, &out); err != nil {
		return false, err
	}
	return out.Configured, nil
}

// SetAPIKey stores a provider key on the proxy.
func (c *Client) SetAPIKey(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodPut, "/v1/settings/api-key", map[string]string{"apiKey": key}, nil)
}

// ClearAPIKey removes the provider key from the proxy.
func (c *Client) ClearAPIKey(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/settings/api-key", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	logger := observability.FromContext(ctx)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if requestID := observability.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("proxy request failed", observability.String("path", path), observability.Error(err))
		return domain.NewUpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.NewUpstreamUnavailable(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.NewUpstreamError(http.StatusBadGateway, "The proxy returned an unreadable response.")
	}
	return nil
}

func decodeError(status int, raw []byte) *domain.Error {
	var envelope domain.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Message == "" {
		return &domain.Error{
			Kind:    domain.KindUpstreamError,
			Message: fmt.Sprintf("The proxy answered %d %s.", status, http.StatusText(status)),
			Status:  status,
		}
	}
	return domain.FromEnvelope(envelope, status)
}
