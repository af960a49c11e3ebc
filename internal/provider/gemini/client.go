// Package gemini implements the generation backend that talks to the
// generative-language REST API directly: one POST to
// {base}/{version}/models/{model}:generateContent with the key as a query credential.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/observability"
)

const (
	providerName = "gemini"

	maxResponseBytes = 16 << 20
)

// Provider implements domain.Provider over plain HTTP.
type Provider struct {
	baseURL    string
	apiVersion string
	model      string
	httpClient *http.Client
}

// NewProvider creates a new Gemini REST backend.
func NewProvider(config Config) (*Provider, error) {
	if config.BaseURL == "" {
		return nil, errors.New("gemini base URL is required")
	}
	if config.Model == "" {
		return nil, errors.New("gemini model is required")
	}
	if config.APIVersion == "" {
		config.APIVersion = "v1beta"
	}

	return &Provider{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiVersion: config.APIVersion,
		model:      config.Model,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}, nil
}

// Wire structures of the generateContent call.
type generateRequest struct {
	Contents         []content               `json:"contents"`
	GenerationConfig domain.GenerationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends one generateContent request. No retry is attempted.
func (p *Provider) Generate(
	ctx context.Context,
	apiKey string,
	req *domain.GenerationRequest,
) (*domain.GenerationResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	ctx = observability.WithModel(ctx, p.model)
	logger := observability.FromContext(ctx)

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: req.Prompt}}}},
	}
	if len(req.Config) > 0 {
		body.GenerationConfig = req.Config
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := p.endpoint()
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint+"?"+url.Values{"key": []string{apiKey}}.Encode(),
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger.Debug("calling generateContent")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewUpstreamUnavailable(redact(err, endpoint))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domain.NewUpstreamUnavailable(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var envelope errorResponse
		_ = json.Unmarshal(raw, &envelope)
		logger.Warn("generateContent returned an error status",
			observability.Int("status", resp.StatusCode),
			observability.String("provider_status", envelope.Error.Status))
		return nil, domain.NewUpstreamError(resp.StatusCode, envelope.Error.Message)
	}

	var decoded generateResponse
	if decodeErr := json.Unmarshal(raw, &decoded); decodeErr != nil {
		logger.Error("failed to decode generateContent response", observability.Error(decodeErr))
		return nil, domain.NewUpstreamError(http.StatusBadGateway,
			"The generation provider returned an unreadable response.")
	}

	return &domain.GenerationResult{
		Text:    firstText(&decoded),
		Backend: providerName,
		Model:   p.model,
		Usage: domain.Usage{
			PromptTokens:    decoded.UsageMetadata.PromptTokenCount,
			CandidateTokens: decoded.UsageMetadata.CandidatesTokenCount,
			TotalTokens:     decoded.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

// Name returns the backend identifier.
func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) endpoint() string {
	return fmt.Sprintf("%s/%s/models/%s:generateContent", p.baseURL, p.apiVersion, url.PathEscape(p.model))
}

// firstText returns candidates[0].content.parts[0].text, or "" when the path is absent.
func firstText(resp *generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

// redact strips the query string (and with it the key) from transport errors.
func redact(err error, endpoint string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = endpoint
	}
	return err
}
