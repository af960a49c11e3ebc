// Package genai provides a generation backend built on the official
// google.golang.org/genai SDK. A client is created per call because the key
// is read fresh from the credential store on every request.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/observability"
)

const providerName = "genai"

// Config contains genai backend settings.
type Config struct {
	BaseURL    string
	APIVersion string
	Model      string
	Timeout    int
}

// Provider implements domain.Provider with the genai SDK.
type Provider struct {
	baseURL    string
	apiVersion string
	model      string
	httpClient *http.Client
}

// NewProvider creates a new genai backend.
func NewProvider(config Config) (*Provider, error) {
	if config.Model == "" {
		return nil, errors.New("genai model is required")
	}

	return &Provider{
		baseURL:    config.BaseURL,
		apiVersion: config.APIVersion,
		model:      config.Model,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}, nil
}

// Generate sends one GenerateContent call through the SDK.
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

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    p.baseURL,
			APIVersion: p.apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init genai client: %w", err)
	}

	config, err := toContentConfig(req.Config)
	if err != nil {
		return nil, domain.NewInvalidRequest(fmt.Sprintf("invalid generation config: %v", err))
	}

	logger.Debug("calling genai GenerateContent")

	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, classify(err)
	}

	result := &domain.GenerationResult{
		Text:    firstText(resp),
		Backend: providerName,
		Model:   p.model,
	}
	if resp.UsageMetadata != nil {
		result.Usage = domain.Usage{
			PromptTokens:    int(resp.UsageMetadata.PromptTokenCount),
			CandidateTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:     int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	return result, nil
}

// Name returns the backend identifier.
func (p *Provider) Name() string {
	return providerName
}

// toContentConfig maps the loosely-typed parameters onto the SDK config.
// The SDK struct uses the same JSON names as the REST API.
func toContentConfig(params domain.GenerationConfig) (*genai.GenerateContentConfig, error) {
	if len(params) == 0 {
		return nil, nil //nolint:nilnil // nil config means provider defaults
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	var config genai.GenerateContentConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// classify maps SDK errors onto the proxy taxonomy.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return domain.NewUpstreamError(apiErr.Code, apiErr.Message)
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return domain.NewUpstreamError(apiErrPtr.Code, apiErrPtr.Message)
	}

	return domain.NewUpstreamUnavailable(err)
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}
	if candidate.Content.Parts[0] == nil {
		return ""
	}
	return candidate.Content.Parts[0].Text
}
