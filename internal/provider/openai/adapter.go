// Package openai provides a generation backend that speaks the chat
// completions protocol through the official openai-go SDK. It targets any
// OpenAI-compatible endpoint, by default the generative-language one.
package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/observability"
)

const providerName = "openai"

// Provider implements domain.Provider for OpenAI-compatible endpoints.
type Provider struct {
	client openai.Client
	model  string
}

// NewProvider creates a new OpenAI-compatible backend.
func NewProvider(config Config) (*Provider, error) {
	if config.Model == "" {
		return nil, errors.New("openai model is required")
	}

	opts := []option.RequestOption{
		option.WithMaxRetries(0),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		model:  config.Model,
	}, nil
}

// Generate sends a single chat completion and returns the first choice.
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
	logger.Debug("calling chat completions")

	resp, err := p.client.Chat.Completions.New(ctx, p.toSDKParams(req), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, classify(err)
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}

	return &domain.GenerationResult{
		Text:    text,
		Backend: providerName,
		Model:   p.model,
		Usage: domain.Usage{
			PromptTokens:    int(resp.Usage.PromptTokens),
			CandidateTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:     int(resp.Usage.TotalTokens),
		},
	}, nil
}

// Name returns the backend identifier.
func (p *Provider) Name() string {
	return providerName
}

// toSDKParams maps the generation parameters onto chat completion params.
// topK has no chat completions equivalent and is dropped.
func (p *Provider) toSDKParams(req *domain.GenerationRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
	}

	if temperature, ok := req.Config.Float(domain.ConfigTemperature); ok {
		params.Temperature = openai.Float(temperature)
	}

	if topP, ok := req.Config.Float(domain.ConfigTopP); ok {
		params.TopP = openai.Float(topP)
	}

	if maxTokens, ok := req.Config.Float(domain.ConfigMaxOutputTokens); ok && maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	if req.Config.WantsJSON() {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return params
}

func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}
		return domain.NewUpstreamError(status, apiErr.Message)
	}
	return domain.NewUpstreamUnavailable(err)
}
