// Package echo provides an offline backend that echoes the prompt back.
// It implements domain.Provider without making external calls so the
// proxy and the writer CLI can be exercised without a provider key.
package echo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/observability"
)

const (
	providerName = "echo"
	modelName    = "echo-1"
)

// Provider implements domain.Provider for local development.
type Provider struct{}

// NewProvider creates a new echo backend.
// No configuration is required as this backend operates entirely in-memory.
func NewProvider() *Provider {
	return &Provider{}
}

// Document is the JSON body returned when the caller asks for JSON output.
type Document struct {
	ID     string                  `json:"id"`
	Prompt string                  `json:"prompt"`
	Config domain.GenerationConfig `json:"config,omitempty"`
}

// Generate echoes the prompt. When the config asks for JSON, the answer is a
// fenced JSON document, the way hosted models usually wrap JSON output.
func (p *Provider) Generate(
	ctx context.Context,
	_ string,
	req *domain.GenerationRequest,
) (*domain.GenerationResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	ctx = observability.WithModel(ctx, modelName)
	logger := observability.FromContext(ctx)
	logger.Debug("echoing request")

	text := req.Prompt
	if req.Config.WantsJSON() {
		raw, err := json.MarshalIndent(Document{
			ID:     "echo-" + uuid.NewString(),
			Prompt: req.Prompt,
			Config: req.Config,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal echo document: %w", err)
		}
		text = "```json\n" + string(raw) + "\n```"
	}

	tokens := countTokens(req.Prompt)

	return &domain.GenerationResult{
		Text:    text,
		Backend: providerName,
		Model:   modelName,
		Usage: domain.Usage{
			PromptTokens:    tokens,
			CandidateTokens: countTokens(text),
			TotalTokens:     tokens + countTokens(text),
		},
	}, nil
}

// Name returns the backend identifier.
func (p *Provider) Name() string {
	return providerName
}

// countTokens performs simple word-based token counting.
func countTokens(content string) int {
	return len(strings.Fields(content))
}
