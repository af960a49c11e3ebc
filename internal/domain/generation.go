package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/davidbz/quill/internal/observability"
)

// GenerationService is the server side of the proxy: it owns the credential
// and forwards normalized requests to the configured backend.
type GenerationService struct {
	registry    ProviderRegistry
	credentials CredentialStore
	backend     string
}

// NewGenerationService creates a new generation service (DI constructor).
func NewGenerationService(registry ProviderRegistry, credentials CredentialStore, backend string) *GenerationService {
	return &GenerationService{
		registry:    registry,
		credentials: credentials,
		backend:     backend,
	}
}

// Generate validates the request, injects the stored credential and issues
// exactly one backend call. Caller authorization is enforced by the transport.
func (g *GenerationService) Generate(ctx context.Context, req *GenerationRequest) (*GenerationResult, error) {
	logger := observability.FromContext(ctx)

	apiKey, err := g.credentials.APIKey(ctx)
	if err != nil {
		logger.Error("failed to read credential", observability.Error(err))
		return nil, NewInternal("The API key could not be read.", err)
	}
	if apiKey == "" {
		logger.Warn("generation rejected: api key not configured")
		return nil, ErrAPIKeyNotConfigured
	}

	if req == nil {
		return nil, ErrPromptRequired
	}
	prompt := NormalizePrompt(req.Prompt)
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrPromptRequired
	}

	provider, err := g.registry.Get(ctx, g.backend)
	if err != nil {
		logger.Error("generation backend unavailable",
			observability.String("backend", g.backend),
			observability.Error(err))
		return nil, NewInternal("The generation backend is not available.", err)
	}

	ctx = observability.WithBackend(ctx, provider.Name())
	logger = observability.FromContext(ctx)
	logger.Info("forwarding generation request",
		observability.Int("prompt_length", len(prompt)),
		observability.Int("config_params", len(req.Config)))

	start := time.Now()
	result, err := provider.Generate(ctx, apiKey, &GenerationRequest{
		Prompt: prompt,
		Config: req.Config,
	})
	elapsed := time.Since(start)

	if err != nil {
		observability.RecordGeneration(provider.Name(), observability.OutcomeFailure, elapsed)

		classified, ok := AsError(err)
		if !ok {
			classified = NewUpstreamUnavailable(err)
		}
		logger.Warn("generation failed",
			observability.String("kind", string(classified.Kind)),
			observability.Int("status", classified.Status),
			observability.Duration("elapsed", elapsed),
			observability.Error(errors.Unwrap(classified)))
		return nil, classified
	}

	observability.RecordGeneration(provider.Name(), observability.OutcomeSuccess, elapsed)
	observability.RecordTokens(provider.Name(), result.Usage.PromptTokens, result.Usage.CandidateTokens)

	logger.Info("generation succeeded",
		observability.Int("text_length", len(result.Text)),
		observability.Int("total_tokens", result.Usage.TotalTokens),
		observability.Duration("elapsed", elapsed))

	return result, nil
}
