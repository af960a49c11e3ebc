package domain

import "context"

// Provider is a generation backend reaching the remote provider.
type Provider interface {
	// Generate sends exactly one generation call authenticated with apiKey.
	// Failures are returned as *Error of kind UpstreamUnavailable or UpstreamError.
	Generate(ctx context.Context, apiKey string, req *GenerationRequest) (*GenerationResult, error)

	// Name returns the backend identifier.
	Name() string
}

// ProviderRegistry manages available backends.
type ProviderRegistry interface {
	// Register adds a backend to the registry.
	Register(ctx context.Context, provider Provider) error

	// Get retrieves a backend by name.
	Get(ctx context.Context, name string) (Provider, error)

	// List returns all registered backend names.
	List(ctx context.Context) ([]string, error)
}

// CredentialStore owns the provider API key.
type CredentialStore interface {
	// APIKey returns the stored key, or "" when none is configured.
	APIKey(ctx context.Context) (string, error)

	// SetAPIKey replaces the stored key.
	SetAPIKey(ctx context.Context, key string) error

	// ClearAPIKey removes the stored key.
	ClearAPIKey(ctx context.Context) error
}
