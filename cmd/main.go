package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/quill/internal/auth"
	"github.com/davidbz/quill/internal/config"
	"github.com/davidbz/quill/internal/credential"
	"github.com/davidbz/quill/internal/credential/redis"
	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/http"
	"github.com/davidbz/quill/internal/http/middleware"
	"github.com/davidbz/quill/internal/observability"
	"github.com/davidbz/quill/internal/provider/echo"
	"github.com/davidbz/quill/internal/provider/gemini"
	"github.com/davidbz/quill/internal/provider/genai"
	"github.com/davidbz/quill/internal/provider/openai"
	"github.com/davidbz/quill/internal/provider/registry"
)

const (
	shutdownTimeout  = 15 * time.Second
	redisPingTimeout = 5 * time.Second
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server, logger *zap.Logger) error {
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Provider Registry
	if err := container.Provide(func() domain.ProviderRegistry {
		return registry.NewRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Backends
	if err := container.Provide(func(cfg *config.ProviderConfig) (*gemini.Provider, error) {
		return gemini.NewProvider(gemini.Config{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout,
		})
	}); err != nil {
		log.Fatalf("Failed to provide gemini backend: %v", err)
	}
	if err := container.Provide(func(cfg *config.ProviderConfig) (*genai.Provider, error) {
		return genai.NewProvider(genai.Config{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout,
		})
	}); err != nil {
		log.Fatalf("Failed to provide genai backend: %v", err)
	}
	if err := container.Provide(func(cfg *config.ProviderConfig) (*openai.Provider, error) {
		return openai.NewProvider(openai.Config{
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	}); err != nil {
		log.Fatalf("Failed to provide openai backend: %v", err)
	}
	if err := container.Provide(echo.NewProvider); err != nil {
		log.Fatalf("Failed to provide echo backend: %v", err)
	}

	// Register backends with registry (invoked for side effects)
	if err := container.Invoke(func(
		reg domain.ProviderRegistry,
		cfg *config.ProviderConfig,
		geminiBackend *gemini.Provider,
		genaiBackend *genai.Provider,
		openaiBackend *openai.Provider,
		echoBackend *echo.Provider,
		logger *zap.Logger,
	) error {
		ctx := context.Background()

		for _, backend := range []domain.Provider{geminiBackend, genaiBackend, openaiBackend, echoBackend} {
			if err := reg.Register(ctx, backend); err != nil {
				return fmt.Errorf("failed to register %s backend: %w", backend.Name(), err)
			}
		}

		names, err := reg.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list backends: %w", err)
		}
		if _, err := reg.Get(ctx, cfg.Backend); err != nil {
			return fmt.Errorf("configured backend %q (available: %s): %w",
				cfg.Backend, strings.Join(names, ", "), err)
		}

		logger.Info("generation backends registered",
			observability.Strings("backends", names),
			observability.String("selected", cfg.Backend))
		return nil
	}); err != nil {
		log.Fatalf("Failed to register backends: %v", err)
	}

	// Credential store
	if err := container.Provide(newCredentialStore); err != nil {
		log.Fatalf("Failed to provide credential store: %v", err)
	}

	// Auth
	if err := container.Provide(func(cfg *auth.Config) (*auth.Manager, error) {
		return auth.NewManager(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide token manager: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(
		reg domain.ProviderRegistry,
		credentials domain.CredentialStore,
		cfg *config.ProviderConfig,
	) *domain.GenerationService {
		return domain.NewGenerationService(reg, credentials, cfg.Backend)
	}); err != nil {
		log.Fatalf("Failed to provide generation service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// newCredentialStore builds the configured store. A GEMINI_API_KEY seeds an
// empty Redis store so a fresh deployment works without an admin call.
func newCredentialStore(cfg *config.CredentialConfig) (domain.CredentialStore, error) {
	switch cfg.Store {
	case "", "memory":
		return credential.NewMemoryStore(cfg.InitialAPIKey), nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		store, err := redis.NewStore(client, cfg.RedisKey)
		if err != nil {
			return nil, err
		}

		if cfg.InitialAPIKey != "" {
			current, err := store.APIKey(ctx)
			if err != nil {
				return nil, err
			}
			if current == "" {
				if err := store.SetAPIKey(ctx, cfg.InitialAPIKey); err != nil {
					return nil, err
				}
			}
		}
		return store, nil
	default:
		return nil, errors.New("unknown credential store " + cfg.Store)
	}
}
