package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/quill/internal/auth"
	"github.com/davidbz/quill/internal/client"
)

// Config represents the proxy configuration.
type Config struct {
	Server     ServerConfig
	CORS       CORSConfig
	Auth       auth.Config
	Provider   ProviderConfig
	Credential CredentialConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"120"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// ProviderConfig selects and configures the generation backend.
type ProviderConfig struct {
	Backend       string `env:"PROVIDER_BACKEND"       envDefault:"gemini"`
	BaseURL       string `env:"GEMINI_BASE_URL"        envDefault:"https://generativelanguage.googleapis.com"`
	APIVersion    string `env:"GEMINI_API_VERSION"     envDefault:"v1beta"`
	Model         string `env:"GEMINI_MODEL"           envDefault:"gemini-2.5-flash"`
	Timeout       int    `env:"GEMINI_TIMEOUT"         envDefault:"90"`
	OpenAIBaseURL string `env:"GEMINI_OPENAI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
}

// CredentialConfig selects where the provider API key lives.
type CredentialConfig struct {
	Store         string `env:"CREDENTIAL_STORE"     envDefault:"memory"`
	InitialAPIKey string `env:"GEMINI_API_KEY"`
	RedisAddr     string `env:"REDIS_ADDR"           envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"             envDefault:"0"`
	RedisKey      string `env:"CREDENTIAL_REDIS_KEY" envDefault:"quill:gemini_api_key"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*auth.Config
	*ProviderConfig
	*CredentialConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	loadEnvFiles()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// LoadClient parses the writer CLI configuration.
func LoadClient() (*client.Config, error) {
	loadEnvFiles()

	var cfg client.Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Auth,
		&cfg.Provider,
		&cfg.Credential,
	}
}

func loadEnvFiles() {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}
}
