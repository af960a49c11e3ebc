package openai

// Config contains settings for the OpenAI-compatible backend.
// Fields map to SDK options:
//   - BaseURL: option.WithBaseURL()
//   - Timeout: option.WithRequestTimeout() (in seconds)
//
// The key is not part of the config. It is read per request.
type Config struct {
	BaseURL string
	Model   string
	Timeout int
}
