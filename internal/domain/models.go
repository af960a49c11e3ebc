package domain

// GenerationConfig holds provider-tunable generation parameters
// (temperature, topP, topK, maxOutputTokens, responseMimeType).
type GenerationConfig map[string]any

// Generation parameter names understood by every backend.
const (
	ConfigTemperature      = "temperature"
	ConfigTopP             = "topP"
	ConfigTopK             = "topK"
	ConfigMaxOutputTokens  = "maxOutputTokens"
	ConfigResponseMimeType = "responseMimeType"
)

// MimeTypeJSON asks the provider to emit a JSON document.
const MimeTypeJSON = "application/json"

// GenerationRequest is the normalized request accepted by the proxy.
type GenerationRequest struct {
	Prompt string           `json:"prompt"`
	Config GenerationConfig `json:"config,omitempty"`
}

// GenerationResult is the normalized provider answer.
type GenerationResult struct {
	Text    string `json:"text"`
	Backend string `json:"-"`
	Model   string `json:"-"`
	Usage   Usage  `json:"-"`
}

// Usage tracks token consumption reported by the provider.
type Usage struct {
	PromptTokens    int `json:"prompt_tokens"`
	CandidateTokens int `json:"candidate_tokens"`
	TotalTokens     int `json:"total_tokens"`
}

// String returns the parameter as a string, or "" when absent or not a string.
func (c GenerationConfig) String(key string) string {
	if value, ok := c[key].(string); ok {
		return value
	}
	return ""
}

// Float returns the parameter as a float64 when it holds any numeric value.
func (c GenerationConfig) Float(key string) (float64, bool) {
	switch value := c[key].(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	default:
		return 0, false
	}
}

// WantsJSON reports whether the caller asked for a JSON response.
func (c GenerationConfig) WantsJSON() bool {
	return c.String(ConfigResponseMimeType) == MimeTypeJSON
}
