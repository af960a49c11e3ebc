package gemini

// Config contains settings for the Gemini REST backend.
//   - BaseURL: scheme and host of the generative-language API
//   - APIVersion: path segment before /models (v1beta)
//   - Model: the single model identifier used for every call
//   - Timeout: request timeout in seconds
type Config struct {
	BaseURL    string
	APIVersion string
	Model      string
	Timeout    int
}
