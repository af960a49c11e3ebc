// Package composer builds prompts for each writing task and hands them to
// the generation proxy. Structured tasks are decoded by the report package.
package composer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/editor"
	"github.com/davidbz/quill/internal/observability"
	"github.com/davidbz/quill/internal/report"
)

// User-facing messages.
const (
	MissingKeyMessage    = "AI service is unavailable. Please ensure the API Key is configured in the plugin settings."
	TopicRequiredMessage = "Please enter a topic or instruction."
	GenericErrorMessage  = "An error occurred. Please try again."
)

// Errors returned in an Outcome without contacting the proxy.
var (
	ErrAPIKeyMissing = &domain.Error{
		Kind:    domain.KindConfiguration,
		Message: MissingKeyMessage,
		Status:  http.StatusBadRequest,
	}
	ErrTopicRequired = &domain.Error{
		Kind:    domain.KindInvalidRequest,
		Message: TopicRequiredMessage,
		Status:  http.StatusBadRequest,
	}
)

// Generator sends a prompt to the proxy and returns the raw text.
type Generator interface {
	Generate(ctx context.Context, prompt string, config domain.GenerationConfig) (string, error)
}

// CredentialStatus reports whether the proxy has a provider key.
type CredentialStatus interface {
	APIKeyConfigured(ctx context.Context) (bool, error)
}

// Outcome is the result of a content generation: text or an error, never both.
type Outcome struct {
	Text string
	Err  error
}

// OK reports whether the generation succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Message returns what the user should see: the text on success, the
// classified message on a known failure, a generic message otherwise.
func (o Outcome) Message() string {
	if o.Err == nil {
		return o.Text
	}
	if classified, ok := domain.AsError(o.Err); ok && classified.Message != "" {
		return classified.Message
	}
	return GenericErrorMessage
}

// Composer turns writing tasks into proxy calls. The credential status is
// read once, on first use, and reused for the life of the Composer.
type Composer struct {
	generator Generator
	status    CredentialStatus

	mu         sync.Mutex
	configured *bool
}

// New creates a Composer.
func New(generator Generator, status CredentialStatus) *Composer {
	return &Composer{
		generator: generator,
		status:    status,
	}
}

// GenerateContent renders the template for contentType and returns the
// provider text. Empty topics and a missing key short-circuit locally.
func (c *Composer) GenerateContent(
	ctx context.Context,
	topic string,
	contentType ContentType,
	creativity CreativityLevel,
) Outcome {
	logger := observability.FromContext(ctx)

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Outcome{Err: ErrTopicRequired}
	}
	if contentType == nil {
		contentType = Introduction{}
	}

	if !c.keyConfigured(ctx) {
		return Outcome{Err: ErrAPIKeyMissing}
	}

	logger.Debug("generating content",
		observability.String("content_type", contentType.Name()),
		observability.String("creativity", creativity.String()))

	text, err := c.generator.Generate(ctx, contentType.Prompt(topic), creativity.Config())
	if err != nil {
		logger.Warn("content generation failed", observability.Error(err))
		return Outcome{Err: err}
	}

	return Outcome{Text: text}
}

// AnalyzeSEO scores content against a focus keyword.
func (c *Composer) AnalyzeSEO(ctx context.Context, content, keyword string) (*report.SEOReport, bool) {
	if strings.TrimSpace(content) == "" || strings.TrimSpace(keyword) == "" {
		return nil, false
	}

	prompt := fmt.Sprintf(
		`Analyze the following blog post content for SEO optimization, focusing on the keyword "%s". `+
			`Content: --- %s --- Provide a detailed analysis and return the output as a single JSON object `+
			`with the following structure: {"title": { "score": <0-100>, "suggestion": "<new title>", `+
			`"feedback": "<detailed feedback>" }, "metaDescription": { "score": <0-100>, `+
			`"suggestion": "<new meta>", "feedback": "<detailed feedback>" }, "readability": `+
			`{ "score": <0-100>, "feedback": "<detailed feedback>" }, "keywordDensity": `+
			`{ "score": <0-100>, "feedback": "<detailed feedback>" }}`,
		strings.TrimSpace(keyword), content)

	seo, ok := analyze[report.SEOReport](ctx, c, "seo", prompt)
	if !ok {
		return nil, false
	}
	return &seo, true
}

// ResearchKeywords suggests related keywords for topic.
func (c *Composer) ResearchKeywords(ctx context.Context, topic string) (report.KeywordList, bool) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, false
	}

	prompt := fmt.Sprintf(
		`Act as an SEO expert. For the topic "%s", generate a list of 10 related keywords. `+
			`For each keyword, provide an estimated search volume (Low, Medium, High) and a difficulty `+
			`score (0-100). Return the result as a single JSON array with this structure: `+
			`[{"keyword": "<keyword>", "volume": "<Low/Medium/High>", "difficulty": <0-100>}, ...]`,
		topic)

	return analyze[report.KeywordList](ctx, c, "keywords", prompt)
}

// SummarizePost produces an overview report for content.
func (c *Composer) SummarizePost(ctx context.Context, content string) (*report.SummaryReport, bool) {
	if strings.TrimSpace(content) == "" {
		return nil, false
	}

	prompt := fmt.Sprintf(
		`Analyze the following blog post content. Return a single, well-formed JSON object with the `+
			`exact structure specified: {"seoScore": <0-100>, "keywords": [{"keyword": "<string>", `+
			`"frequency": <number>}], "readability": {"score": <0-100>, "feedback": "<string>"}, `+
			`"structure": {"h1": <number>, "h2": <number>, "h3": <number>}, "wordCount": <number>, `+
			`"tone": "<string>", "actionableInsights": ["<string>"]}. Content: --- %s ---`,
		content)

	summary, ok := analyze[report.SummaryReport](ctx, c, "summary", prompt)
	if !ok {
		return nil, false
	}
	return &summary, true
}

// AnalyzeDocumentSEO scores the text of doc against a focus keyword.
func (c *Composer) AnalyzeDocumentSEO(ctx context.Context, doc editor.Editor, keyword string) (*report.SEOReport, bool) {
	content, ok := documentText(ctx, doc)
	if !ok {
		return nil, false
	}
	return c.AnalyzeSEO(ctx, content, keyword)
}

// SummarizeDocument produces an overview report for the text of doc.
func (c *Composer) SummarizeDocument(ctx context.Context, doc editor.Editor) (*report.SummaryReport, bool) {
	content, ok := documentText(ctx, doc)
	if !ok {
		return nil, false
	}
	return c.SummarizePost(ctx, content)
}

// Accept inserts a successful outcome into doc, one block per paragraph,
// and returns the number of blocks inserted. A failed outcome is returned
// as its error and doc is not touched.
func Accept(ctx context.Context, doc editor.Editor, outcome Outcome) (int, error) {
	if !outcome.OK() {
		return 0, outcome.Err
	}

	blocks := editor.SplitBlocks(outcome.Text)
	if len(blocks) == 0 {
		return 0, nil
	}
	if err := doc.InsertBlocks(ctx, blocks); err != nil {
		return 0, fmt.Errorf("failed to insert content: %w", err)
	}
	return len(blocks), nil
}

func documentText(ctx context.Context, doc editor.Editor) (string, bool) {
	content, err := doc.ReadDocumentText(ctx)
	if err != nil {
		observability.FromContext(ctx).Warn("failed to read document", observability.Error(err))
		return "", false
	}
	return content, true
}

// analyze runs a JSON-constrained prompt and parses the answer. Every
// failure collapses to absence.
func analyze[T any](ctx context.Context, c *Composer, task, prompt string) (T, bool) {
	var zero T
	logger := observability.FromContext(ctx).With(observability.String("task", task))

	if !c.keyConfigured(ctx) {
		logger.Debug("analysis skipped: api key not configured")
		return zero, false
	}

	text, err := c.generator.Generate(ctx, prompt, domain.GenerationConfig{
		domain.ConfigResponseMimeType: domain.MimeTypeJSON,
	})
	if err != nil {
		logger.Warn("analysis request failed", observability.Error(err))
		return zero, false
	}

	return report.Parse[T](ctx, text)
}

// keyConfigured asks the proxy whether a key is set and remembers the
// answer. When the status cannot be read the call proceeds, nothing is
// remembered, and the proxy reports the real state.
func (c *Composer) keyConfigured(ctx context.Context) bool {
	if c.status == nil {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.configured != nil {
		return *c.configured
	}

	configured, err := c.status.APIKeyConfigured(ctx)
	if err != nil {
		observability.FromContext(ctx).Warn("failed to read credential status", observability.Error(err))
		return true
	}
	c.configured = &configured
	return configured
}
