package composer

import (
	"fmt"
	"strconv"
	"strings"
)

// FullPost defaults and bounds.
const (
	DefaultWordCount      = 1000
	DefaultKeywordDensity = 1.0
	DefaultSections       = 4
	DefaultParagraphs     = 3

	minSections   = 1
	maxSections   = 6
	minParagraphs = 1
	maxParagraphs = 4
	maxDensity    = 2.0
)

// ContentType selects a prompt template. Each variant carries exactly the
// options its template needs.
type ContentType interface {
	// Name returns the identifier used on the command line.
	Name() string
	// Prompt renders the template for topic.
	Prompt(topic string) string

	contentType()
}

// TitleSuggestions asks for five short titles.
type TitleSuggestions struct{}

// Outline asks for a two-level outline.
type Outline struct{}

// Introduction asks for a single hook paragraph.
type Introduction struct{}

// FullPost asks for a complete markdown post.
type FullPost struct {
	WordCount            int
	Keywords             []string
	KeywordDensity       float64
	Sections             int
	ParagraphsPerSection int
}

// DefaultFullPost returns a FullPost with the panel defaults.
func DefaultFullPost() FullPost {
	return FullPost{
		WordCount:            DefaultWordCount,
		KeywordDensity:       DefaultKeywordDensity,
		Sections:             DefaultSections,
		ParagraphsPerSection: DefaultParagraphs,
	}
}

func (TitleSuggestions) Name() string { return "titles" }
func (Outline) Name() string          { return "outline" }
func (Introduction) Name() string     { return "intro" }
func (FullPost) Name() string         { return "full" }

func (TitleSuggestions) contentType() {}
func (Outline) contentType()          {}
func (Introduction) contentType()     {}
func (FullPost) contentType()         {}

func (TitleSuggestions) Prompt(topic string) string {
	return fmt.Sprintf(
		`Generate 5 compelling, SEO-friendly blog post titles for the topic: "%s". Keep titles under 60 characters.`,
		topic)
}

func (Outline) Prompt(topic string) string {
	return fmt.Sprintf(
		`Create a detailed, SEO-optimized blog post outline for the topic: "%s". Include H2 and H3 headings.`,
		topic)
}

func (Introduction) Prompt(topic string) string {
	return fmt.Sprintf(
		`Write an engaging introduction paragraph for a blog post about "%s". `+
			`Hook the reader in and state the post's purpose.`,
		topic)
}

func (f FullPost) Prompt(topic string) string {
	opts := f.Normalized()

	var b strings.Builder
	fmt.Fprintf(&b,
		`Write a complete, well-structured, and SEO-optimized blog post on the topic: "%s". `+
			`Use markdown for formatting. Aim for approximately %d words. `+
			`It must have exactly %d main sections (H2s). Each section should contain around %d paragraphs.`,
		topic, opts.WordCount, opts.Sections, opts.ParagraphsPerSection)

	if len(opts.Keywords) > 0 {
		fmt.Fprintf(&b,
			` Focus on naturally incorporating these keywords: "%s" with a target density of about %s%%.`,
			strings.Join(opts.Keywords, ", "),
			strconv.FormatFloat(opts.KeywordDensity, 'f', -1, 64))
	}

	return b.String()
}

// Normalized applies defaults and clamps every option into its range.
// Blank keywords are dropped.
func (f FullPost) Normalized() FullPost {
	out := FullPost{
		WordCount:            f.WordCount,
		KeywordDensity:       min(f.KeywordDensity, maxDensity),
		Sections:             f.Sections,
		ParagraphsPerSection: f.ParagraphsPerSection,
	}

	if out.WordCount <= 0 {
		out.WordCount = DefaultWordCount
	}
	if out.KeywordDensity <= 0 {
		out.KeywordDensity = DefaultKeywordDensity
	}
	if out.Sections == 0 {
		out.Sections = DefaultSections
	}
	if out.ParagraphsPerSection == 0 {
		out.ParagraphsPerSection = DefaultParagraphs
	}
	out.Sections = min(max(out.Sections, minSections), maxSections)
	out.ParagraphsPerSection = min(max(out.ParagraphsPerSection, minParagraphs), maxParagraphs)

	for _, keyword := range f.Keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			out.Keywords = append(out.Keywords, keyword)
		}
	}

	return out
}

// SplitKeywords splits a comma-separated keyword list.
func SplitKeywords(s string) []string {
	var keywords []string
	for _, keyword := range strings.Split(s, ",") {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}

// ParseContentType maps a name to a variant. FullPost gets the panel defaults.
func ParseContentType(name string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "titles", "title":
		return TitleSuggestions{}, nil
	case "outline":
		return Outline{}, nil
	case "intro", "introduction":
		return Introduction{}, nil
	case "full", "fullpost", "full-post":
		return DefaultFullPost(), nil
	default:
		return nil, fmt.Errorf("unknown content type %q", name)
	}
}
