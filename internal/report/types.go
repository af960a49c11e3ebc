package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const maxScore = 100

// ScoredSuggestion rates one element and proposes a replacement.
type ScoredSuggestion struct {
	Score      int    `json:"score"`
	Suggestion string `json:"suggestion"`
	Feedback   string `json:"feedback"`
}

// UnmarshalJSON requires every field.
func (s *ScoredSuggestion) UnmarshalJSON(data []byte) error {
	type plain ScoredSuggestion
	return decodeRequired(data, (*plain)(s), "score", "suggestion", "feedback")
}

// ScoredFeedback rates one aspect of a post.
type ScoredFeedback struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// UnmarshalJSON requires every field.
func (s *ScoredFeedback) UnmarshalJSON(data []byte) error {
	type plain ScoredFeedback
	return decodeRequired(data, (*plain)(s), "score", "feedback")
}

// SEOReport is the result of an SEO analysis.
type SEOReport struct {
	Title           ScoredSuggestion `json:"title"`
	MetaDescription ScoredSuggestion `json:"metaDescription"`
	Readability     ScoredFeedback   `json:"readability"`
	KeywordDensity  ScoredFeedback   `json:"keywordDensity"`
}

// UnmarshalJSON requires every section.
func (r *SEOReport) UnmarshalJSON(data []byte) error {
	type plain SEOReport
	return decodeRequired(data, (*plain)(r), "title", "metaDescription", "readability", "keywordDensity")
}

// Validate checks every score is within 0-100.
func (r SEOReport) Validate() error {
	return errors.Join(
		checkScore("title.score", r.Title.Score),
		checkScore("metaDescription.score", r.MetaDescription.Score),
		checkScore("readability.score", r.Readability.Score),
		checkScore("keywordDensity.score", r.KeywordDensity.Score),
	)
}

// Volume is an estimated search volume bucket.
type Volume string

// Search volume buckets.
const (
	VolumeLow    Volume = "Low"
	VolumeMedium Volume = "Medium"
	VolumeHigh   Volume = "High"
)

// ParseVolume matches a bucket name case-insensitively.
func ParseVolume(s string) (Volume, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return VolumeLow, nil
	case "medium":
		return VolumeMedium, nil
	case "high":
		return VolumeHigh, nil
	default:
		return "", fmt.Errorf("unknown volume %q", s)
	}
}

// UnmarshalJSON accepts any casing of the bucket names.
func (v *Volume) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseVolume(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// KeywordSuggestion is one researched keyword.
type KeywordSuggestion struct {
	Keyword    string `json:"keyword"`
	Volume     Volume `json:"volume"`
	Difficulty int    `json:"difficulty"`
}

// UnmarshalJSON requires every field.
func (k *KeywordSuggestion) UnmarshalJSON(data []byte) error {
	type plain KeywordSuggestion
	return decodeRequired(data, (*plain)(k), "keyword", "volume", "difficulty")
}

// KeywordList is the result of keyword research.
type KeywordList []KeywordSuggestion

// Validate checks each entry has a keyword, a known volume and a 0-100 difficulty.
func (l KeywordList) Validate() error {
	var errs []error
	for i, suggestion := range l {
		if strings.TrimSpace(suggestion.Keyword) == "" {
			errs = append(errs, fmt.Errorf("[%d].keyword is empty", i))
		}
		if _, err := ParseVolume(string(suggestion.Volume)); err != nil {
			errs = append(errs, fmt.Errorf("[%d].volume: %w", i, err))
		}
		errs = append(errs, checkScore(fmt.Sprintf("[%d].difficulty", i), suggestion.Difficulty))
	}
	return errors.Join(errs...)
}

// KeywordFrequency counts occurrences of a keyword in a post.
type KeywordFrequency struct {
	Keyword   string `json:"keyword"`
	Frequency int    `json:"frequency"`
}

// UnmarshalJSON requires every field.
func (k *KeywordFrequency) UnmarshalJSON(data []byte) error {
	type plain KeywordFrequency
	return decodeRequired(data, (*plain)(k), "keyword", "frequency")
}

// HeadingCounts counts headings per level.
type HeadingCounts struct {
	H1 int `json:"h1"`
	H2 int `json:"h2"`
	H3 int `json:"h3"`
}

// UnmarshalJSON requires every level.
func (h *HeadingCounts) UnmarshalJSON(data []byte) error {
	type plain HeadingCounts
	return decodeRequired(data, (*plain)(h), "h1", "h2", "h3")
}

// SummaryReport is the result of a post summary.
type SummaryReport struct {
	SEOScore           int                `json:"seoScore"`
	Keywords           []KeywordFrequency `json:"keywords"`
	Readability        ScoredFeedback     `json:"readability"`
	Structure          HeadingCounts      `json:"structure"`
	WordCount          int                `json:"wordCount"`
	Tone               string             `json:"tone"`
	ActionableInsights []string           `json:"actionableInsights"`
}

// UnmarshalJSON requires every field. Lists may be empty but not absent.
func (r *SummaryReport) UnmarshalJSON(data []byte) error {
	type plain SummaryReport
	return decodeRequired(data, (*plain)(r),
		"seoScore", "keywords", "readability", "structure", "wordCount", "tone", "actionableInsights")
}

// Validate checks scores are within 0-100 and counts are non-negative.
func (r SummaryReport) Validate() error {
	errs := []error{
		checkScore("seoScore", r.SEOScore),
		checkScore("readability.score", r.Readability.Score),
		checkCount("structure.h1", r.Structure.H1),
		checkCount("structure.h2", r.Structure.H2),
		checkCount("structure.h3", r.Structure.H3),
		checkCount("wordCount", r.WordCount),
	}
	for i, keyword := range r.Keywords {
		errs = append(errs, checkCount(fmt.Sprintf("keywords[%d].frequency", i), keyword.Frequency))
	}
	return errors.Join(errs...)
}

// decodeRequired decodes a JSON object into v after checking that every
// named field is present and not null.
func decodeRequired(data []byte, v any, fields ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("expected an object, got null")
	}

	var missing []string
	for _, field := range fields {
		value, ok := raw[field]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	return json.Unmarshal(data, v)
}

func checkScore(field string, score int) error {
	if score < 0 || score > maxScore {
		return fmt.Errorf("%s %d out of range 0-%d", field, score, maxScore)
	}
	return nil
}

func checkCount(field string, count int) error {
	if count < 0 {
		return fmt.Errorf("%s %d is negative", field, count)
	}
	return nil
}
