// Package report turns provider text into typed analysis reports.
//
// Parsing has two pure stages: Unwrap strips an optional code fence and
// Decode strictly decodes and validates the JSON body. Parse composes them
// and turns any failure into an absence signal.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/observability"
)

// fencePattern matches a code fence spanning the whole string, with an
// optional language tag. Group 2 is the body.
var fencePattern = regexp.MustCompile("(?s)^```([\\w+#.-]*)[ \\t]*\\n?(.*?)\\s*```$")

// ParseError reports text that does not decode into the expected report.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", domain.KindParse, e.Err)
}

// Unwrap returns the underlying decode or validation error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches a *domain.Error of kind parse_error.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*domain.Error)
	return ok && t.Kind == domain.KindParse
}

type validator interface {
	Validate() error
}

// Unwrap trims text and, when a fence spans all of it, returns the fence body.
func Unwrap(text string) string {
	trimmed := strings.TrimSpace(text)
	match := fencePattern.FindStringSubmatch(trimmed)
	if match == nil || match[2] == "" {
		return trimmed
	}
	return strings.TrimSpace(match[2])
}

// Decode strictly decodes a single JSON value into T and validates it.
// null, trailing data and out-of-range values are errors.
func Decode[T any](text string) (T, error) {
	var out T

	if strings.TrimSpace(text) == "null" {
		return out, &ParseError{Raw: text, Err: errors.New("null document")}
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := decoder.Decode(&out); err != nil {
		var zero T
		return zero, &ParseError{Raw: text, Err: err}
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		var zero T
		return zero, &ParseError{Raw: text, Err: errors.New("trailing data after JSON value")}
	}

	if v, ok := any(out).(validator); ok {
		if err := v.Validate(); err != nil {
			var zero T
			return zero, &ParseError{Raw: text, Err: err}
		}
	}

	return out, nil
}

// Parse unwraps and decodes text. On failure it logs the raw text and
// returns the zero value and false; it never returns an error.
func Parse[T any](ctx context.Context, text string) (T, bool) {
	out, err := Decode[T](Unwrap(text))
	if err != nil {
		observability.FromContext(ctx).Warn("failed to parse structured response",
			observability.Error(err),
			observability.String("raw_text", text))
		var zero T
		return zero, false
	}
	return out, true
}
