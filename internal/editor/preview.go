package editor

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Preview renders markdown as HTML. If rendering fails the escaped text is
// returned with line breaks turned into <br /> tags.
func Preview(source string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return fallbackPreview(source)
	}
	return buf.String()
}

func fallbackPreview(source string) string {
	return strings.ReplaceAll(html.EscapeString(source), "\n", "<br />")
}
