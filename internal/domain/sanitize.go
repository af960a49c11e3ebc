package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizePrompt drops invalid UTF-8 and control characters other than
// newlines and tabs. Surrounding whitespace is kept.
func NormalizePrompt(prompt string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == utf8.RuneError:
			return -1
		case r == '\n' || r == '\t':
			return r
		case r == '\r':
			return -1
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, strings.ToValidUTF8(prompt, ""))
}

// NormalizeAPIKey strips whitespace and every control character from a key
// submitted by an administrator.
func NormalizeAPIKey(key string) string {
	key = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(key, ""))
	return key
}
