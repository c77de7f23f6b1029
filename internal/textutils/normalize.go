// Package textutils provides the text cleanup primitives used by every
// downstream pipeline stage.
package textutils

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	)
)

// Normalize collapses all whitespace runs to single spaces and trims the
// ends. It is idempotent and never fails; malformed input degrades to
// best-effort output.
func Normalize(raw string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " "))
}

// StripMarkup removes tag-like spans and decodes a fixed set of named
// character entities, then normalizes the result.
func StripMarkup(raw string) string {
	stripped := tagRe.ReplaceAllString(raw, " ")
	return Normalize(entityReplacer.Replace(stripped))
}
