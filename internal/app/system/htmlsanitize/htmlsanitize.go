// Package htmlsanitize reduces user-supplied text to plain text.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops every element; the contents of script and style are dropped
// with them.
var strict = bluemonday.StrictPolicy()

// PlainText strips all HTML from s and trims surrounding whitespace.
// Entities the policy escaped are decoded again since the result is stored
// and served as JSON text, not HTML.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
