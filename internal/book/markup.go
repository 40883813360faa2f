package book

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// stripMarkup drops anything between angle brackets and collapses
// whitespace runs to a single space. Entities are left as written.
func stripMarkup(markup string) string {
	text := tagPattern.ReplaceAllString(markup, "")
	return strings.Join(strings.Fields(text), " ")
}
