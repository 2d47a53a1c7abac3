package derive

import (
	"html"
	"strings"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
)

const (
	excerptRuneLimit   = 160
	metaTitleRuneLimit = 60
	wordsPerMinute     = 200
)

var stripPolicy = bluemonday.StrictPolicy()

// Slug builds a URL-safe slug from a human-readable name.
func Slug(name string) string {
	return slug.Make(name)
}

// StripTags removes all markup and returns the plain text content.
func StripTags(content string) string {
	return html.UnescapeString(stripPolicy.Sanitize(content))
}

// Excerpt returns the first 160 characters of the stripped content.
func Excerpt(content string) string {
	text := strings.TrimSpace(StripTags(content))
	runes := []rune(text)
	if len(runes) > excerptRuneLimit {
		return string(runes[:excerptRuneLimit])
	}
	return text
}

// MetaTitle truncates a title to the 60 characters search engines display.
func MetaTitle(title string) string {
	runes := []rune(title)
	if len(runes) > metaTitleRuneLimit {
		return string(runes[:metaTitleRuneLimit])
	}
	return title
}

// ReadingTime estimates reading minutes at 200 words per minute, never below 1.
func ReadingTime(content string) int {
	words := len(strings.Fields(StripTags(content)))
	minutes := words / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// SanitizeComment strips comment content down to plain text before it is
// stored, so no markup survives moderation.
func SanitizeComment(content string) string {
	return strings.TrimSpace(StripTags(content))
}
