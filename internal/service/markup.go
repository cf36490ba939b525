package service

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripTags removes HTML markup and entities the feed embeds in room titles.
func stripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}
