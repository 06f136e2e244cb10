package utils

import (
	"regexp"
	"strings"
)

// urlPattern matches an optional scheme, optional www, dot-separated host
// labels ending in an alphabetic TLD, an optional port and an optional path
var urlPattern = regexp.MustCompile(
	`(?i)\b(?:https?://)?(?:www\.)?(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,24}(?::\d{2,5})?(?:[/?#][^\s<>"]*)?`,
)

// ExtractURLs returns every URL-like substring of text in order of appearance
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, ".,;:!?)]}'")
		if m != "" {
			urls = append(urls, m)
		}
	}
	return urls
}

// PrimaryURL returns the first URL in text, the only one that is scanned
func PrimaryURL(text string) (string, bool) {
	urls := ExtractURLs(text)
	if len(urls) == 0 {
		return "", false
	}
	return urls[0], true
}
