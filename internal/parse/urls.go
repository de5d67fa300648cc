package parse

import (
	"regexp"
	"strings"
)

var urlRe = regexp.MustCompile(`(?i)https?://[^\s<>\]"]+`)

const urlTrailing = `).,;:!?]"'`

// ExtractURLs returns the distinct http(s) URLs in text in first-seen order,
// without trailing sentence punctuation.
func ExtractURLs(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range urlRe.FindAllString(text, -1) {
		u := strings.TrimRight(m, urlTrailing)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// PreviewURL returns the URL a message's link preview is shown for: the
// first URL outside attachment markers, or "".
func PreviewURL(text string) string {
	if urls := ExtractURLs(StripAttachments(text)); len(urls) > 0 {
		return urls[0]
	}
	return ""
}
