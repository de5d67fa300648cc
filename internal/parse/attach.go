package parse

import (
	"regexp"
	"strings"
)

var attachRe = regexp.MustCompile(`(?i)<\s*Anhang:\s*([^>]+?)\s*>`)

// FindAttachments returns the file names of all <Anhang: name> markers.
func FindAttachments(text string) []string {
	var out []string
	for _, m := range attachRe.FindAllStringSubmatch(text, -1) {
		if name := strings.TrimSpace(m[1]); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// StripAttachments removes attachment markers and trims the remaining text.
func StripAttachments(text string) string {
	return strings.TrimSpace(attachRe.ReplaceAllString(text, ""))
}

// GuessMIME derives an image MIME type from a file name extension.
func GuessMIME(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".jpg"), strings.HasSuffix(n, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(n, ".png"):
		return "image/png"
	case strings.HasSuffix(n, ".gif"):
		return "image/gif"
	case strings.HasSuffix(n, ".webp"):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
