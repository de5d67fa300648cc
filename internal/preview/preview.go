// Package preview resolves link previews for URLs found in chat messages.
// Resolution is best effort: any network or decoding problem yields no
// preview (or a preview without image) and is never reported as an error.
package preview

import "encoding/base64"

type Image struct {
	MIME string
	Data []byte
}

type Preview struct {
	URL         string
	Title       string
	Description string
	Image       *Image // nil when no image could be fetched
}

// DataURL returns the image as an inline data URL, or "" without image.
func (p *Preview) DataURL() string {
	if p == nil || p.Image == nil {
		return ""
	}
	return "data:" + p.Image.MIME + ";base64," + base64.StdEncoding.EncodeToString(p.Image.Data)
}
