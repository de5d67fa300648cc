package preview

import (
	"net/url"
	"strings"
)

const (
	videoTitle = "YouTube"

	DefaultThumbnailURL = "https://img.youtube.com/vi/%s/hqdefault.jpg"
)

// VideoID returns the YouTube video ID of u, or "" if u is not a YouTube
// video link. Recognized forms are youtu.be/<id>, youtube.com/watch?v=<id>
// and youtube.com/shorts/<id>.
func VideoID(u string) string {
	pu, err := url.Parse(u)
	if err != nil {
		return ""
	}
	host := strings.ToLower(pu.Hostname())

	if host == "youtu.be" || strings.HasSuffix(host, ".youtu.be") {
		id, _, _ := strings.Cut(strings.Trim(pu.Path, "/"), "/")
		return id
	}

	if host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") {
		if v := pu.Query().Get("v"); v != "" {
			return v
		}
		if rest, ok := strings.CutPrefix(pu.Path, "/shorts/"); ok {
			id, _, _ := strings.Cut(rest, "/")
			return id
		}
	}
	return ""
}
