package preview

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// decodeBody returns prefix as UTF-8. A charset from the Content-Type, a BOM
// or an early <meta charset> is honoured; otherwise a prefix that is valid
// UTF-8 is taken as UTF-8 instead of the windows-1252 default.
func decodeBody(prefix []byte, contentType string) io.Reader {
	enc, _, certain := charset.DetermineEncoding(prefix, contentType)
	if trimmed := trimPartialRune(prefix); !certain && utf8.Valid(trimmed) {
		return bytes.NewReader(trimmed)
	}
	return transform.NewReader(bytes.NewReader(prefix), enc.NewDecoder())
}

// trimPartialRune drops a multi-byte sequence cut off by the read limit.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			break
		}
	}
	return b
}

// parseMeta scans at most limit bytes of an HTML document for <meta> tags
// and the <title> element. Keys are the lowercased property or name
// attribute; later tags overwrite earlier ones. A meta "title" wins over
// the <title> element.
func parseMeta(r io.Reader, contentType string, limit int64) map[string]string {
	out := make(map[string]string)
	prefix, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil && len(prefix) == 0 {
		return out
	}

	var title string
	inTitle := false

	z := html.NewTokenizer(decodeBody(prefix, contentType))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if _, ok := out["title"]; !ok && title != "" {
				out["title"] = title
			}
			return out

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "meta":
				key, content := metaPair(tok.Attr)
				if key != "" && content != "" {
					out[key] = content
				}
			case "title":
				inTitle = title == ""
			}

		case html.EndTagToken:
			if tok := z.Token(); tok.Data == "title" {
				inTitle = false
			}

		case html.TextToken:
			if inTitle {
				title += string(z.Text())
			}
		}
	}
}

func metaPair(attrs []html.Attribute) (key, content string) {
	var prop, name string
	for _, a := range attrs {
		v := strings.TrimSpace(a.Val)
		switch strings.ToLower(a.Key) {
		case "property":
			prop = strings.ToLower(v)
		case "name":
			name = strings.ToLower(v)
		case "content":
			content = v
		}
	}
	if prop != "" {
		return prop, content
	}
	return name, content
}

func firstOf(m map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(m[k]); v != "" {
			return v
		}
	}
	return ""
}
