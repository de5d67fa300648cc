package render

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zuo-Peng/wa-export/internal/parse"
)

// AttachmentDataURL reads an attachment next to the chat file and returns it
// as an inline data URL. Anything missing, unreadable or not an image
// yields "".
func AttachmentDataURL(dir, name string) string {
	mime := parse.GuessMIME(name)
	if !strings.HasPrefix(mime, "image/") {
		return ""
	}
	path := filepath.Join(dir, filepath.Clean("/"+name))
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
