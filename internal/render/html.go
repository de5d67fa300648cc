package render

import (
	"embed"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zuo-Peng/wa-export/internal/parse"
	"github.com/Zuo-Peng/wa-export/internal/preview"
)

//go:embed templates/transcript.html.tmpl templates/transcript.css
var templateFS embed.FS

var (
	transcriptTmpl = template.Must(template.ParseFS(templateFS, "templates/transcript.html.tmpl"))
	transcriptCSS  = mustRead("templates/transcript.css")
)

func mustRead(name string) string {
	data, err := templateFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}

type HTMLOptions struct {
	Me         string
	ChatPath   string
	ExportTime time.Time
	// Previews maps URLs to resolved previews; URLs without entry get none.
	Previews map[string]*preview.Preview
}

type htmlPage struct {
	Title      string
	CSS        template.CSS
	Source     string
	ExportTime string
	Count      int
	Items      []htmlItem
}

type htmlItem struct {
	Day     string // set on the first message of a day
	Side    string // "me" or "other"
	Author  string
	Lines   []string
	Preview *htmlPreview
	URLs    []string
	Media   []template.URL
	Time    string
	Date    string
}

type htmlPreview struct {
	URL         string
	Title       string
	Description string
	Image       template.URL
}

// HTML writes a self-contained chat page. Image attachments found next to
// the chat file and preview images are inlined as data URLs.
func HTML(w io.Writer, msgs []parse.Message, opts HTMLOptions) error {
	page := htmlPage{
		Title:      TitleNames(msgs, opts.Me),
		CSS:        template.CSS(transcriptCSS),
		Source:     filepath.Base(opts.ChatPath),
		ExportTime: opts.ExportTime.Format("02.01.2006 15:04:05"),
		Count:      len(msgs),
	}
	dir := filepath.Dir(opts.ChatPath)

	var lastDay time.Time
	for i, m := range msgs {
		item := htmlItem{
			Author: displayAuthor(m),
			Side:   "other",
			Time:   formatTime(m.Timestamp),
			Date:   formatDate(m.Timestamp),
		}
		if i == 0 || !sameDay(lastDay, m.Timestamp) {
			item.Day = dayLabel(m.Timestamp)
			lastDay = m.Timestamp
		}
		if item.Author == opts.Me {
			item.Side = "me"
		}

		b := splitBody(m)
		if b.Text != "" {
			item.Lines = strings.Split(b.Text, "\n")
		}
		item.URLs = b.URLs
		if u := parse.PreviewURL(m.Text); u != "" {
			if p := opts.Previews[u]; p != nil {
				item.Preview = &htmlPreview{
					URL:         u,
					Title:       p.Title,
					Description: p.Description,
					Image:       template.URL(p.DataURL()),
				}
				if item.Preview.Title == "" {
					item.Preview.Title = u
				}
			}
		}
		for _, fn := range b.Attachments {
			if data := AttachmentDataURL(dir, fn); data != "" {
				item.Media = append(item.Media, template.URL(data))
			}
		}

		page.Items = append(page.Items, item)
	}

	return transcriptTmpl.Execute(w, page)
}
