package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/wa-export/internal/parse"
)

const unknownAuthor = "Unbekannt"

var weekdays = map[time.Weekday]string{
	time.Monday:    "Montag",
	time.Tuesday:   "Dienstag",
	time.Wednesday: "Mittwoch",
	time.Thursday:  "Donnerstag",
	time.Friday:    "Freitag",
	time.Saturday:  "Samstag",
	time.Sunday:    "Sonntag",
}

func formatDate(t time.Time) string {
	return fmt.Sprintf("%02d.%02d.%04d", t.Day(), t.Month(), t.Year())
}

func formatTime(t time.Time) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// dayLabel formats a day separator, e.g. "Freitag, 05.01.2024".
func dayLabel(t time.Time) string {
	return weekdays[t.Weekday()] + ", " + formatDate(t)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func displayAuthor(m parse.Message) string {
	if a := parse.Normalize(m.Author); a != "" {
		return a
	}
	return unknownAuthor
}

// participants returns the distinct non-empty authors in first-seen order.
func participants(msgs []parse.Message) []string {
	var out []string
	seen := make(map[string]bool)
	for _, a := range parse.Authors(msgs) {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// TitleNames builds the "me ↔ others" heading of a transcript.
func TitleNames(msgs []parse.Message, me string) string {
	var others []string
	for _, a := range participants(msgs) {
		if a != me {
			others = append(others, a)
		}
	}
	if len(others) == 0 {
		return me + " ↔ Chat"
	}
	return me + " ↔ " + strings.Join(others, ", ")
}

// body is the per-message content shared by all renderers.
type body struct {
	Text        string // attachment markers removed
	Attachments []string
	URLs        []string
}

func splitBody(m parse.Message) body {
	text := parse.StripAttachments(m.Text)
	return body{
		Text:        text,
		Attachments: parse.FindAttachments(m.Text),
		URLs:        parse.ExtractURLs(text),
	}
}
