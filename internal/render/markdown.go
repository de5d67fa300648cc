package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Zuo-Peng/wa-export/internal/parse"
)

type MarkdownOptions struct {
	Me         string
	ChatPath   string
	ExportTime time.Time
}

// Markdown writes a plain transcript. Attachments stay file references
// relative to the chat file.
func Markdown(w io.Writer, msgs []parse.Message, opts MarkdownOptions) error {
	bw := bufio.NewWriter(w)
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("# WhatsApp Chat: %s", TitleNames(msgs, opts.Me))
	add("")
	add("- Quelle: %s", opts.ChatPath)
	add("- Export (file mtime): %s", opts.ExportTime.Format("02.01.2006 15:04:05"))
	add("- Nachrichten: %d", len(msgs))
	add("")

	var lastDay time.Time
	for i, m := range msgs {
		if i == 0 || !sameDay(lastDay, m.Timestamp) {
			add("## %s", dayLabel(m.Timestamp))
			add("")
			lastDay = m.Timestamp
		}

		b := splitBody(m)
		add("**%s**  ", displayAuthor(m))
		add("*%s / %s*  ", formatTime(m.Timestamp), formatDate(m.Timestamp))
		if b.Text != "" {
			add("%s", b.Text)
		}
		for _, u := range b.URLs {
			add("- %s", u)
		}
		for _, fn := range b.Attachments {
			add("![Anhang](%s)", fn)
		}
		add("")
	}

	if _, err := bw.WriteString(strings.Join(lines, "\n")); err != nil {
		return err
	}
	return bw.Flush()
}
