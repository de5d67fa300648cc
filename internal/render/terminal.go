package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/wa-export/internal/parse"
)

const (
	colorReset   = "\033[0m"
	colorMe      = "\033[1;32m" // bold green
	colorOther   = "\033[1;34m" // bold blue
	colorSystem  = "\033[2;35m" // dim magenta for notices
	colorDim     = "\033[2m"
	colorLink    = "\033[4;36m" // underlined cyan
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

type TerminalOptions struct {
	Me    string
	Width int    // wrap width (0 = no wrap)
	Query string // keywords to highlight
	Plain bool   // no ANSI colors
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	for _, term := range strings.Fields(query) {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

type ansiWriter struct {
	b     strings.Builder
	width int
	plain bool
}

func (w *ansiWriter) color(code, s string) string {
	if w.plain {
		return s
	}
	return code + s + colorReset
}

func (w *ansiWriter) line(s string) {
	for _, wl := range wrapLine(s, w.width) {
		w.b.WriteString(wl)
		w.b.WriteString("\n")
	}
}

func (w *ansiWriter) message(m parse.Message, opts TerminalOptions) {
	author := displayAuthor(m)
	code := colorOther
	switch {
	case m.Author == "" || m.Author == parse.SystemAuthor:
		code = colorSystem
	case author == opts.Me:
		code = colorMe
	}
	w.line(fmt.Sprintf("%s %s", w.color(code, author), w.color(colorDim, formatTime(m.Timestamp))))

	b := splitBody(m)
	if b.Text != "" {
		text := b.Text
		if !w.plain {
			text = highlightKeywords(text, opts.Query)
		}
		for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
			w.line(tl)
		}
	}
	for _, u := range b.URLs {
		w.line("  " + w.color(colorLink, u))
	}
	for _, fn := range b.Attachments {
		w.line("  " + w.color(colorDim, "[Anhang: "+fn+"]"))
	}
}

// Terminal renders a whole transcript for a terminal, with a separator line
// per day.
func Terminal(msgs []parse.Message, opts TerminalOptions) string {
	w := &ansiWriter{width: opts.Width, plain: opts.Plain}
	if len(msgs) == 0 {
		return "(empty chat)\n"
	}

	w.line(w.color(colorDim, "--- WhatsApp Chat: "+TitleNames(msgs, opts.Me)+" ---"))

	lastDay := msgs[0].Timestamp
	for i, m := range msgs {
		if i == 0 || !sameDay(lastDay, m.Timestamp) {
			w.line("")
			w.line(w.color(colorDim, "== "+dayLabel(m.Timestamp)+" =="))
			lastDay = m.Timestamp
		}
		w.line("")
		w.message(m, opts)
	}
	return w.b.String()
}

// Message renders a single message with its full date.
func Message(m parse.Message, opts TerminalOptions) string {
	w := &ansiWriter{width: opts.Width, plain: opts.Plain}
	w.line(w.color(colorDim, dayLabel(m.Timestamp)))
	w.message(m, opts)
	return w.b.String()
}
