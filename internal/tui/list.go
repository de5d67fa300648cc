package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/wa-export/internal/parse"
	"github.com/Zuo-Peng/wa-export/internal/search"
)

// linesPerItem is the number of terminal lines each result occupies.
const linesPerItem = 2

// renderList renders the left panel: matching messages with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		return styleEmpty.Width(width).Height(height).Render("No messages")
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatResultLine(r, m.me, width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if runewidth.StringWidth(s) > max {
		return runewidth.Truncate(s, max, "")
	}
	return s
}

// formatResultLine formats a single result as two lines:
//
//	line 1: [>] MM-DD HH:MM  author
//	line 2:    snippet (dimmed)
func formatResultLine(r search.Result, me string, width int, selected bool) []string {
	author := r.Author
	style := styleAuthorOther
	switch {
	case author == "" || author == parse.SystemAuthor:
		style = styleAuthorSystem
	case author == me:
		style = styleAuthorMe
	}
	date := r.Timestamp.Format("01-02 15:04")
	author = truncate(author, width-2-len(date)-1)

	line1 := fmt.Sprintf("%s %s", styleTimestamp.Render(date), style.Render(author))
	if selected {
		line1 = styleCursor.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
	snippet = strings.ReplaceAll(snippet, ">>>", "")
	snippet = strings.ReplaceAll(snippet, "<<<", "")
	snippet = truncate(snippet, width-4)
	line2 := "    " + styleSnippet.Render(snippet)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
