package search

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/Zuo-Peng/wa-export/internal/parse"
)

type Result struct {
	Index     int // position in the message slice
	Timestamp time.Time
	Author    string
	Snippet   string
}

type Options struct {
	Query  string
	Author string    // "" = all
	Since  time.Time // zero = no filter
	Limit  int       // 0 = no limit
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := -1
	if len(qRunes) > 0 {
		fq := fold(query)
		for i := 0; i+len(qRunes) <= len(runes); i++ {
			if fold(string(runes[i:i+len(qRunes)])) == fq {
				runePos = i
				break
			}
		}
	}
	if runePos < 0 {
		// no match, return head
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search returns the messages whose text or author contains the query,
// ignoring case, in chat order. An empty query matches every message.
func Search(msgs []parse.Message, opts Options) []Result {
	query := strings.TrimSpace(opts.Query)
	fq := fold(query)
	author := parse.Normalize(opts.Author)

	var results []Result
	for i, m := range msgs {
		if author != "" && fold(m.Author) != fold(author) {
			continue
		}
		if !opts.Since.IsZero() && m.Timestamp.Before(opts.Since) {
			continue
		}
		if fq != "" && !strings.Contains(fold(m.Text), fq) && !strings.Contains(fold(m.Author), fq) {
			continue
		}
		results = append(results, Result{
			Index:     i,
			Timestamp: m.Timestamp,
			Author:    m.Author,
			Snippet:   makeSnippet(strings.ReplaceAll(m.Text, "\n", " "), query, 30),
		})
		if opts.Limit > 0 && len(results) >= opts.Limit {
			break
		}
	}
	return results
}
