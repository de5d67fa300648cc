package parse

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseFile reads a whole chat export and parses it.
func ParseFile(filePath string) (*ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	result, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}
	result.Meta = FileMeta{
		FilePath: filePath,
		Mtime:    info.ModTime(),
		Size:     info.Size(),
	}
	return result, nil
}

// Parse reads r to the end and turns it into messages. Invalid UTF-8 is
// replaced, never rejected; the only error is a failing read.
func Parse(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data)), nil
}

// ParseString parses an in-memory export.
func ParseString(s string) *ParseResult {
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")

	result := &ParseResult{Stats: Stats{Headers: make(map[Dialect]int)}}
	if s == "" {
		return result
	}

	// open is the index of the message continuation lines attach to, -1 until
	// the first header.
	open := -1
	for i, raw := range strings.Split(s, "\n") {
		result.Stats.Lines++
		line := strings.TrimRight(StripMarks(raw), " \t")

		if strings.TrimSpace(line) == "" {
			result.Stats.Blank++
			if open >= 0 {
				result.Messages[open].Text += "\n"
			}
			continue
		}

		if h, ok := MatchHeader(strings.TrimSpace(line)); ok {
			result.Stats.Headers[h.Dialect]++
			result.Messages = append(result.Messages, Message{
				Timestamp: h.Timestamp,
				Author:    h.Author,
				Text:      h.Text,
				Dialect:   h.Dialect,
				Line:      i + 1,
			})
			open = len(result.Messages) - 1
			continue
		}

		if open < 0 {
			// nothing to attribute this line to
			result.Stats.Dropped++
			continue
		}
		result.Stats.Continuations++
		result.Messages[open].Text += "\n" + line
	}

	return result
}
