package parse

import "time"

// SystemAuthor is the reserved author for non-human notices.
const SystemAuthor = "System"

type Message struct {
	Timestamp time.Time // wall clock of the export, carried in UTC
	Author    string    // "" for unattributed system notices
	Text      string
	Dialect   Dialect
	Line      int // 1-based line number of the header in the input
}

type FileMeta struct {
	FilePath string
	Mtime    time.Time
	Size     int64
}

// Stats counts how the lines of an export were classified.
type Stats struct {
	Lines         int
	Headers       map[Dialect]int
	Continuations int
	Blank         int
	Dropped       int // non-header lines seen before the first header
}

// HeaderCount returns the total number of header lines across all dialects.
func (s Stats) HeaderCount() int {
	n := 0
	for _, c := range s.Headers {
		n += c
	}
	return n
}

type ParseResult struct {
	Meta     FileMeta
	Messages []Message
	Stats    Stats
}

// Authors returns the author of every message that has one, in message order.
// Duplicates are kept.
func Authors(msgs []Message) []string {
	var out []string
	for _, m := range msgs {
		if a := Normalize(m.Author); a != "" {
			out = append(out, a)
		}
	}
	return out
}
