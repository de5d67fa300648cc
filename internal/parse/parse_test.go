package parse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMatchHeaderDialects(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		dialect Dialect
		ts      time.Time
		author  string
		text    string
	}{
		{"iso space", "2024-01-05 09:00:00 Alice: Hello", DialectISO,
			time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), "Alice", "Hello"},
		{"iso T separator", "2019-04-13T18:59:06 Carolin: Text", DialectISO,
			time.Date(2019, 4, 13, 18, 59, 6, 0, time.UTC), "Carolin", "Text"},
		{"iso empty text", "2019-04-13 18:59:06 Carolin:", DialectISO,
			time.Date(2019, 4, 13, 18, 59, 6, 0, time.UTC), "Carolin", ""},
		{"dotted two digit year", "05.01.24, 9:00 - Alice: Hey", DialectDotted,
			time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), "Alice", "Hey"},
		{"dotted four digit year with seconds", "13.04.2019, 18:59:06 - Carolin: Text", DialectDotted,
			time.Date(2019, 4, 13, 18, 59, 6, 0, time.UTC), "Carolin", "Text"},
		{"dotted en dash", "13.04.19, 18:59 – Carolin: Text", DialectDotted,
			time.Date(2019, 4, 13, 18, 59, 0, 0, time.UTC), "Carolin", "Text"},
		{"bracket", "[13.04.2019, 18:59:06] Carolin: Text", DialectBracket,
			time.Date(2019, 4, 13, 18, 59, 6, 0, time.UTC), "Carolin", "Text"},
		{"bracket without seconds", "[1.2.2020, 7:05] Bob Smith: a: b", DialectBracket,
			time.Date(2020, 2, 1, 7, 5, 0, 0, time.UTC), "Bob Smith", "a: b"},
		{"author whitespace collapsed", "[1.2.2020, 7:05] Bob   Smith : hi", DialectBracket,
			time.Date(2020, 2, 1, 7, 5, 0, 0, time.UTC), "Bob Smith", "hi"},
		{"iso system", "2024-01-05 09:00:00 Messages are end-to-end encrypted.", DialectISOSystem,
			time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), "", "Messages are end-to-end encrypted."},
		{"dotted system", "05.01.24, 9:00 - Alice joined", DialectDottedSystem,
			time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), "", "Alice joined"},
		{"bracket system", "[05.01.2024, 09:00:01] Alice left", DialectBracketSystem,
			time.Date(2024, 1, 5, 9, 0, 1, 0, time.UTC), "", "Alice left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := MatchHeader(tt.line)
			if !ok {
				t.Fatalf("MatchHeader(%q) did not match", tt.line)
			}
			if h.Dialect != tt.dialect {
				t.Errorf("Dialect = %v, want %v", h.Dialect, tt.dialect)
			}
			if !h.Timestamp.Equal(tt.ts) {
				t.Errorf("Timestamp = %v, want %v", h.Timestamp, tt.ts)
			}
			if h.Author != tt.author {
				t.Errorf("Author = %q, want %q", h.Author, tt.author)
			}
			if h.Text != tt.text {
				t.Errorf("Text = %q, want %q", h.Text, tt.text)
			}
		})
	}
}

func TestMatchHeaderRejects(t *testing.T) {
	lines := []string{
		"just some text",
		"2024-13-05 09:00:00 Alice: bad month",
		"30.02.2024, 9:00 - Alice: no such day",
		"05.01.24, 24:00 - Alice: bad hour",
		"05.01.124, 9:00 - Alice: three digit year",
		"https://example.com/a:b",
	}
	for _, line := range lines {
		if h, ok := MatchHeader(line); ok {
			t.Errorf("MatchHeader(%q) = %+v, want no match", line, h)
		}
	}
}

func TestParseExample(t *testing.T) {
	in := "2024-01-05 09:00:00 Alice: Hello\n" +
		"2024-01-05 09:00:05 Bob: Hi!\n" +
		"continuation of Bob's line\n"

	res := ParseString(in)
	if len(res.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(res.Messages))
	}
	if m := res.Messages[0]; m.Author != "Alice" || m.Text != "Hello" {
		t.Errorf("msg[0] = (%q, %q)", m.Author, m.Text)
	}
	if m := res.Messages[1]; m.Author != "Bob" || m.Text != "Hi!\ncontinuation of Bob's line" {
		t.Errorf("msg[1] = (%q, %q)", m.Author, m.Text)
	}
	if res.Messages[1].Line != 2 {
		t.Errorf("msg[1].Line = %d, want 2", res.Messages[1].Line)
	}
}

func TestParseContinuationWithBlankLines(t *testing.T) {
	in := "[05.01.2024, 09:00] Alice: first\n" +
		"second\n" +
		"\n" +
		"  indented  text\n" +
		"\n"

	res := ParseString(in)
	if len(res.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(res.Messages))
	}
	want := "first\nsecond\n\n  indented  text\n"
	if got := res.Messages[0].Text; got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
	if res.Stats.Continuations != 2 || res.Stats.Blank != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestParseDropsOrphanLines(t *testing.T) {
	in := "preamble one\npreamble two\n05.01.24, 9:00 - Alice: Hey\n"
	res := ParseString(in)
	if len(res.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(res.Messages))
	}
	if res.Messages[0].Text != "Hey" {
		t.Errorf("Text = %q, want %q", res.Messages[0].Text, "Hey")
	}
	if res.Stats.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", res.Stats.Dropped)
	}
}

func TestParseInvisibleMarksBeforeAuthor(t *testing.T) {
	in := "\uFEFF[05.01.2024, 09:00:00] Alice: one\n" +
		"\u200E[05.01.2024, 09:01:00] \u202AMarcel\u202C: two\r\n"
	res := ParseString(in)
	if len(res.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(res.Messages))
	}
	if res.Messages[1].Author != "Marcel" {
		t.Errorf("Author = %q, want Marcel", res.Messages[1].Author)
	}
	if res.Messages[0].Text != "one" {
		t.Errorf("Text = %q, want one", res.Messages[0].Text)
	}
}

func TestParseKeepsInputOrder(t *testing.T) {
	in := "2024-01-05 10:00:00 Alice: later\n2024-01-05 09:00:00 Bob: earlier\n"
	res := ParseString(in)
	if len(res.Messages) != 2 || res.Messages[0].Author != "Alice" {
		t.Fatalf("messages reordered: %+v", res.Messages)
	}
}

func TestParseSystemNotice(t *testing.T) {
	in := "05.01.24, 9:00 - Messages and calls are end-to-end encrypted.\n05.01.24, 9:01 - Alice: hi\n"
	res := ParseString(in)
	if len(res.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(res.Messages))
	}
	if res.Messages[0].Author != "" || !res.Messages[0].Dialect.System() {
		t.Errorf("msg[0] = %+v, want system notice", res.Messages[0])
	}
	if got := res.Stats.HeaderCount(); got != 2 {
		t.Errorf("HeaderCount = %d, want 2", got)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_chat.txt")
	if err := os.WriteFile(path, []byte("2024-01-05 09:00:00 Alice: Hello\n\xff\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if res.Meta.FilePath != path || res.Meta.Size == 0 {
		t.Errorf("Meta = %+v", res.Meta)
	}
	if want := "Hello\n\uFFFD"; res.Messages[0].Text != want {
		t.Errorf("Text = %q, want %q", res.Messages[0].Text, want)
	}
}

func TestAuthors(t *testing.T) {
	msgs := []Message{{Author: "Alice"}, {Author: ""}, {Author: " Bob "}, {Author: "Alice"}}
	got := Authors(msgs)
	want := []string{"Alice", "Bob", "Alice"}
	if len(got) != len(want) {
		t.Fatalf("Authors() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Authors()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
