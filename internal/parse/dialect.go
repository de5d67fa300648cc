package parse

import (
	"regexp"
	"strconv"
	"time"
)

// Dialect identifies one of the header grammars an export line can use.
type Dialect int

const (
	DialectNone Dialect = iota
	DialectISO
	DialectDotted
	DialectBracket
	DialectISOSystem
	DialectDottedSystem
	DialectBracketSystem
)

func (d Dialect) String() string {
	switch d {
	case DialectISO:
		return "iso"
	case DialectDotted:
		return "dotted"
	case DialectBracket:
		return "bracket"
	case DialectISOSystem:
		return "iso-system"
	case DialectDottedSystem:
		return "dotted-system"
	case DialectBracketSystem:
		return "bracket-system"
	default:
		return "none"
	}
}

// System reports whether the dialect carries no author.
func (d Dialect) System() bool {
	return d >= DialectISOSystem
}

// Header is the result of matching one line against the dialects.
type Header struct {
	Dialect   Dialect
	Timestamp time.Time
	Author    string
	Text      string
}

// Exporters sometimes emit "Name:" with nothing after the colon, mostly for
// media messages whose attachment marker follows on the next line, so the
// text group may be empty.
var (
	// 2019-04-13 18:59:06 Carolin: Text
	isoRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[ T](\d{2}):(\d{2}):(\d{2})\s+([^:]+?):\s*(.*)$`)
	// 13.04.19, 18:59 - Carolin: Text
	dottedRe = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4}|\d{2}),\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\s+[-–]\s+([^:]+?):\s*(.*)$`)
	// [13.04.2019, 18:59:06] Carolin: Text
	bracketRe = regexp.MustCompile(`^\[(\d{1,2})\.(\d{1,2})\.(\d{4}|\d{2}),\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\]\s+([^:]+?):\s*(.*)$`)

	isoSystemRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[ T](\d{2}):(\d{2}):(\d{2})(?:\s+[-–]\s+|\s+)(.*)$`)
	dottedSystemRe  = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4}|\d{2}),\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\s+[-–]\s+(.*)$`)
	bracketSystemRe = regexp.MustCompile(`^\[(\d{1,2})\.(\d{1,2})\.(\d{4}|\d{2}),\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\]\s+(.*)$`)
)

type dialectMatcher struct {
	dialect Dialect
	re      *regexp.Regexp
	extract func(groups []string) (Header, bool)
}

// dialects is tried in order; the first match wins. The ISO form goes first:
// a dotted date is never a valid ISO date, but the order keeps results
// deterministic.
var dialects = []dialectMatcher{
	{DialectISO, isoRe, extractISO},
	{DialectDotted, dottedRe, extractDotted},
	{DialectBracket, bracketRe, extractDotted},
	{DialectISOSystem, isoSystemRe, extractISOSystem},
	{DialectDottedSystem, dottedSystemRe, extractDottedSystem},
	{DialectBracketSystem, bracketSystemRe, extractDottedSystem},
}

// MatchHeader classifies a line with marks already stripped. It returns false
// for continuation candidates, including lines whose date or time fields are
// out of range.
func MatchHeader(line string) (Header, bool) {
	for _, d := range dialects {
		g := d.re.FindStringSubmatch(line)
		if g == nil {
			continue
		}
		h, ok := d.extract(g)
		if !ok {
			continue
		}
		h.Dialect = d.dialect
		return h, true
	}
	return Header{}, false
}

// groups: full, year, month, day, hour, min, sec, author, text
func extractISO(g []string) (Header, bool) {
	ts, ok := civilTime(g[1], g[2], g[3], g[4], g[5], g[6])
	if !ok {
		return Header{}, false
	}
	author := Normalize(g[7])
	if author == "" {
		return Header{}, false
	}
	return Header{Timestamp: ts, Author: author, Text: g[8]}, true
}

// groups: full, day, month, year, hour, min, [sec], author, text
func extractDotted(g []string) (Header, bool) {
	ts, ok := civilTime(g[3], g[2], g[1], g[4], g[5], g[6])
	if !ok {
		return Header{}, false
	}
	author := Normalize(g[7])
	if author == "" {
		return Header{}, false
	}
	return Header{Timestamp: ts, Author: author, Text: g[8]}, true
}

func extractISOSystem(g []string) (Header, bool) {
	ts, ok := civilTime(g[1], g[2], g[3], g[4], g[5], g[6])
	if !ok {
		return Header{}, false
	}
	return Header{Timestamp: ts, Text: g[7]}, true
}

func extractDottedSystem(g []string) (Header, bool) {
	ts, ok := civilTime(g[3], g[2], g[1], g[4], g[5], g[6])
	if !ok {
		return Header{}, false
	}
	return Header{Timestamp: ts, Text: g[7]}, true
}

// civilTime builds a validated wall-clock time. Two-digit years map to 20yy
// and a missing seconds field means zero.
func civilTime(year, month, day, hour, minute, second string) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	if len(year) == 2 {
		y += 2000
	}
	mo, err1 := strconv.Atoi(month)
	d, err2 := strconv.Atoi(day)
	h, err3 := strconv.Atoi(hour)
	mi, err4 := strconv.Atoi(minute)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return time.Time{}, false
	}
	s := 0
	if second != "" {
		if s, err = strconv.Atoi(second); err != nil {
			return time.Time{}, false
		}
	}
	if mo < 1 || mo > 12 || h > 23 || mi > 59 || s > 59 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, h, mi, s, 0, time.UTC)
	// time.Date normalizes overflow such as Feb 30; reject those.
	if t.Day() != d || t.Month() != time.Month(mo) {
		return time.Time{}, false
	}
	return t, true
}
