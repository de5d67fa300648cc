// Package perspective decides which chat participant is "me".
package perspective

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Zuo-Peng/wa-export/internal/parse"
)

// DefaultName is used when the export has no usable author at all.
const DefaultName = "Ich"

// systemMarkers are pseudo-authors exports produce for notices. The list
// only covers English and German exports.
var systemMarkers = []string{
	"system",
	"whatsapp",
	"messages to this chat are now secured",
	"nachrichten und anrufe sind ende-zu-ende-verschlüsselt",
}

// fold applies Unicode case folding. Casers are stateful, so each call
// gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

func isSystem(name string) bool {
	f := fold(name)
	for _, m := range systemMarkers {
		if f == fold(m) {
			return true
		}
	}
	return false
}

// Candidates normalizes and de-duplicates authors in first-seen order and
// drops system pseudo-authors unless that would leave nothing.
func Candidates(authors []string) []string {
	var uniq []string
	seen := make(map[string]bool)
	for _, a := range authors {
		a = parse.Normalize(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		uniq = append(uniq, a)
	}

	var human []string
	for _, a := range uniq {
		if !isSystem(a) {
			human = append(human, a)
		}
	}
	if len(human) > 0 {
		return human
	}
	return uniq
}

// Selector asks the user for their name when Interactive is set and
// otherwise picks the first candidate.
type Selector struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool
}

// Choose returns the participant that represents "me". Invalid answers
// are rejected and asked again; end of input selects the first candidate.
func (s Selector) Choose(authors []string) string {
	cands := Candidates(authors)
	if len(cands) == 0 {
		return DefaultName
	}
	if !s.Interactive || s.In == nil {
		return cands[0]
	}
	out := s.Out
	if out == nil {
		out = io.Discard
	}

	fmt.Fprintln(out, "\nChoose your perspective (which name is you):")
	fmt.Fprintln(out)
	for i, a := range cands {
		fmt.Fprintf(out, "  %d) %s\n", i+1, a)
	}

	sc := bufio.NewScanner(s.In)
	for {
		fmt.Fprint(out, "Number or name: ")
		if !sc.Scan() {
			return cands[0]
		}
		if name, ok := pick(cands, parse.Normalize(sc.Text())); ok {
			return name
		}
		fmt.Fprintln(out, "Please enter one of the numbers shown or one of the names.")
	}
}

func pick(cands []string, answer string) (string, bool) {
	if answer == "" {
		return cands[0], true
	}
	num := strings.TrimRight(answer, ").")
	for i, c := range cands {
		if num == fmt.Sprint(i+1) {
			return c, true
		}
	}
	for _, c := range cands {
		if fold(c) == fold(answer) {
			return c, true
		}
	}
	return "", false
}
