package perspective

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestCandidates(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    []string
	}{
		{"dedupe in order", []string{"Bob", "Alice", " Bob", "Alice"}, []string{"Bob", "Alice"}},
		{"drops system", []string{"System", "Alice", "WhatsApp"}, []string{"Alice"}},
		{"keeps system if alone", []string{"System", "system"}, []string{"System", "system"}},
		{"case folded marker", []string{"NACHRICHTEN UND ANRUFE SIND ENDE-ZU-ENDE-VERSCHLÜSSELT", "Jo"}, []string{"Jo"}},
		{"empty names skipped", []string{"", "  ", "Zed"}, []string{"Zed"}},
		{"nothing", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Candidates(tt.authors)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Candidates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChooseNonInteractive(t *testing.T) {
	s := Selector{}
	if got := s.Choose([]string{"System", "Alice"}); got != "Alice" {
		t.Errorf("Choose() = %q, want Alice", got)
	}
	if got := s.Choose(nil); got != DefaultName {
		t.Errorf("Choose(nil) = %q, want %q", got, DefaultName)
	}
}

func TestChooseInteractive(t *testing.T) {
	authors := []string{"Alice", "Bob", "Carol"}
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"number", "2\n", "Bob"},
		{"number with paren", "3)\n", "Carol"},
		{"name any case", "bob\n", "Bob"},
		{"empty picks first", "\n", "Alice"},
		{"eof picks first", "", "Alice"},
		{"retries after invalid", "9\nnobody\ncarol\n", "Carol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := Selector{In: strings.NewReader(tt.input), Out: &out, Interactive: true}
			if got := s.Choose(authors); got != tt.want {
				t.Errorf("Choose() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(out.String(), "2) Bob") {
				t.Errorf("prompt does not list candidates:\n%s", out.String())
			}
		})
	}
}

func TestChooseInteractiveRetryMessage(t *testing.T) {
	var out bytes.Buffer
	s := Selector{In: strings.NewReader("x\n1\n"), Out: &out, Interactive: true}
	if got := s.Choose([]string{"Alice", "Bob"}); got != "Alice" {
		t.Errorf("Choose() = %q, want Alice", got)
	}
	if strings.Count(out.String(), "Number or name: ") != 2 {
		t.Errorf("expected two prompts:\n%s", out.String())
	}
}
