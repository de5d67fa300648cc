package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Zuo-Peng/wa-export/internal/parse"
)

const outputPrefix = "WHATSAPP_CHAT"

var unsafeStemRe = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)

// SafeStem reduces s to characters that are safe in file names.
func SafeStem(s string) string {
	s = strings.Trim(unsafeStemRe.ReplaceAllString(s, "_"), "_")
	if s == "" {
		return outputPrefix
	}
	return s
}

// OutputBase names the output files after the chat partners, the period the
// chat covers and the render time.
func OutputBase(msgs []parse.Message, me string, now time.Time) string {
	me = parse.Normalize(me)
	var partners []string
	for _, a := range participants(msgs) {
		if a != parse.SystemAuthor && a != me {
			partners = append(partners, a)
		}
	}
	sort.Strings(partners)

	var partnerPart string
	switch {
	case len(partners) == 0:
		partnerPart = "UNKNOWN"
	case len(partners) <= 3:
		partnerPart = strings.Join(partners, "+")
	default:
		partnerPart = strings.Join(partners[:3], "+") + fmt.Sprintf("+%dmore", len(partners)-3)
	}

	periodPart := "NO_MESSAGES"
	if len(msgs) > 0 {
		first, last := msgs[0].Timestamp, msgs[0].Timestamp
		for _, m := range msgs[1:] {
			if m.Timestamp.Before(first) {
				first = m.Timestamp
			}
			if m.Timestamp.After(last) {
				last = m.Timestamp
			}
		}
		periodPart = first.Format("2006-01-02") + "_to_" + last.Format("2006-01-02")
	}

	return strings.Join([]string{
		SafeStem(outputPrefix),
		SafeStem(partnerPart),
		periodPart,
		now.Format("2006-01-02_15-04-05"),
	}, "_")
}
