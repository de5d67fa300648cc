// Package audit compares file modification times between an export that was
// copied as a folder and the same export extracted from a zip archive, to
// spot the one-hour drift some archivers introduce around DST.
package audit

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/wa-export/internal/scan"
)

const driftSeconds = 3600

type Counts struct {
	Shared    int
	NonZero   int
	Plus3600  int
	Minus3600 int
}

type Report struct {
	All             Counts
	PDF             Counts
	MissingInFolder int
	MissingInZip    int
	Offenders       []string // sanitized paths with a ±1h delta
	PDFOffenders    []string
}

var keptDirs = map[string]bool{
	"documents": true, "images": true, "videos": true, "audios": true, "media": true,
	"attachments": true, "_thumbs": true, "_previews": true, "previews": true,
}

func scrubComponent(comp string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range comp {
		if unicode.IsLetter(r) {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteRune(r)
		lastUnderscore = false
	}
	if s := strings.Trim(b.String(), "_"); s != "" {
		return s
	}
	return "_"
}

// Sanitize hides names in a relative path so reports can be shared: letters
// collapse to "_", well-known media directory names are kept and a leading
// "WhatsApp Chat ..." component is dropped.
func Sanitize(rel string) string {
	p := strings.Trim(strings.ReplaceAll(rel, "\\", "/"), "/")
	var parts []string
	for _, comp := range strings.Split(p, "/") {
		if comp != "" && comp != "." {
			parts = append(parts, comp)
		}
	}
	var out []string
	for i, comp := range parts {
		lower := strings.ToLower(comp)
		if i == 0 && (strings.HasPrefix(lower, "whatsapp chat") || strings.HasPrefix(lower, "whatsapp-chat")) {
			continue
		}
		if keptDirs[lower] {
			out = append(out, lower)
		} else {
			out = append(out, scrubComponent(comp))
		}
	}
	return strings.Join(out, "/")
}

// Run audits the single export directory below each root.
func Run(folderRoot, zipRoot string) (*Report, error) {
	folderBase, err := scan.ExportDir(folderRoot)
	if err != nil {
		return nil, fmt.Errorf("folder: %w", err)
	}
	zipBase, err := scan.ExportDir(zipRoot)
	if err != nil {
		return nil, fmt.Errorf("zip: %w", err)
	}

	folder, err := scan.Mtimes(folderBase)
	if err != nil {
		return nil, err
	}
	zip, err := scan.Mtimes(zipBase)
	if err != nil {
		return nil, err
	}

	var shared []string
	rep := &Report{}
	for rel := range zip {
		if _, ok := folder[rel]; ok {
			shared = append(shared, rel)
		} else {
			rep.MissingInFolder++
		}
	}
	for rel := range folder {
		if _, ok := zip[rel]; !ok {
			rep.MissingInZip++
		}
	}
	sort.Strings(shared)

	for _, rel := range shared {
		delta := int(math.Round(zip[rel].Sub(folder[rel]).Seconds()))
		isPDF := strings.HasSuffix(strings.ToLower(rel), ".pdf")

		rep.All.add(delta)
		if isDrift(delta) {
			rep.Offenders = append(rep.Offenders, Sanitize(rel))
		}
		if isPDF {
			rep.PDF.add(delta)
			if isDrift(delta) {
				rep.PDFOffenders = append(rep.PDFOffenders, Sanitize(rel))
			}
		}
	}
	return rep, nil
}

func isDrift(delta int) bool {
	return delta == driftSeconds || delta == -driftSeconds
}

func (c *Counts) add(delta int) {
	c.Shared++
	if delta != 0 {
		c.NonZero++
	}
	switch delta {
	case driftSeconds:
		c.Plus3600++
	case -driftSeconds:
		c.Minus3600++
	}
}

// Lines formats the report, listing at most max offenders per kind.
func (r *Report) Lines(max int) []string {
	lines := []string{
		fmt.Sprintf("AUDIT: shared=%d missing_in_folder=%d missing_in_zip=%d nonzero=%d delta+3600=%d delta-3600=%d",
			r.All.Shared, r.MissingInFolder, r.MissingInZip, r.All.NonZero, r.All.Plus3600, r.All.Minus3600),
		fmt.Sprintf("AUDIT_PDF: shared=%d nonzero=%d delta+3600=%d delta-3600=%d",
			r.PDF.Shared, r.PDF.NonZero, r.PDF.Plus3600, r.PDF.Minus3600),
	}
	for i, rel := range r.Offenders {
		if i >= max {
			break
		}
		lines = append(lines, "OFFENDER: "+rel)
	}
	for i, rel := range r.PDFOffenders {
		if i >= max {
			break
		}
		lines = append(lines, "OFFENDER_PDF: "+rel)
	}
	return lines
}
