package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"WhatsApp Chat - Bob/media/IMG-20240101-WA0001.jpg", "media/-20240101-_0001."},
		{"Documents/Rechnung 2024.pdf", "documents/ 2024."},
		{"whatsapp-chat/x.txt", "."},
		{`sub\dir\file1`, "_/_/1"},
		{"abc", "_"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func writeAt(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	base := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	folder := filepath.Join(t.TempDir(), "folder")
	zip := filepath.Join(t.TempDir(), "zip")
	fe := filepath.Join(folder, "WhatsApp Chat - Bob")
	ze := filepath.Join(zip, "WhatsApp Chat - Bob")

	writeAt(t, filepath.Join(fe, "_chat.txt"), base)
	writeAt(t, filepath.Join(ze, "_chat.txt"), base)
	writeAt(t, filepath.Join(fe, "a.pdf"), base)
	writeAt(t, filepath.Join(ze, "a.pdf"), base.Add(time.Hour))
	writeAt(t, filepath.Join(fe, "b.jpg"), base)
	writeAt(t, filepath.Join(ze, "b.jpg"), base.Add(-time.Hour))
	writeAt(t, filepath.Join(fe, "c.jpg"), base)
	writeAt(t, filepath.Join(ze, "c.jpg"), base.Add(2*time.Second))
	writeAt(t, filepath.Join(fe, "only-folder.jpg"), base)
	writeAt(t, filepath.Join(ze, "only-zip.jpg"), base)
	writeAt(t, filepath.Join(zip, "__MACOSX", "junk"), base)

	rep, err := Run(folder, zip)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := Counts{Shared: 4, NonZero: 3, Plus3600: 1, Minus3600: 1}
	if rep.All != want {
		t.Errorf("All = %+v, want %+v", rep.All, want)
	}
	if rep.PDF != (Counts{Shared: 1, NonZero: 1, Plus3600: 1}) {
		t.Errorf("PDF = %+v", rep.PDF)
	}
	if rep.MissingInFolder != 1 || rep.MissingInZip != 1 {
		t.Errorf("missing = %d/%d", rep.MissingInFolder, rep.MissingInZip)
	}

	lines := rep.Lines(10)
	if !strings.HasPrefix(lines[0], "AUDIT: shared=4 missing_in_folder=1 missing_in_zip=1 nonzero=3 delta+3600=1 delta-3600=1") {
		t.Errorf("lines[0] = %q", lines[0])
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "OFFENDER: .") || !strings.Contains(joined, "OFFENDER_PDF: .") {
		t.Errorf("offenders missing:\n%s", joined)
	}
	if got := len(rep.Lines(0)); got != 2 {
		t.Errorf("Lines(0) has %d lines, want 2", got)
	}
}

func TestRunNeedsSingleExport(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "a"), 0o755)
	os.MkdirAll(filepath.Join(root, "b"), 0o755)
	if _, err := Run(root, root); err == nil {
		t.Error("Run() expected error for two export directories")
	}
}
