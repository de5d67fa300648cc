package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindChat(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "export", "_chat.txt"))
	touch(t, filepath.Join(dir, "export", "notes.txt"))
	touch(t, filepath.Join(dir, "__MACOSX", "export", "._chat.txt"))

	got, err := FindChat(dir)
	if err != nil {
		t.Fatalf("FindChat() error = %v", err)
	}
	if want := filepath.Join(dir, "export", "_chat.txt"); got != want {
		t.Errorf("FindChat() = %q, want %q", got, want)
	}

	file := filepath.Join(dir, "export", "notes.txt")
	if got, err := FindChat(file); err != nil || got != file {
		t.Errorf("FindChat(file) = %q, %v", got, err)
	}
}

func TestFindChatSingleTxt(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "WhatsApp Chat mit Bob.txt"))
	touch(t, filepath.Join(dir, "._WhatsApp Chat mit Bob.txt"))
	touch(t, filepath.Join(dir, "IMG-1.jpg"))

	got, err := FindChat(dir)
	if err != nil {
		t.Fatalf("FindChat() error = %v", err)
	}
	if filepath.Base(got) != "WhatsApp Chat mit Bob.txt" {
		t.Errorf("FindChat() = %q", got)
	}
}

func TestFindChatErrors(t *testing.T) {
	empty := t.TempDir()
	if _, err := FindChat(empty); err == nil {
		t.Error("expected error for directory without txt")
	}

	two := t.TempDir()
	touch(t, filepath.Join(two, "a.txt"))
	touch(t, filepath.Join(two, "b.txt"))
	if _, err := FindChat(two); err == nil {
		t.Error("expected error for ambiguous directory")
	}

	if _, err := FindChat(filepath.Join(empty, "missing")); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestMtimes(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "media", "a.jpg"))
	touch(t, filepath.Join(base, ".DS_Store"))
	touch(t, filepath.Join(base, ".hidden", "b.jpg"))
	stamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	os.Chtimes(filepath.Join(base, "media", "a.jpg"), stamp, stamp)

	got, err := Mtimes(base)
	if err != nil {
		t.Fatalf("Mtimes() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Mtimes() = %v, want one entry", got)
	}
	if !got["media/a.jpg"].Equal(stamp) {
		t.Errorf("mtime = %v, want %v", got["media/a.jpg"], stamp)
	}
}

func TestExportDir(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "WhatsApp Chat - Bob"), 0o755)
	os.MkdirAll(filepath.Join(root, "__MACOSX"), 0o755)
	os.MkdirAll(filepath.Join(root, ".Trash"), 0o755)

	got, err := ExportDir(root)
	if err != nil || filepath.Base(got) != "WhatsApp Chat - Bob" {
		t.Errorf("ExportDir() = %q, %v", got, err)
	}

	os.MkdirAll(filepath.Join(root, "second"), 0o755)
	if _, err := ExportDir(root); err == nil {
		t.Error("expected error for two export dirs")
	}
}
