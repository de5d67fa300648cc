package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const chatFileName = "_chat.txt"

var skipDirs = map[string]bool{"__MACOSX": true}

// Skip reports whether a file is archive or Finder debris.
func Skip(name string) bool {
	return name == ".DS_Store" || strings.HasPrefix(name, "._")
}

func skipDir(name string) bool {
	return skipDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// FindChat resolves path to a chat export file. Files are returned as is; a
// directory must contain _chat.txt or exactly one .txt file.
func FindChat(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}

	var txt []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if d.IsDir() {
			if p != path && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if Skip(d.Name()) || filepath.Ext(d.Name()) != ".txt" {
			return nil
		}
		txt = append(txt, p)
		return nil
	})
	if err != nil {
		return "", err
	}

	for _, p := range txt {
		if filepath.Base(p) == chatFileName {
			return p, nil
		}
	}
	switch len(txt) {
	case 0:
		return "", fmt.Errorf("no chat export found in %s", path)
	case 1:
		return txt[0], nil
	default:
		return "", fmt.Errorf("%d text files in %s, pass the chat file directly", len(txt), path)
	}
}

// Mtimes maps the path of every regular file below base, relative to base,
// to its modification time.
func Mtimes(base string) (map[string]time.Time, error) {
	out := make(map[string]time.Time)
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != base && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if Skip(d.Name()) || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil // vanished while walking
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = info.ModTime()
		return nil
	})
	return out, err
}

// ExportDir returns the single export directory inside root.
func ExportDir(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !skipDir(e.Name()) {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	if len(dirs) != 1 {
		return "", fmt.Errorf("expected exactly one export directory in %s, found %d", root, len(dirs))
	}
	return dirs[0], nil
}
