package open

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Open shows a rendered transcript in the user's browser. $BROWSER wins over
// the platform opener.
func Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	cmd := command(os.Getenv("BROWSER"), runtime.GOOS, path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return cmd.Process.Release()
}

func command(browser, goos, path string) *exec.Cmd {
	if fields := strings.Fields(browser); len(fields) > 0 {
		return exec.Command(fields[0], append(fields[1:], path)...)
	}
	switch goos {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
