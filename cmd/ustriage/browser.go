package main

import (
	"os/exec"
	"runtime"

	"github.com/canonical/ustriage/internal/debug"
)

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		debug.Logf("failed to open %s in browser: %v\n", url, err)
	}
}
