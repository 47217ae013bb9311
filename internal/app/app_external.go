package app

import (
	"fmt"
	"os/exec"
	"runtime"
)

const (
	osDarwin  = "darwin"
	osWindows = "windows"
)

// browserCommand returns the platform opener for urlStr.
func browserCommand(goos, urlStr string) (string, []string) {
	switch goos {
	case osDarwin:
		return "open", []string{urlStr}
	case osWindows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", urlStr}
	default:
		return "xdg-open", []string{urlStr}
	}
}

// openURLInBrowser starts the platform opener without waiting for it.
func openURLInBrowser(urlStr string) error {
	name, args := browserCommand(runtime.GOOS, urlStr)
	// #nosec G204 -- the URL is passed directly as a single argument
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
