package preflight

import (
	"fmt"
	"os"
	"runtime"

	"tabbatch/internal/browser"
	"tabbatch/internal/config"
	"tabbatch/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path, true); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFileReadable verifies that a lookup table exists and can be read.
func CheckFileReadable(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := checkAccess(path, false); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d bytes)", path, info.Size())}
}

// CheckDisplay verifies that a graphical session is reachable for keyboard
// and window automation.
func CheckDisplay() Result {
	const name = "Display"
	if display := os.Getenv("DISPLAY"); display != "" {
		return Result{Name: name, Passed: true, Detail: "X11 " + display}
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return Result{Name: name, Detail: "Wayland session without DISPLAY (window tagging unavailable)"}
	}
	return Result{Name: name, Detail: "no graphical session"}
}

// CheckSystemDeps evaluates the desktop programs used by the configured
// platform. Only the browser is mandatory.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	statuses := []deps.Status{deps.CheckBrowser(browser.NewResolver(cfg.Browser))}
	if runtime.GOOS != "linux" {
		return statuses
	}
	requirements := []deps.Requirement{
		{
			Name:        "wmctrl",
			Command:     "wmctrl",
			Description: "Locates, tags and focuses the search window",
			Optional:    true,
		},
		{
			Name:        "xprop",
			Command:     "xprop",
			Description: "Reads the focused window title for tab-info",
			Optional:    true,
		},
		{
			Name:        "xclip",
			Command:     "xclip",
			Description: "Clipboard access for tab-info and compose",
			Optional:    true,
		},
	}
	return append(statuses, deps.CheckBinaries(requirements)...)
}
