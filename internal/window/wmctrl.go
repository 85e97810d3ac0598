package window

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

const (
	wmctrlBinary = "wmctrl"
	xpropBinary  = "xprop"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Output(ctx context.Context, binary string, args []string) (string, error)
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", binary, err, msg)
		}
		return "", fmt.Errorf("%s: %w", binary, err)
	}
	return string(out), nil
}

// WMCtrl drives X11 windows through the wmctrl utility.
type WMCtrl struct {
	binary string
	exec   Executor
}

// WMCtrlOption configures the wmctrl backend.
type WMCtrlOption func(*WMCtrl)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) WMCtrlOption {
	return func(w *WMCtrl) {
		if exec != nil {
			w.exec = exec
		}
	}
}

// NewWMCtrl constructs the wmctrl backend.
func NewWMCtrl(opts ...WMCtrlOption) *WMCtrl {
	w := &WMCtrl{binary: wmctrlBinary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Detect picks the window backend for the running desktop: wmctrl on X11,
// robotgo on Windows and macOS, Noop elsewhere. process names the browser
// process for the robotgo backend.
func Detect(process string) Lister {
	return detect(runtime.GOOS, os.Getenv("DISPLAY"), exec.LookPath, process)
}

func detect(goos, display string, lookPath func(string) (string, error), process string) Lister {
	switch goos {
	case "windows", "darwin":
		return NewDesktop(process)
	case "linux":
		if display == "" {
			return Noop{}
		}
		if _, err := lookPath(wmctrlBinary); err != nil {
			return Noop{}
		}
		return NewWMCtrl()
	default:
		return Noop{}
	}
}

func (w *WMCtrl) List(ctx context.Context, keyword string) ([]Window, error) {
	out, err := w.exec.Output(ctx, w.binary, []string{"-l"})
	if err != nil {
		return nil, err
	}
	windows := parseList(out)
	if keyword == "" {
		return windows, nil
	}
	filtered := windows[:0]
	for _, win := range windows {
		if strings.Contains(win.Title, keyword) {
			filtered = append(filtered, win)
		}
	}
	return filtered, nil
}

func (w *WMCtrl) Rename(ctx context.Context, win Window, title string) error {
	_, err := w.exec.Output(ctx, w.binary, []string{"-i", "-r", win.ID, "-N", title})
	return err
}

func (w *WMCtrl) Activate(ctx context.Context, win Window) error {
	_, err := w.exec.Output(ctx, w.binary, []string{"-i", "-a", win.ID})
	return err
}

func (w *WMCtrl) Maximize(ctx context.Context, win Window) error {
	_, err := w.exec.Output(ctx, w.binary, []string{"-i", "-r", win.ID, "-b", "add,maximized_vert,maximized_horz"})
	return err
}

// ActiveTitle looks up the focused window through xprop and returns its
// title as wmctrl lists it.
func (w *WMCtrl) ActiveTitle(ctx context.Context) (string, error) {
	out, err := w.exec.Output(ctx, xpropBinary, []string{"-root", "_NET_ACTIVE_WINDOW"})
	if err != nil {
		return "", err
	}
	active, ok := activeWindowID(out)
	if !ok {
		return "", nil
	}
	windows, err := w.List(ctx, "")
	if err != nil {
		return "", err
	}
	for _, win := range windows {
		if id, ok := parseWindowID(win.ID); ok && id == active {
			return win.Title, nil
		}
	}
	return "", nil
}

// activeWindowID reads `xprop -root _NET_ACTIVE_WINDOW` output, which ends
// in "window id # 0x...".
func activeWindowID(out string) (uint64, bool) {
	idx := strings.LastIndex(out, "#")
	if idx < 0 {
		return 0, false
	}
	fields := strings.Fields(out[idx+1:])
	if len(fields) == 0 {
		return 0, false
	}
	id, ok := parseWindowID(strings.TrimSuffix(fields[0], ","))
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// parseWindowID normalizes hex ids so 0x3c00007 and 0x03c00007 compare equal.
func parseWindowID(raw string) (uint64, bool) {
	hex, ok := strings.CutPrefix(strings.ToLower(strings.TrimSpace(raw)), "0x")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(hex, 16, 64)
	return id, err == nil
}

// parseList reads `wmctrl -l` output: id, desktop, host, then the title.
func parseList(out string) []Window {
	var windows []Window
	for _, line := range strings.Split(out, "\n") {
		rest := strings.TrimSpace(line)
		if rest == "" {
			continue
		}
		var fields [3]string
		ok := true
		for i := range fields {
			idx := strings.IndexAny(rest, " \t")
			if idx < 0 {
				if i < 2 {
					ok = false
					break
				}
				fields[i], rest = rest, ""
				break
			}
			fields[i] = rest[:idx]
			rest = strings.TrimLeft(rest[idx:], " \t")
		}
		if !ok || !strings.HasPrefix(fields[0], "0x") {
			continue
		}
		windows = append(windows, Window{ID: fields[0], Title: strings.TrimSpace(rest)})
	}
	return windows
}
