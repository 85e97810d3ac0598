package window

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-vgo/robotgo"
)

// desktopAPI is the slice of robotgo the Desktop backend uses.
type desktopAPI interface {
	FindIDs(process string) ([]int, error)
	ProcessName(pid int) (string, error)
	Title(pid int) string
	ActiveTitle() string
	Activate(pid int) error
	Maximize(pid int)
}

type robotgoAPI struct{}

func (robotgoAPI) FindIDs(process string) ([]int, error) { return robotgo.FindIds(process) }

func (robotgoAPI) ProcessName(pid int) (string, error) { return robotgo.FindName(pid) }

func (robotgoAPI) Title(pid int) string { return robotgo.GetTitle(pid) }

func (robotgoAPI) ActiveTitle() string { return robotgo.GetTitle() }

func (robotgoAPI) Activate(pid int) error { return robotgo.ActivePid(pid) }

func (robotgoAPI) Maximize(pid int) { robotgo.MaxWindow(pid) }

// Desktop drives browser windows on Windows and macOS through robotgo.
// robotgo exposes one front window per process, so a window is identified by
// its owning pid together with its title.
type Desktop struct {
	process string
	api     desktopAPI
}

// DesktopOption configures the Desktop backend.
type DesktopOption func(*Desktop)

func withDesktopAPI(api desktopAPI) DesktopOption {
	return func(d *Desktop) {
		if api != nil {
			d.api = api
		}
	}
}

// NewDesktop constructs the robotgo backend. process is the browser process
// name, matched case-insensitively as a substring.
func NewDesktop(process string, opts ...DesktopOption) *Desktop {
	d := &Desktop{process: strings.TrimSpace(process), api: robotgoAPI{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Desktop) List(_ context.Context, keyword string) ([]Window, error) {
	pids, err := d.api.FindIDs(d.process)
	if err != nil {
		return nil, fmt.Errorf("find %s processes: %w", d.process, err)
	}
	needle := strings.ToLower(keyword)
	var windows []Window
	for _, pid := range pids {
		title := strings.TrimSpace(d.api.Title(pid))
		if title == "" {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(title), needle) {
			name, err := d.api.ProcessName(pid)
			if err != nil || !strings.Contains(strings.ToLower(name), needle) {
				continue
			}
		}
		windows = append(windows, Window{ID: desktopID(pid, title), Title: title})
	}
	return windows, nil
}

// Rename is not offered by robotgo.
func (d *Desktop) Rename(context.Context, Window, string) error {
	return ErrUnsupported
}

func (d *Desktop) Activate(_ context.Context, w Window) error {
	pid, err := desktopPID(w.ID)
	if err != nil {
		return err
	}
	return d.api.Activate(pid)
}

func (d *Desktop) Maximize(_ context.Context, w Window) error {
	pid, err := desktopPID(w.ID)
	if err != nil {
		return err
	}
	d.api.Maximize(pid)
	return nil
}

// ActiveTitle returns the title of the focused window.
func (d *Desktop) ActiveTitle(context.Context) (string, error) {
	return strings.TrimSpace(d.api.ActiveTitle()), nil
}

func desktopID(pid int, title string) string {
	return strconv.Itoa(pid) + "/" + title
}

func desktopPID(id string) (int, error) {
	head, _, _ := strings.Cut(id, "/")
	pid, err := strconv.Atoi(head)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("window id %q has no pid", id)
	}
	return pid, nil
}
