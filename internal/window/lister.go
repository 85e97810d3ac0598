package window

import (
	"context"
	"errors"
)

// ErrUnsupported is returned by listers that cannot enumerate windows.
var ErrUnsupported = errors.New("window introspection unsupported")

// Window is an OS-level top-level window.
type Window struct {
	ID    string
	Title string
}

// Placeholder reports whether w stands in for a window that could not be
// introspected.
func (w Window) Placeholder() bool {
	return w.ID == ""
}

// Lister enumerates and manipulates top-level windows.
type Lister interface {
	// List returns windows whose title contains keyword.
	List(ctx context.Context, keyword string) ([]Window, error)
	Rename(ctx context.Context, w Window, title string) error
	Activate(ctx context.Context, w Window) error
	Maximize(ctx context.Context, w Window) error
}

// TitleReader reports the title of the focused window.
type TitleReader interface {
	ActiveTitle(ctx context.Context) (string, error)
}

// Noop is a Lister for platforms without window introspection.
type Noop struct{}

func (Noop) List(context.Context, string) ([]Window, error) { return nil, ErrUnsupported }

func (Noop) Rename(context.Context, Window, string) error { return ErrUnsupported }

func (Noop) Activate(context.Context, Window) error { return ErrUnsupported }

func (Noop) Maximize(context.Context, Window) error { return ErrUnsupported }

func (Noop) ActiveTitle(context.Context) (string, error) { return "", ErrUnsupported }
