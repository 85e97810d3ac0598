package browser

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"tabbatch/internal/config"
	"tabbatch/internal/services"
)

var (
	windowsCandidates = []string{
		"C:/Program Files/Google/Chrome/Application/chrome.exe",
		"C:/Program Files (x86)/Google/Chrome/Application/chrome.exe",
	}
	linuxCandidates = []string{
		"google-chrome",
		"google-chrome-stable",
		"chromium",
		"chromium-browser",
		"brave-browser",
		"microsoft-edge",
		"microsoft-edge-stable",
	}
)

// Command is a resolved browser invocation. URLs are appended to Args.
type Command struct {
	Path string
	Args []string
}

// Argv returns the full argument vector for urls, excluding Path.
func (c Command) Argv(urls []string) []string {
	argv := make([]string, 0, len(c.Args)+len(urls))
	argv = append(argv, c.Args...)
	return append(argv, urls...)
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithGOOS overrides the target platform (primarily for tests).
func WithGOOS(goos string) ResolverOption {
	return func(r *Resolver) {
		if goos != "" {
			r.goos = goos
		}
	}
}

// WithLookPath injects the executable lookup used for candidates.
func WithLookPath(fn func(string) (string, error)) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.lookPath = fn
		}
	}
}

// WithFallback injects the last-resort browser lookup.
func WithFallback(fn func() (string, bool)) ResolverOption {
	return func(r *Resolver) {
		r.fallback = fn
	}
}

// Resolver finds the browser executable for the current platform.
type Resolver struct {
	override      string
	newWindowFlag string
	goos          string
	lookPath      func(string) (string, error)
	fallback      func() (string, bool)
}

// NewResolver constructs a resolver from browser settings.
func NewResolver(cfg config.Browser, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		override:      strings.TrimSpace(cfg.Binary),
		newWindowFlag: strings.TrimSpace(cfg.NewWindowFlag),
		goos:          runtime.GOOS,
		lookPath:      exec.LookPath,
		fallback:      launcher.LookPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the command that opens a new browser window. A configured
// binary is authoritative: when it cannot be found no other candidate is tried.
func (r *Resolver) Resolve() (Command, error) {
	if r.override != "" {
		path, err := r.lookPath(r.override)
		if err != nil {
			return Command{}, services.Wrap(services.ErrNotFound, "browser", "resolve", "configured binary "+r.override+" not found", err)
		}
		return r.command(path), nil
	}

	switch r.goos {
	case "darwin":
		args := []string{"-a", "Google Chrome", "--new", "--args"}
		if r.newWindowFlag != "" {
			args = append(args, r.newWindowFlag)
		}
		return Command{Path: "open", Args: args}, nil
	case "windows":
		if path, ok := r.firstFound(windowsCandidates); ok {
			return r.command(path), nil
		}
	default:
		if path, ok := r.firstFound(linuxCandidates); ok {
			return r.command(path), nil
		}
	}

	if r.fallback != nil {
		if path, ok := r.fallback(); ok && path != "" {
			return r.command(path), nil
		}
	}
	return Command{}, services.Wrap(services.ErrNotFound, "browser", "resolve", "no Chrome/Chromium executable found", nil)
}

func (r *Resolver) firstFound(candidates []string) (string, bool) {
	for _, candidate := range candidates {
		if path, err := r.lookPath(candidate); err == nil && path != "" {
			return path, true
		}
	}
	return "", false
}

func (r *Resolver) command(path string) Command {
	cmd := Command{Path: path}
	if r.newWindowFlag != "" {
		cmd.Args = []string{r.newWindowFlag}
	}
	return cmd
}
