package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"tabbatch/internal/logging"
	"tabbatch/internal/services"
)

// Starter starts a process without waiting for it.
type Starter interface {
	Start(ctx context.Context, binary string, args []string) error
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithStarter injects a custom starter (primarily for tests).
func WithStarter(starter Starter) LauncherOption {
	return func(l *Launcher) {
		if starter != nil {
			l.starter = starter
		}
	}
}

// Launcher opens URLs in a new browser window.
type Launcher struct {
	resolver *Resolver
	starter  Starter
	logger   *slog.Logger
}

// NewLauncher constructs a launcher around resolver.
func NewLauncher(resolver *Resolver, logger *slog.Logger, opts ...LauncherOption) *Launcher {
	l := &Launcher{
		resolver: resolver,
		starter:  detachedStarter{},
		logger:   logging.NewComponentLogger(logger, "browser"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts the browser with one tab per URL and returns immediately.
// Nothing is started when the browser cannot be resolved.
func (l *Launcher) Launch(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return services.Wrap(services.ErrValidation, "browser", "launch", "no urls to open", nil)
	}
	cmd, err := l.resolver.Resolve()
	if err != nil {
		return err
	}
	if err := l.starter.Start(ctx, cmd.Path, cmd.Argv(urls)); err != nil {
		return services.Wrap(services.ErrExternalTool, "browser", "launch", "start "+cmd.Path, err)
	}
	logging.WithContext(ctx, l.logger).InfoContext(ctx, "browser window requested",
		logging.String(logging.FieldEventType, "browser_launch"),
		logging.String("binary", cmd.Path),
		logging.Int("tabs", len(urls)),
	)
	return nil
}

type detachedStarter struct{}

func (detachedStarter) Start(_ context.Context, binary string, args []string) error {
	// The browser must outlive the request, so the caller's context is not bound.
	cmd := exec.Command(binary, args...) //nolint:gosec
	cmd.SysProcAttr = detachedAttr()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
