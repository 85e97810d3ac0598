package window

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tabbatch/internal/logging"
	"tabbatch/internal/services"
)

// ErrNotLocated reports that the new browser window never appeared.
var ErrNotLocated = errors.New("new browser window not located")

// Launcher starts a browser window holding urls.
type Launcher interface {
	Launch(ctx context.Context, urls []string) error
}

// Timing holds the locator's delays.
type Timing struct {
	Settle        time.Duration
	PollAttempts  int
	PollInterval  time.Duration
	ActivateDelay time.Duration
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithSleeper injects the pause function (primarily for tests).
func WithSleeper(sleep services.Sleeper) LocatorOption {
	return func(l *Locator) {
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// Locator launches a browser window and identifies it among existing ones.
type Locator struct {
	lister   Lister
	launcher Launcher
	keyword  string
	timing   Timing
	sleep    services.Sleeper
	logger   *slog.Logger
}

// NewLocator constructs a locator. keyword filters candidate window titles.
func NewLocator(lister Lister, launcher Launcher, keyword string, timing Timing, logger *slog.Logger, opts ...LocatorOption) *Locator {
	if lister == nil {
		lister = Noop{}
	}
	if timing.PollAttempts <= 0 {
		timing.PollAttempts = 1
	}
	l := &Locator{
		lister:   lister,
		launcher: launcher,
		keyword:  keyword,
		timing:   timing,
		sleep:    services.SleepWithContext,
		logger:   logging.NewComponentLogger(logger, "window"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LaunchAndLocate opens urls in a new window, waits for it to appear, tags
// its title with tag, and focuses and maximizes it. Without window
// introspection a placeholder window is returned once the settle delay passes.
func (l *Locator) LaunchAndLocate(ctx context.Context, urls []string, tag string) (Window, error) {
	logger := logging.WithContext(ctx, l.logger)
	seen := make(map[string]struct{})
	introspect := true
	before, err := l.lister.List(ctx, l.keyword)
	switch {
	case errors.Is(err, ErrUnsupported):
		introspect = false
	case err != nil:
		logging.WarnWithContext(logger, "window snapshot failed", "window_snapshot_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that wmctrl can reach the display"),
			logging.String(logging.FieldImpact, "every matching window counts as new"),
		)
	default:
		for _, w := range before {
			seen[w.ID] = struct{}{}
		}
	}

	if err := l.launcher.Launch(ctx, urls); err != nil {
		return Window{}, err
	}
	if err := l.sleep(ctx, l.timing.Settle); err != nil {
		return Window{}, err
	}
	if !introspect {
		logger.DebugContext(ctx, "window introspection unavailable; using focused window",
			logging.String(logging.FieldEventType, "window_placeholder"),
		)
		return Window{}, nil
	}

	found, ok, err := l.poll(ctx, seen)
	if err != nil {
		return Window{}, err
	}
	if !ok {
		return Window{}, services.Wrap(services.ErrAutomation, "window", "locate",
			fmt.Sprintf("no new %q window after %d attempts", l.keyword, l.timing.PollAttempts), ErrNotLocated)
	}

	if tag != "" {
		title := found.Title + " - [" + tag + "]"
		if err := l.lister.Rename(ctx, found, title); err != nil {
			logger.DebugContext(ctx, "window rename failed", logging.Error(err))
		} else {
			found.Title = title
		}
	}
	if err := l.lister.Activate(ctx, found); err != nil {
		logger.DebugContext(ctx, "window activate failed", logging.Error(err))
	}
	if err := l.lister.Maximize(ctx, found); err != nil {
		logger.DebugContext(ctx, "window maximize failed", logging.Error(err))
	}
	if err := l.sleep(ctx, l.timing.ActivateDelay); err != nil {
		return Window{}, err
	}
	logger.InfoContext(ctx, "browser window located",
		logging.String(logging.FieldEventType, "window_located"),
		logging.String("window_id", found.ID),
		logging.String("title", found.Title),
	)
	return found, nil
}

func (l *Locator) poll(ctx context.Context, seen map[string]struct{}) (Window, bool, error) {
	for attempt := 1; attempt <= l.timing.PollAttempts; attempt++ {
		current, err := l.lister.List(ctx, l.keyword)
		if err != nil {
			l.logger.DebugContext(ctx, "window poll failed", logging.Int("attempt", attempt), logging.Error(err))
		}
		for _, w := range current {
			if _, old := seen[w.ID]; old || strings.TrimSpace(w.Title) == "" {
				continue
			}
			return w, true, nil
		}
		if attempt == l.timing.PollAttempts {
			break
		}
		if err := l.sleep(ctx, l.timing.PollInterval); err != nil {
			return Window{}, false, err
		}
	}
	return Window{}, false, nil
}
