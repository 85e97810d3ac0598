package search

import (
	"context"
	"log/slog"

	"tabbatch/internal/browser"
	"tabbatch/internal/classify"
	"tabbatch/internal/config"
	"tabbatch/internal/keyboard"
	"tabbatch/internal/logging"
	"tabbatch/internal/services"
	"tabbatch/internal/window"
)

// Locator opens a window holding urls and focuses it.
type Locator interface {
	LaunchAndLocate(ctx context.Context, urls []string, tag string) (window.Window, error)
}

// Phase names the step a batch is in.
type Phase string

const (
	PhaseLaunching Phase = "launching"
	PhaseWaiting   Phase = "waiting"
	PhaseSearching Phase = "searching"
)

// Progress is reported as a batch advances.
type Progress struct {
	Phase       Phase
	Tab         int
	Total       int
	Pair        classify.Pair
	WaitSeconds int
}

// ProgressFunc receives progress updates. It may be nil.
type ProgressFunc func(Progress)

// Outcome counts the tabs of one or more batches.
type Outcome struct {
	Loaded   int
	Searched int
	Failed   int
}

// Add accumulates other into o.
func (o *Outcome) Add(other Outcome) {
	o.Loaded += other.Loaded
	o.Searched += other.Searched
	o.Failed += other.Failed
}

// Option configures a Driver.
type Option func(*Driver)

// WithSleeper injects the pause function (primarily for tests).
func WithSleeper(sleep services.Sleeper) Option {
	return func(d *Driver) {
		if sleep != nil {
			d.sleep = sleep
		}
	}
}

// WithModifier overrides the shortcut modifier key.
func WithModifier(modifier string) Option {
	return func(d *Driver) {
		if modifier != "" {
			d.modifier = modifier
		}
	}
}

// Driver runs the find sequence over batches.
type Driver struct {
	locator    Locator
	kb         keyboard.Keyboard
	edit       browser.URLTemplate
	tag        string
	backspaces int
	wait       WaitParams
	modifier   string
	sleep      services.Sleeper
	logger     *slog.Logger
}

// NewDriver constructs a driver from configuration.
func NewDriver(locator Locator, kb keyboard.Keyboard, cfg *config.Config, logger *slog.Logger, opts ...Option) *Driver {
	d := &Driver{
		locator:    locator,
		kb:         kb,
		edit:       browser.URLTemplate(cfg.URLs.EditTemplate),
		tag:        cfg.Search.WindowTag,
		backspaces: cfg.Search.BackspacePresses,
		wait:       WaitParamsFromConfig(cfg.Search),
		modifier:   keyboard.PrimaryModifier(),
		sleep:      services.SleepWithContext,
		logger:     logging.NewComponentLogger(logger, "search"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RunBatch opens the batch's edit pages in a new window and searches each tab
// for its SKU. When the window cannot be opened or located every pair counts
// as failed and the error is returned. Keystroke failures only fail their tab.
func (d *Driver) RunBatch(ctx context.Context, batch classify.Batch, progress ProgressFunc) (Outcome, error) {
	total := len(batch)
	if total == 0 {
		return Outcome{}, nil
	}
	logger := logging.WithContext(ctx, d.logger)
	report := func(p Progress) {
		if progress != nil {
			p.Total = total
			progress(p)
		}
	}

	spus := make([]string, 0, total)
	for _, pair := range batch {
		spus = append(spus, pair.SPU)
	}
	report(Progress{Phase: PhaseLaunching})
	if _, err := d.locator.LaunchAndLocate(ctx, d.edit.Build(spus), d.tag); err != nil {
		return Outcome{Failed: total}, err
	}

	if err := d.kb.Tap("1", d.modifier); err != nil {
		logger.DebugContext(ctx, "jump to first tab failed", logging.Error(err))
	}

	waitSeconds := WaitSeconds(total, d.wait)
	report(Progress{Phase: PhaseWaiting, WaitSeconds: waitSeconds})
	if err := d.sleep(ctx, Wait(total, d.wait)); err != nil {
		return Outcome{Loaded: total}, err
	}

	outcome := Outcome{Loaded: total}
	for i, pair := range batch {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}
		report(Progress{Phase: PhaseSearching, Tab: i + 1, Pair: pair})
		if err := d.searchTab(pair.SKU); err != nil {
			outcome.Failed++
			logging.WarnWithContext(logger, "sku search failed", "sku_search_failed",
				logging.String("sku", pair.SKU),
				logging.String("spu", pair.SPU),
				logging.Int("tab", i+1),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "keep the browser window focused while the search runs"),
				logging.String(logging.FieldImpact, "tab left unsearched"),
			)
		} else {
			outcome.Searched++
		}
		if i < total-1 {
			if err := d.kb.Tap(keyboard.KeyTab, "ctrl"); err != nil {
				logger.DebugContext(ctx, "next tab failed", logging.Error(err))
			}
		}
	}

	logger.InfoContext(ctx, "search batch finished",
		logging.String(logging.FieldEventType, "search_batch_complete"),
		logging.Int("loaded", outcome.Loaded),
		logging.Int("searched", outcome.Searched),
		logging.Int("failed", outcome.Failed),
	)
	return outcome, nil
}

func (d *Driver) searchTab(sku string) error {
	if err := d.kb.Tap("f", d.modifier); err != nil {
		return err
	}
	if err := keyboard.Press(d.kb, keyboard.KeyBackspace, d.backspaces); err != nil {
		return err
	}
	if err := d.kb.Type(sku); err != nil {
		return err
	}
	if err := d.kb.Tap(keyboard.KeyEnter); err != nil {
		return err
	}
	return d.kb.Tap(keyboard.KeyEscape)
}
