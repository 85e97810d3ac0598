package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"tabbatch/internal/browser"
	"tabbatch/internal/classify"
	"tabbatch/internal/config"
	"tabbatch/internal/logging"
	"tabbatch/internal/lookup"
	"tabbatch/internal/search"
	"tabbatch/internal/services"
)

// Opener starts a browser window holding urls without tracking it.
type Opener interface {
	Launch(ctx context.Context, urls []string) error
}

// BatchRunner runs the search sequence over one batch.
type BatchRunner interface {
	RunBatch(ctx context.Context, batch classify.Batch, progress search.ProgressFunc) (search.Outcome, error)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStatus sets the status line callback.
func WithStatus(fn StatusFunc) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.status = fn
		}
	}
}

// WithSleeper injects the inter-batch pause (primarily for tests).
func WithSleeper(sleep services.Sleeper) Option {
	return func(o *Orchestrator) {
		if sleep != nil {
			o.sleep = sleep
		}
	}
}

// WithIDGenerator overrides run id generation (primarily for tests).
func WithIDGenerator(fn func() string) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// Orchestrator runs the user-triggered operations against one lookup snapshot.
type Orchestrator struct {
	snapshot   *lookup.Snapshot
	classifier *classify.Classifier
	limit      int
	batchSize  int
	pause      time.Duration
	edit       browser.URLTemplate
	storefront browser.URLTemplate

	opener Opener
	runner BatchRunner
	guard  *Guard

	status StatusFunc
	sleep  services.Sleeper
	newID  func() string
	logger *slog.Logger
}

// New constructs an orchestrator.
func New(cfg *config.Config, snapshot *lookup.Snapshot, opener Opener, runner BatchRunner, guard *Guard, logger *slog.Logger, opts ...Option) *Orchestrator {
	if snapshot == nil {
		snapshot = lookup.Empty()
	}
	if guard == nil {
		guard = NewGuard("")
	}
	o := &Orchestrator{
		snapshot:   snapshot,
		classifier: classify.New(snapshot, cfg.Search.MaxIdentifiers),
		limit:      cfg.Search.MaxIdentifiers,
		batchSize:  cfg.Search.BatchSize,
		pause:      cfg.BatchPause(),
		edit:       browser.URLTemplate(cfg.URLs.EditTemplate),
		storefront: browser.URLTemplate(cfg.URLs.StorefrontTemplate),
		opener:     opener,
		runner:     runner,
		guard:      guard,
		status:     func(Status) {},
		sleep:      services.SleepWithContext,
		newID:      uuid.NewString,
		logger:     logging.NewComponentLogger(logger, "workflow"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Snapshot returns the lookup snapshot used for classification.
func (o *Orchestrator) Snapshot() *lookup.Snapshot {
	return o.snapshot
}

// Classify parses text against the snapshot without side effects.
func (o *Orchestrator) Classify(text string) classify.Result {
	return o.classifier.Parse(text)
}

// DirectResult describes an OpenDirect run.
type DirectResult struct {
	RunID    string
	Parse    classify.Result
	Excluded int
	Opened   []classify.Pair
}

// OpenDirect opens the edit pages of every validated pair whose SPU is not
// excluded, in one new browser window.
func (o *Orchestrator) OpenDirect(ctx context.Context, text string) (DirectResult, error) {
	ctx, logger := o.begin(ctx, "open")
	result := DirectResult{RunID: runIDOf(ctx)}
	if err := o.requireInput(text); err != nil {
		return result, err
	}

	result.Parse = o.classifier.Parse(text)
	o.reportParse(result.Parse)
	excluded, direct := classify.Partition(result.Parse.Pairs, o.snapshot)
	result.Excluded = len(excluded)
	if len(direct) == 0 {
		o.publish(LevelInfo, "no SKUs with a directly editable SPU (every SPU is excluded or nothing validated)")
		return result, nil
	}

	spus := make([]string, 0, len(direct))
	for _, pair := range direct {
		spus = append(spus, pair.SPU)
	}
	if err := o.launch(ctx, o.edit.Build(spus)); err != nil {
		o.fail(logger, "open edit pages failed", err)
		return result, err
	}
	result.Opened = direct
	o.publish(LevelSuccess, fmt.Sprintf("edit window started (%d tabs)", len(direct)))
	return result, nil
}

// PublicResult describes an OpenPublic run.
type PublicResult struct {
	RunID  string
	Parse  classify.Result
	Opened []string
}

// OpenPublic opens storefront pages for raw SKUs without the mapping step.
func (o *Orchestrator) OpenPublic(ctx context.Context, text string) (PublicResult, error) {
	ctx, logger := o.begin(ctx, "public")
	result := PublicResult{RunID: runIDOf(ctx)}
	if err := o.requireInput(text); err != nil {
		return result, err
	}

	result.Parse = classify.ParseRaw(text, o.limit)
	o.reportParse(result.Parse)
	skus := result.Parse.SKUs()
	if len(skus) == 0 {
		o.publish(LevelInfo, "no valid storefront SKUs (SKUs must be numeric)")
		return result, nil
	}
	if err := o.launch(ctx, o.storefront.Build(skus)); err != nil {
		o.fail(logger, "open storefront pages failed", err)
		return result, err
	}
	result.Opened = skus
	o.publish(LevelSuccess, fmt.Sprintf("storefront window started (%d tabs)", len(skus)))
	return result, nil
}

// launch opens urls while holding the automation guard. A new window takes
// OS focus, so it must not appear while a search is typing into another one.
func (o *Orchestrator) launch(ctx context.Context, urls []string) error {
	release, err := o.guard.Acquire()
	if err != nil {
		return err
	}
	defer release()
	return o.opener.Launch(ctx, urls)
}

func (o *Orchestrator) begin(ctx context.Context, operation string) (context.Context, *slog.Logger) {
	ctx = services.WithRunID(ctx, o.newID())
	ctx = services.WithOperation(ctx, operation)
	return ctx, logging.WithContext(ctx, o.logger)
}

func (o *Orchestrator) requireInput(text string) error {
	if strings.TrimSpace(text) == "" {
		o.publish(LevelError, "enter a SKU list first (one per line)")
		return services.Wrap(services.ErrValidation, "workflow", "parse input", "empty SKU list", nil)
	}
	return nil
}

func (o *Orchestrator) reportParse(result classify.Result) {
	if msg := RejectionSummary(result.Rejected); msg != "" {
		o.publish(LevelWarn, msg)
	}
	if result.Truncated {
		o.publish(LevelWarn, fmt.Sprintf("only the first %d valid SKUs are used", len(result.Pairs)))
	}
}

func (o *Orchestrator) fail(logger *slog.Logger, msg string, err error) {
	o.publish(LevelError, StatusText(err))
	logging.WarnWithContext(logger, msg, "operation_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hintFor(err)),
		logging.String(logging.FieldImpact, "no browser window was opened"),
	)
}

func (o *Orchestrator) publish(level Level, msg string) {
	o.status(Status{Level: level, Message: msg})
}

// StatusText renders err for the status line.
func StatusText(err error) string {
	switch services.Classify(err) {
	case services.KindBusy:
		return "busy: another search is driving the keyboard; wait for it to finish"
	case services.KindResource:
		return "not found: " + err.Error()
	case services.KindInput:
		return "invalid input: " + err.Error()
	default:
		return "failed: " + err.Error()
	}
}

func hintFor(err error) string {
	switch services.Classify(err) {
	case services.KindResource:
		return "install Chrome/Chromium or set browser.binary in the config"
	case services.KindBusy:
		return "wait for the running search to finish"
	default:
		return "check logs for details"
	}
}

func runIDOf(ctx context.Context) string {
	id, _ := services.RunIDFromContext(ctx)
	return id
}
