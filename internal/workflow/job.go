package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tabbatch/internal/classify"
	"tabbatch/internal/logging"
	"tabbatch/internal/search"
	"tabbatch/internal/services"
)

// BatchReport is the outcome of one search batch.
type BatchReport struct {
	Index   int
	Size    int
	Outcome search.Outcome
	Err     error
}

// Summary aggregates a finished search job.
type Summary struct {
	RunID     string
	Batches   []BatchReport
	Outcome   search.Outcome
	Cancelled bool
}

// FailedBatches counts batches whose window never became usable.
func (s Summary) FailedBatches() int {
	n := 0
	for _, b := range s.Batches {
		if b.Err != nil && !errors.Is(b.Err, context.Canceled) {
			n++
		}
	}
	return n
}

// Job is a search run executing in the background.
type Job struct {
	ID      string
	Parse   classify.Result
	Batches []classify.Batch

	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
	summary Summary
}

func finishedJob(id string, parse classify.Result) *Job {
	j := &Job{ID: id, Parse: parse, cancel: func() {}, done: make(chan struct{}), summary: Summary{RunID: id}}
	close(j.done)
	return j
}

// Done is closed when the job finishes.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel stops the job after the current keystroke sequence.
func (j *Job) Cancel() {
	j.cancel()
}

// Wait blocks until the job finishes and returns its summary.
func (j *Job) Wait() Summary {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.summary
}

// StartSearch validates text, then searches every excluded pair on a
// background goroutine, one batch per browser window. It fails fast with
// ErrBusy when another search holds the automation guard.
func (o *Orchestrator) StartSearch(ctx context.Context, text string) (*Job, error) {
	ctx, logger := o.begin(ctx, "search")
	id := runIDOf(ctx)
	if err := o.requireInput(text); err != nil {
		return nil, err
	}
	if o.runner == nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "start search", "search driver not configured", nil)
	}

	parse := o.classifier.Parse(text)
	o.reportParse(parse)
	excluded, _ := classify.Partition(parse.Pairs, o.snapshot)
	if len(excluded) == 0 {
		o.publish(LevelInfo, "no SKUs with an excluded SPU to search")
		return finishedJob(id, parse), nil
	}

	release, err := o.guard.Acquire()
	if err != nil {
		o.publish(LevelError, StatusText(err))
		return nil, err
	}

	batches := classify.Batches(excluded, o.batchSize)
	runCtx, cancel := context.WithCancel(ctx)
	job := &Job{
		ID:      id,
		Parse:   parse,
		Batches: batches,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	o.publish(LevelProgress, fmt.Sprintf("searching %d SKUs in %d batches of up to %d; do not touch mouse or keyboard",
		len(excluded), len(batches), o.batchSize))
	logger.InfoContext(ctx, "search job started",
		logging.String(logging.FieldEventType, "search_job_started"),
		logging.Int("skus", len(excluded)),
		logging.Int("batches", len(batches)),
	)

	go func() {
		defer close(job.done)
		defer release()
		defer cancel()
		summary := o.runBatches(runCtx, logger, id, batches)
		job.mu.Lock()
		job.summary = summary
		job.mu.Unlock()
	}()
	return job, nil
}

func (o *Orchestrator) runBatches(ctx context.Context, logger *slog.Logger, id string, batches []classify.Batch) Summary {
	summary := Summary{RunID: id}
	total := len(batches)
	for i, batch := range batches {
		index := i + 1
		if i > 0 {
			if err := o.sleep(ctx, o.pause); err != nil {
				summary.Cancelled = true
				break
			}
		}
		if ctx.Err() != nil {
			summary.Cancelled = true
			break
		}

		batchCtx := services.WithBatch(ctx, index)
		o.publish(LevelProgress, fmt.Sprintf("batch %d/%d: opening %d tabs", index, total, len(batch)))
		outcome, err := o.runner.RunBatch(batchCtx, batch, func(p search.Progress) {
			o.publishProgress(index, total, p)
		})
		summary.Batches = append(summary.Batches, BatchReport{Index: index, Size: len(batch), Outcome: outcome, Err: err})
		summary.Outcome.Add(outcome)

		switch {
		case errors.Is(err, context.Canceled):
			summary.Cancelled = true
		case err != nil:
			o.publish(LevelError, fmt.Sprintf("batch %d/%d failed, %d SKUs not searched: %v", index, total, len(batch), err))
			logging.WarnWithContext(logging.WithContext(batchCtx, o.logger), "search batch failed", "search_batch_failed",
				logging.Error(err),
				logging.Int("size", len(batch)),
				logging.String(logging.FieldErrorHint, "check that the browser window opened and wmctrl can see it"),
				logging.String(logging.FieldImpact, "batch counted as failed; remaining batches continue"),
			)
		default:
			o.publish(LevelSuccess, fmt.Sprintf("batch %d/%d done: loaded %d, searched %d, failed %d",
				index, total, outcome.Loaded, outcome.Searched, outcome.Failed))
		}
		if summary.Cancelled {
			break
		}
	}

	if summary.Cancelled {
		o.publish(LevelWarn, "search cancelled")
	} else {
		o.publish(LevelSuccess, fmt.Sprintf("all %d batches done: loaded %d, searched %d, failed %d",
			total, summary.Outcome.Loaded, summary.Outcome.Searched, summary.Outcome.Failed))
	}
	logger.InfoContext(ctx, "search job finished",
		logging.String(logging.FieldEventType, "search_job_finished"),
		logging.Int("loaded", summary.Outcome.Loaded),
		logging.Int("searched", summary.Outcome.Searched),
		logging.Int("failed", summary.Outcome.Failed),
		logging.Bool("cancelled", summary.Cancelled),
	)
	return summary
}

func (o *Orchestrator) publishProgress(index, total int, p search.Progress) {
	switch p.Phase {
	case search.PhaseLaunching:
		return
	case search.PhaseWaiting:
		o.publish(LevelProgress, fmt.Sprintf("batch %d/%d: waiting %ds for %d tabs to load", index, total, p.WaitSeconds, p.Total))
	case search.PhaseSearching:
		o.publish(LevelProgress, fmt.Sprintf("batch %d/%d: tab %d/%d (SKU %s, SPU %s)", index, total, p.Tab, p.Total, p.Pair.SKU, p.Pair.SPU))
	}
}
