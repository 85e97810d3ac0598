package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"tabbatch/internal/services"
	"tabbatch/internal/workflow"
)

const shellPrompt = "tabbatch> "

const shellHelp = `Commands:
  classify <sku...>   preview routing
  open <sku...>       open edit pages for non-excluded SPUs
  search <sku...>     search excluded-SPU pages in the background
  public <sku...>     open storefront pages
  paste <command>     read SKUs for command line by line until an empty line
  tab [seconds]       print the SPU of the focused tab after a delay (default 3)
  jobs                show the background search
  wait                block until the background search finishes
  cancel              stop the background search after the current tab
  help                show this text
  quit, exit          leave (cancels a running search)`

func newShellCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session that keeps searches running in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printer := newStatusPrinter(out)
			sh := &shell{
				ctx:     ctx,
				out:     out,
				printer: printer,
				orch:    ctx.orchestrator(cmd, printer),
			}
			return sh.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type shell struct {
	ctx     *commandContext
	out     io.Writer
	printer *statusPrinter
	orch    *workflow.Orchestrator

	mu  sync.Mutex
	job *workflow.Job
}

func (s *shell) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	s.locked(func() { fmt.Fprintln(s.out, "Type help for commands.") })
	for {
		s.prompt()
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		verb := strings.ToLower(fields[0])
		rest := fields[1:]
		if verb == "quit" || verb == "exit" {
			break
		}
		if verb == "paste" {
			if len(rest) != 1 {
				s.printer.print(workflow.Status{Level: workflow.LevelError, Message: "usage: paste <classify|open|search|public>"})
				continue
			}
			verb = strings.ToLower(rest[0])
			rest = readBlock(scanner)
		}
		s.dispatch(ctx, verb, rest)
		if ctx.Err() != nil {
			break
		}
	}
	s.stop()
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read shell input: %w", err)
	}
	return nil
}

func (s *shell) prompt() {
	s.locked(func() { fmt.Fprint(s.out, shellPrompt) })
}

// locked runs fn while holding the printer lock so background status lines
// do not interleave with it.
func (s *shell) locked(fn func()) {
	s.printer.mu.Lock()
	defer s.printer.mu.Unlock()
	fn()
}

// readBlock collects lines until an empty line or end of input.
func readBlock(scanner *bufio.Scanner) []string {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *shell) dispatch(ctx context.Context, verb string, args []string) {
	text := strings.Join(args, "\n")
	switch verb {
	case "help", "?":
		s.locked(func() { fmt.Fprintln(s.out, shellHelp) })
	case "classify":
		s.locked(func() { writeClassification(s.out, s.orch.Classify(text), s.orch.Snapshot()) })
	case "open":
		_, _ = s.orch.OpenDirect(ctx, text)
	case "public":
		_, _ = s.orch.OpenPublic(ctx, text)
	case "search":
		job, err := s.orch.StartSearch(ctx, text)
		if err != nil {
			return
		}
		s.mu.Lock()
		s.job = job
		s.mu.Unlock()
	case "tab":
		s.tabInfo(ctx, args)
	case "jobs":
		s.describeJob()
	case "wait":
		if job := s.current(); job != nil {
			summary := job.Wait()
			s.locked(func() { writeSearchSummary(s.out, summary) })
		} else {
			s.printer.print(workflow.Status{Level: workflow.LevelInfo, Message: "no search started in this session"})
		}
	case "cancel":
		if job := s.current(); job != nil && !finished(job) {
			job.Cancel()
			s.printer.print(workflow.Status{Level: workflow.LevelInfo, Message: "cancelling search after the current tab"})
		} else {
			s.printer.print(workflow.Status{Level: workflow.LevelInfo, Message: "no search running"})
		}
	default:
		s.printer.print(workflow.Status{Level: workflow.LevelError, Message: fmt.Sprintf("unknown command %q (type help)", verb)})
	}
}

func (s *shell) tabInfo(ctx context.Context, args []string) {
	delay := 3 * time.Second
	if len(args) > 0 {
		seconds, err := strconv.Atoi(args[0])
		if err != nil || seconds < 0 {
			s.printer.print(workflow.Status{Level: workflow.LevelError, Message: "usage: tab [seconds]"})
			return
		}
		delay = time.Duration(seconds) * time.Second
	}
	release, err := s.ctx.ensureGuard().Acquire()
	if err != nil {
		s.printer.print(workflow.Status{Level: workflow.LevelError, Message: workflow.StatusText(err)})
		return
	}
	defer release()

	if err := services.SleepWithContext(ctx, delay); err != nil {
		return
	}
	tools := s.ctx.ensureTools()
	info, err := tools.tabProbe().Current(ctx)
	if err != nil {
		s.printer.print(workflow.Status{Level: workflow.LevelError, Message: workflow.StatusText(err)})
		return
	}
	s.printer.print(statusSuccess(fmt.Sprintf("SPU %s (%s)", info.SPU, info.URL)))
	if info.Title != "" {
		s.locked(func() { fmt.Fprintln(s.out, info.Title) })
	}
}

func (s *shell) describeJob() {
	job := s.current()
	if job == nil {
		s.printer.print(workflow.Status{Level: workflow.LevelInfo, Message: "no search started in this session"})
		return
	}
	if !finished(job) {
		skus := 0
		for _, batch := range job.Batches {
			skus += len(batch)
		}
		s.printer.print(workflow.Status{Level: workflow.LevelProgress,
			Message: fmt.Sprintf("search %s running: %d SKUs in %d batches", job.ID, skus, len(job.Batches))})
		return
	}
	summary := job.Wait()
	s.printer.print(workflow.Status{Level: workflow.LevelInfo,
		Message: fmt.Sprintf("search %s finished: loaded %d, searched %d, failed %d",
			job.ID, summary.Outcome.Loaded, summary.Outcome.Searched, summary.Outcome.Failed)})
}

func (s *shell) current() *workflow.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job
}

// stop cancels a running search and waits for it to release the guard.
func (s *shell) stop() {
	job := s.current()
	if job == nil || finished(job) {
		return
	}
	job.Cancel()
	job.Wait()
}

func finished(job *workflow.Job) bool {
	select {
	case <-job.Done():
		return true
	default:
		return false
	}
}
