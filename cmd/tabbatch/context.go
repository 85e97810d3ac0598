package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tabbatch/internal/browser"
	"tabbatch/internal/clipboard"
	"tabbatch/internal/config"
	"tabbatch/internal/keyboard"
	"tabbatch/internal/logging"
	"tabbatch/internal/lookup"
	"tabbatch/internal/search"
	"tabbatch/internal/window"
	"tabbatch/internal/workflow"
)

// toolset holds the components that touch the desktop.
type toolset struct {
	opener   workflow.Opener
	runner   workflow.BatchRunner
	keyboard keyboard.Keyboard
	clip     clipboard.Clipboard
	titles   clipboard.TitleReader
}

// tabProbe reads the focused tab with the toolset's keyboard and clipboard.
func (t *toolset) tabProbe() *clipboard.TabProbe {
	return clipboard.NewTabProbe(t.keyboard, t.clip, clipboard.WithTitleReader(t.titles))
}

type commandContext struct {
	configFlag string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	lookupOnce sync.Once
	snapshot   *lookup.Snapshot
	report     lookup.Report

	toolsOnce sync.Once
	tools     *toolset

	guardOnce sync.Once
	guard     *workflow.Guard
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		if c.logger != nil {
			return
		}
		logger, err := logging.NewFromConfig(c.config)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// ensureLookup loads both tables once per process. Read failures leave the
// affected table empty and are kept in the report.
func (c *commandContext) ensureLookup(ctx context.Context) (*lookup.Snapshot, lookup.Report) {
	c.lookupOnce.Do(func() {
		c.snapshot, c.report = lookup.Load(ctx, lookup.SourcesFromConfig(c.config), c.ensureLogger())
	})
	return c.snapshot, c.report
}

func (c *commandContext) ensureTools() *toolset {
	c.toolsOnce.Do(func() {
		if c.tools != nil {
			return
		}
		cfg := c.config
		logger := c.ensureLogger()
		launcher := browser.NewLauncher(browser.NewResolver(cfg.Browser), logger)
		timing := window.Timing{
			Settle:        cfg.SettleDelay(),
			PollAttempts:  cfg.Search.PollAttempts,
			PollInterval:  cfg.PollInterval(),
			ActivateDelay: cfg.ActivateDelay(),
		}
		lister := window.Detect(cfg.Browser.ProcessName)
		locator := window.NewLocator(lister, launcher, cfg.Browser.TitleKeyword, timing, logger)
		kb := keyboard.NewRobot()
		titles, _ := lister.(clipboard.TitleReader)
		c.tools = &toolset{
			opener:   launcher,
			runner:   search.NewDriver(locator, kb, cfg, logger),
			keyboard: kb,
			clip:     clipboard.System{},
			titles:   titles,
		}
	})
	return c.tools
}

// ensureGuard returns the process-wide automation guard. Every orchestrator
// and the tab probe share it so in-process exclusion holds across commands.
func (c *commandContext) ensureGuard() *workflow.Guard {
	c.guardOnce.Do(func() {
		c.guard = workflow.NewGuard(c.config.Paths.LockFile)
	})
	return c.guard
}

// orchestrator wires a workflow orchestrator that reports to printer.
func (c *commandContext) orchestrator(cmd *cobra.Command, printer *statusPrinter) *workflow.Orchestrator {
	snapshot, report := c.ensureLookup(cmd.Context())
	if report.Partial() {
		printer.print(workflow.Status{Level: workflow.LevelWarn, Message: "lookup tables partially loaded: " + report.Err().Error()})
	}
	tools := c.ensureTools()
	return workflow.New(c.config, snapshot, tools.opener, tools.runner, c.ensureGuard(), c.ensureLogger(),
		workflow.WithStatus(printer.print))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
