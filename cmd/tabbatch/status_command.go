package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tabbatch/internal/config"
	"tabbatch/internal/deps"
	"tabbatch/internal/lookup"
	"tabbatch/internal/preflight"
	"tabbatch/internal/window"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, lookup tables and desktop tooling",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			cfg := ctx.config
			snapshot, report := ctx.ensureLookup(cmd.Context())

			sections := [][]string{
				append(renderSectionHeader("Configuration", colorize), configLines(cfg, ctx.configFlag, colorize)...),
				append(renderSectionHeader("Lookup tables", colorize), lookupLines(snapshot, report, colorize)...),
				append(renderSectionHeader("Dependencies", colorize), dependencyLines(preflight.CheckSystemDeps(cfg), colorize)...),
				append(renderSectionHeader("Checks", colorize), checkLines(preflight.RunAll(cmd.Context(), cfg), colorize)...),
			}
			writeSections(out, sections)
			return nil
		},
	}
}

func writeSections(out io.Writer, sections [][]string) {
	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(out)
		}
		for _, line := range section {
			fmt.Fprintln(out, line)
		}
	}
}

func configLines(cfg *config.Config, flagPath string, colorize bool) []string {
	source := strings.TrimSpace(flagPath)
	if source == "" {
		source = "default search path"
	}
	return []string{
		renderStatusLine("Config", statusInfo, source, colorize),
		renderStatusLine("Edit URL", statusInfo, cfg.URLs.EditTemplate, colorize),
		renderStatusLine("Storefront URL", statusInfo, cfg.URLs.StorefrontTemplate, colorize),
		renderStatusLine("Batch size", statusInfo, fmt.Sprintf("%d tabs, %d SKUs per submission", cfg.Search.BatchSize, cfg.Search.MaxIdentifiers), colorize),
		renderStatusLine("Window tracking", statusInfo, windowMode(window.Detect(cfg.Browser.ProcessName)), colorize),
	}
}

func windowMode(lister window.Lister) string {
	switch lister.(type) {
	case *window.WMCtrl:
		return "wmctrl"
	case *window.Desktop:
		return "robotgo"
	default:
		return "placeholder (no window introspection)"
	}
}

func lookupLines(snapshot *lookup.Snapshot, report lookup.Report, colorize bool) []string {
	return []string{
		tableLine("Exclusions", snapshot.ExclusionCount(), report.ExclusionSkipped, report.ExclusionErr, colorize),
		tableLine("Mapping", snapshot.MappingCount(), report.MappingSkipped, report.MappingErr, colorize),
	}
}

func tableLine(label string, count, skipped int, err error, colorize bool) string {
	if err != nil {
		return renderStatusLine(label, statusError, err.Error(), colorize)
	}
	message := fmt.Sprintf("%d entries", count)
	if skipped > 0 {
		message += fmt.Sprintf(", %d non-numeric rows skipped", skipped)
	}
	if count == 0 {
		return renderStatusLine(label, statusWarn, message, colorize)
	}
	return renderStatusLine(label, statusOK, message, colorize)
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	missing := make([]string, 0)
	for _, dep := range statuses {
		if dep.Available {
			message := "Ready"
			if dep.Command != "" {
				message = fmt.Sprintf("Ready (command: %s)", dep.Command)
			}
			lines = append(lines, renderStatusLine(dep.Name, statusOK, message, colorize))
			continue
		}

		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
		missing = append(missing, dep.Name)
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing dependencies", statusWarn, strings.Join(missing, ", "), colorize))
	}
	return lines
}

func checkLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, result := range results {
		kind := statusOK
		if !result.Passed {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
	return lines
}
