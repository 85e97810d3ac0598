package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"tabbatch/internal/workflow"
)

func newOpenCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "open [sku...]",
		Short: "Open edit pages for SKUs whose SPU is not excluded",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSKUInput(cmd, args, file)
			if err != nil {
				return err
			}
			orch := ctx.orchestrator(cmd, newStatusPrinter(cmd.OutOrStdout()))
			_, err = orch.OpenDirect(cmd.Context(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SKUs from a file (one per line)")
	return cmd
}

func newPublicCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "public [sku...]",
		Short: "Open storefront pages for raw SKUs",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSKUInput(cmd, args, file)
			if err != nil {
				return err
			}
			orch := ctx.orchestrator(cmd, newStatusPrinter(cmd.OutOrStdout()))
			_, err = orch.OpenPublic(cmd.Context(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SKUs from a file (one per line)")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "search [sku...]",
		Short: "Open excluded-SPU edit pages in batches and search each tab for its SKU",
		Long: "Search opens one browser window per batch of up to ten SKUs, waits for the tabs\n" +
			"to load, then types each SKU into the page's find bar. Do not use the mouse or\n" +
			"keyboard while it runs. Interrupt with Ctrl+C to stop after the current tab.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSKUInput(cmd, args, file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			orch := ctx.orchestrator(cmd, newStatusPrinter(out))
			job, err := orch.StartSearch(cmd.Context(), text)
			if err != nil {
				return err
			}
			summary := job.Wait()
			writeSearchSummary(out, summary)
			if summary.Cancelled {
				return cmd.Context().Err()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SKUs from a file (one per line)")
	return cmd
}

func writeSearchSummary(out io.Writer, summary workflow.Summary) {
	if len(summary.Batches) == 0 {
		return
	}
	view := newTableView(
		rightColumn("Batch"),
		rightColumn("Size"),
		rightColumn("Loaded"),
		rightColumn("Searched"),
		rightColumn("Failed"),
		column{title: "Error", wrap: 60},
	)
	size := 0
	for _, b := range summary.Batches {
		note := ""
		if b.Err != nil {
			note = b.Err.Error()
		}
		size += b.Size
		view.add(
			strconv.Itoa(b.Index),
			strconv.Itoa(b.Size),
			strconv.Itoa(b.Outcome.Loaded),
			strconv.Itoa(b.Outcome.Searched),
			strconv.Itoa(b.Outcome.Failed),
			note,
		)
	}
	view.total(
		"total",
		strconv.Itoa(size),
		strconv.Itoa(summary.Outcome.Loaded),
		strconv.Itoa(summary.Outcome.Searched),
		strconv.Itoa(summary.Outcome.Failed),
	)
	fmt.Fprintln(out, view.render())
}
