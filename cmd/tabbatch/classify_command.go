package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"tabbatch/internal/browser"
	"tabbatch/internal/classify"
	"tabbatch/internal/lookup"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var file string
	var public bool

	cmd := &cobra.Command{
		Use:   "classify [sku...]",
		Short: "Show how a SKU list would be routed without opening anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSKUInput(cmd, args, file)
			if err != nil {
				return err
			}
			cfg := ctx.config
			out := cmd.OutOrStdout()
			if public {
				result := classify.ParseRaw(text, cfg.Search.MaxIdentifiers)
				writePublicPreview(out, result, browser.URLTemplate(cfg.URLs.StorefrontTemplate))
				return nil
			}
			snapshot, report := ctx.ensureLookup(cmd.Context())
			if report.Partial() {
				fmt.Fprintln(out, renderEventLine(statusWarn, "lookup tables partially loaded: "+report.Err().Error(), shouldColorize(out)))
			}
			result := classify.New(snapshot, cfg.Search.MaxIdentifiers).Parse(text)
			writeClassification(out, result, snapshot)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SKUs from a file (one per line)")
	cmd.Flags().BoolVar(&public, "public", false, "Preview storefront URLs without the mapping step")
	return cmd
}

func writeClassification(out io.Writer, result classify.Result, snapshot *lookup.Snapshot) {
	excluded, direct := classify.Partition(result.Pairs, snapshot)
	view := newTableView(leftColumn("SKU"), leftColumn("SPU"), leftColumn("Route")).numbered()
	for _, pair := range result.Pairs {
		route := "open"
		if snapshot.IsExcluded(pair.SPU) {
			route = "search"
		}
		view.add(pair.SKU, pair.SPU, route)
	}
	if !view.empty() {
		fmt.Fprintln(out, view.render())
	}
	writeRejections(out, result.Rejected)
	fmt.Fprintf(out, "%d valid (%d search, %d open), %d rejected\n", len(result.Pairs), len(excluded), len(direct), len(result.Rejected))
	if result.Truncated {
		fmt.Fprintf(out, "Input truncated after %d SKUs\n", len(result.Pairs))
	}
}

func writePublicPreview(out io.Writer, result classify.Result, storefront browser.URLTemplate) {
	view := newTableView(leftColumn("SKU"), leftColumn("URL")).numbered()
	for _, sku := range result.SKUs() {
		view.add(sku, storefront.Fill(sku))
	}
	if !view.empty() {
		fmt.Fprintln(out, view.render())
	}
	writeRejections(out, result.Rejected)
	fmt.Fprintf(out, "%d valid, %d rejected\n", len(result.Pairs), len(result.Rejected))
	if result.Truncated {
		fmt.Fprintf(out, "Input truncated after %d SKUs\n", len(result.Pairs))
	}
}

func writeRejections(out io.Writer, rejected []classify.Rejection) {
	if len(rejected) == 0 {
		return
	}
	view := newTableView(rightColumn("Line"), column{title: "Input", wrap: 40}, leftColumn("Reason"))
	for _, r := range rejected {
		view.add(strconv.Itoa(r.Line), r.Candidate, string(r.Reason))
	}
	fmt.Fprintln(out, view.render())
}
