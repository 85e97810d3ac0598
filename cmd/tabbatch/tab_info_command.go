package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tabbatch/internal/services"
)

func newTabInfoCommand(ctx *commandContext) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "tab-info",
		Short: "Print the SPU of the focused browser tab",
		Long: "tab-info waits for the given delay so the browser can be focused, then copies\n" +
			"the address bar, extracts the productId parameter and prints the window title\n" +
			"when the desktop exposes it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printer := newStatusPrinter(out)
			release, err := ctx.ensureGuard().Acquire()
			if err != nil {
				return err
			}
			defer release()

			tools := ctx.ensureTools()
			if delay > 0 {
				fmt.Fprintf(out, "Focus the browser tab; reading it in %s\n", delay)
			}
			if err := services.SleepWithContext(cmd.Context(), delay); err != nil {
				return err
			}
			info, err := tools.tabProbe().Current(cmd.Context())
			if err != nil {
				return err
			}
			printer.print(statusSuccess("SPU " + info.SPU))
			fmt.Fprintln(out, info.URL)
			if info.Title != "" {
				fmt.Fprintln(out, info.Title)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", 3*time.Second, "Time to switch to the browser before reading")
	return cmd
}
