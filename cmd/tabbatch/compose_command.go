package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tabbatch/internal/clipboard"
	"tabbatch/internal/workflow"
)

func newComposeCommand(ctx *commandContext) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose product-detail helper text onto the clipboard",
	}
	cmd.PersistentFlags().BoolVar(&printOnly, "print", false, "Print the text instead of copying it")

	deliver := func(cmd *cobra.Command, label, text string) error {
		out := cmd.OutOrStdout()
		if printOnly {
			fmt.Fprintln(out, text)
			return nil
		}
		if err := ctx.ensureTools().clip.WriteAll(text); err != nil {
			return err
		}
		newStatusPrinter(out).print(statusSuccess(label + " copied to clipboard"))
		return nil
	}

	var file string
	polish := &cobra.Command{
		Use:   "polish [text...]",
		Short: "Wrap product copy in the polishing prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSKUInput(cmd, args, file)
			if err != nil {
				return err
			}
			prompt, err := clipboard.PolishPrompt(text)
			if err != nil {
				return err
			}
			return deliver(cmd, "polish prompt", prompt)
		},
	}
	polish.Flags().StringVarP(&file, "file", "f", "", "Read the copy from a file")

	dictionary := &cobra.Command{
		Use:   "dictionary",
		Short: "Numbered dictionary template",
		RunE: func(cmd *cobra.Command, args []string) error {
			return deliver(cmd, "dictionary template", clipboard.DictionaryTemplate())
		},
	}

	cmd.AddCommand(polish, dictionary)
	return cmd
}

func statusSuccess(message string) workflow.Status {
	return workflow.Status{Level: workflow.LevelSuccess, Message: message}
}
