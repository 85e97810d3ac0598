package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tabbatch/internal/config"
)

// readSKUInput returns the text from file, args or stdin, in that order of
// precedence. Each argument is one line.
func readSKUInput(cmd *cobra.Command, args []string, file string) (string, error) {
	if path := strings.TrimSpace(file); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return "", fmt.Errorf("resolve input file: %w", err)
		}
		data, err := os.ReadFile(expanded)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, "\n"), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("no input: pass it as arguments, with --file, or on stdin")
	}
	return string(data), nil
}
