package workflow

import (
	"fmt"
	"strings"

	"tabbatch/internal/classify"
)

// Level classifies a status message.
type Level string

const (
	LevelInfo     Level = "info"
	LevelProgress Level = "progress"
	LevelSuccess  Level = "success"
	LevelWarn     Level = "warn"
	LevelError    Level = "error"
)

// Status is one update of the status line.
type Status struct {
	Level   Level
	Message string
}

// StatusFunc receives status updates. Calls may arrive from a background goroutine.
type StatusFunc func(Status)

const rejectionPreview = 3

// RejectionSummary renders the first few rejections on one line.
func RejectionSummary(rejected []classify.Rejection) string {
	if len(rejected) == 0 {
		return ""
	}
	n := min(len(rejected), rejectionPreview)
	parts := make([]string, 0, n)
	for _, r := range rejected[:n] {
		parts = append(parts, fmt.Sprintf("line %d: %s", r.Line, r.String()))
	}
	msg := "skipped invalid lines: " + strings.Join(parts, " | ")
	if len(rejected) > rejectionPreview {
		msg += fmt.Sprintf(" (%d invalid lines)", len(rejected))
	}
	return msg
}
