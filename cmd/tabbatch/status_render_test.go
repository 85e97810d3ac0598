package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"tabbatch/internal/deps"
	"tabbatch/internal/window"
	"tabbatch/internal/workflow"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Exclusions", statusError, "missing", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Exclusions:", "[ERROR] missing")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Browser", statusOK, "Ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "Browser", Available: false, Detail: "no Chrome or Chromium found"},
		{Name: "wmctrl", Available: true, Command: "/usr/bin/wmctrl"},
		{Name: "xclip", Available: false, Optional: true, Detail: `binary "xclip" not found`},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[ERROR] no Chrome or Chromium found") {
		t.Fatalf("expected error detail first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[OK] Ready (command: /usr/bin/wmctrl)") {
		t.Fatalf("expected ready detail, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "[WARN]") {
		t.Fatalf("optional dependency should warn, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "Browser, xclip") {
		t.Fatalf("expected missing summary, got %q", lines[3])
	}
}

func TestStatusPrinterLevels(t *testing.T) {
	var buf bytes.Buffer
	printer := newStatusPrinter(&buf)
	printer.print(workflow.Status{Level: workflow.LevelProgress, Message: "batch 1/2"})
	printer.print(workflow.Status{Level: workflow.LevelError, Message: "failed"})

	want := "[INFO] batch 1/2\n[ERROR] failed\n"
	if got := buf.String(); got != want {
		t.Fatalf("printer output %q, want %q", got, want)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestWindowMode(t *testing.T) {
	cases := []struct {
		lister window.Lister
		want   string
	}{
		{window.NewWMCtrl(), "wmctrl"},
		{window.NewDesktop("chrome"), "robotgo"},
		{window.Noop{}, "placeholder (no window introspection)"},
	}
	for _, tc := range cases {
		if got := windowMode(tc.lister); got != tc.want {
			t.Fatalf("windowMode(%T) = %q, want %q", tc.lister, got, tc.want)
		}
	}
}
