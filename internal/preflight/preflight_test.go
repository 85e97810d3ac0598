package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tabbatch/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFileReadable(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "table.csv")
	if err := os.WriteFile(f, []byte("spu\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckFileReadable("table", f); !result.Passed || !strings.Contains(result.Detail, "6 bytes") {
		t.Fatalf("expected readable file, got %+v", result)
	}
	if result := CheckFileReadable("table", dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
	if result := CheckFileReadable("table", filepath.Join(dir, "missing.csv")); result.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestCheckDisplay(t *testing.T) {
	t.Setenv("DISPLAY", ":1")
	if result := CheckDisplay(); !result.Passed {
		t.Fatalf("expected X11 display to pass, got %+v", result)
	}
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if result := CheckDisplay(); result.Passed {
		t.Fatal("expected Wayland-only session to fail")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithLookupTables([]string{"1"}, map[string]string{"2": "1"}))
	results := RunAll(context.Background(), cfg)
	if len(results) < 3 {
		t.Fatalf("expected at least 3 results, got %d", len(results))
	}
	for _, r := range results[:3] {
		if !r.Passed {
			t.Fatalf("expected %s to pass, got %s", r.Name, r.Detail)
		}
	}

	cfg.Logging.File = true
	withLog := RunAll(context.Background(), cfg)
	if len(withLog) != len(results)+1 {
		t.Fatalf("expected log directory check when file logging is on")
	}
	if RunAll(context.Background(), nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
