package testsupport

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"tabbatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test. All
// automation delays are zeroed so tests never sleep.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ExclusionFile = filepath.Join(base, "tables", "exclusion.csv")
	cfgVal.Paths.MappingFile = filepath.Join(base, "tables", "mapping.csv")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.LockFile = filepath.Join(base, "automation.lock")
	cfgVal.Search.SettleSeconds = 0
	cfgVal.Search.PollIntervalMS = 0
	cfgVal.Search.ActivateDelayMS = 0
	cfgVal.Search.BatchPauseSeconds = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLookupTables writes CSV lookup tables holding exclusions and mapping.
func WithLookupTables(exclusions []string, mapping map[string]string) ConfigOption {
	return func(b *configBuilder) {
		rows := [][]string{{"spu"}}
		for _, spu := range exclusions {
			rows = append(rows, []string{spu})
		}
		WriteCSV(b.t, b.cfg.Paths.ExclusionFile, rows)

		skus := make([]string, 0, len(mapping))
		for sku := range mapping {
			skus = append(skus, sku)
		}
		sort.Strings(skus)
		rows = [][]string{{"sku", "spu"}}
		for _, sku := range skus {
			rows = append(rows, []string{sku, mapping[sku]})
		}
		WriteCSV(b.t, b.cfg.Paths.MappingFile, rows)
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, a Chrome binary and wmctrl are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"google-chrome", "wmctrl"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
