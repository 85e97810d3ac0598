package preflight

import (
	"context"
	"path/filepath"
	"runtime"

	"tabbatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(_ context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckFileReadable("Exclusion table", cfg.Paths.ExclusionFile),
		CheckFileReadable("Mapping table", cfg.Paths.MappingFile),
		CheckDirectoryAccess("Lock directory", filepath.Dir(cfg.Paths.LockFile)),
	}

	// Log directory only matters when file logging is on
	if cfg.Logging.File {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	if runtime.GOOS == "linux" {
		results = append(results, CheckDisplay())
	}

	return results
}
