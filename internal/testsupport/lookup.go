package testsupport

import (
	"context"
	"testing"

	"tabbatch/internal/config"
	"tabbatch/internal/lookup"
)

// MustLoadSnapshot loads the lookup tables referenced by cfg and fails the
// test on any read error.
func MustLoadSnapshot(t testing.TB, cfg *config.Config) *lookup.Snapshot {
	t.Helper()

	snap, report := lookup.Load(context.Background(), lookup.SourcesFromConfig(cfg), nil)
	if err := report.Err(); err != nil {
		t.Fatalf("lookup.Load: %v", err)
	}
	return snap
}
