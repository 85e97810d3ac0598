package lookup

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"tabbatch/internal/config"
	"tabbatch/internal/logging"
	"tabbatch/internal/services"
	"tabbatch/internal/textutil"
)

// Sources names the two tables and the format hints needed to read them.
type Sources struct {
	ExclusionPath  string
	MappingPath    string
	Sheet          string
	ExclusionTable string
	MappingTable   string
	// Header rows skipped in file sources.
	ExclusionHeaderRows int
	MappingHeaderRows   int
}

// SourcesFromConfig builds Sources from the configured paths and table names.
func SourcesFromConfig(cfg *config.Config) Sources {
	return Sources{
		ExclusionPath:  cfg.Paths.ExclusionFile,
		MappingPath:    cfg.Paths.MappingFile,
		Sheet:          cfg.Lookup.Sheet,
		ExclusionTable: cfg.Lookup.ExclusionTable,
		MappingTable:   cfg.Lookup.MappingTable,

		ExclusionHeaderRows: cfg.Lookup.ExclusionHeaderRows,
		MappingHeaderRows:   cfg.Lookup.MappingHeaderRows,
	}
}

// Report describes the outcome of one Load call.
type Report struct {
	ExclusionErr error
	MappingErr   error
	// Skipped counts rows dropped because a value was not numeric.
	ExclusionSkipped int
	MappingSkipped   int
}

// Partial reports whether at least one table failed to load.
func (r Report) Partial() bool {
	return r.ExclusionErr != nil || r.MappingErr != nil
}

// Err joins the table errors, or returns nil when both loaded.
func (r Report) Err() error {
	return errors.Join(r.ExclusionErr, r.MappingErr)
}

// Load reads both tables. It never fails as a whole: a table that cannot be
// read contributes an empty container and an error in the report.
func Load(ctx context.Context, src Sources, logger *slog.Logger) (*Snapshot, Report) {
	logger = logging.NewComponentLogger(logger, "lookup")
	var report Report

	excluded, skipped, err := loadExclusions(ctx, src)
	report.ExclusionSkipped = skipped
	if err != nil {
		report.ExclusionErr = services.Wrap(services.ErrConfiguration, "lookup", "exclusion table", src.ExclusionPath, err)
		excluded = nil
		logging.WarnWithContext(logger, "exclusion table unavailable", "lookup_exclusion_failed",
			logging.String("path", src.ExclusionPath),
			logging.Error(err),
			logging.String(logging.FieldImpact, "every SPU is treated as directly openable"),
		)
	}

	mapping, skipped, err := loadMapping(ctx, src)
	report.MappingSkipped = skipped
	if err != nil {
		report.MappingErr = services.Wrap(services.ErrConfiguration, "lookup", "mapping table", src.MappingPath, err)
		mapping = nil
		logging.WarnWithContext(logger, "mapping table unavailable", "lookup_mapping_failed",
			logging.String("path", src.MappingPath),
			logging.Error(err),
			logging.String(logging.FieldImpact, "every SKU will be rejected as unmapped"),
		)
	}

	snapshot := NewSnapshot(excluded, mapping)
	logger.Info("lookup tables loaded",
		logging.String(logging.FieldEventType, "lookup_loaded"),
		logging.Int("excluded_spus", snapshot.ExclusionCount()),
		logging.Int("sku_mappings", snapshot.MappingCount()),
		logging.Int("skipped_rows", report.ExclusionSkipped+report.MappingSkipped),
		logging.Bool("partial", report.Partial()),
	)
	return snapshot, report
}

func loadExclusions(ctx context.Context, src Sources) ([]string, int, error) {
	if strings.TrimSpace(src.ExclusionPath) == "" {
		return nil, 0, errors.New("path not configured")
	}
	rows, err := readTable(ctx, src.ExclusionPath, tableOptions{sheet: src.Sheet, table: src.ExclusionTable, headerRows: src.ExclusionHeaderRows})
	if err != nil {
		return nil, 0, err
	}
	var (
		values  []string
		skipped int
	)
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		spu := textutil.NormalizeIdentifier(row[0])
		if !textutil.IsDigits(spu) {
			skipped++
			continue
		}
		values = append(values, spu)
	}
	return values, skipped, nil
}

func loadMapping(ctx context.Context, src Sources) (map[string]string, int, error) {
	if strings.TrimSpace(src.MappingPath) == "" {
		return nil, 0, errors.New("path not configured")
	}
	rows, err := readTable(ctx, src.MappingPath, tableOptions{sheet: src.Sheet, table: src.MappingTable, headerRows: src.MappingHeaderRows})
	if err != nil {
		return nil, 0, err
	}
	mapping := make(map[string]string, len(rows))
	skipped := 0
	for _, row := range rows {
		if len(row) < 2 {
			skipped++
			continue
		}
		sku := textutil.NormalizeIdentifier(row[0])
		spu := textutil.NormalizeIdentifier(row[1])
		if !textutil.IsDigits(sku) || !textutil.IsDigits(spu) {
			skipped++
			continue
		}
		mapping[sku] = spu
	}
	return mapping, skipped, nil
}
