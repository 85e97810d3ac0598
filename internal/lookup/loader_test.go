package lookup

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"tabbatch/internal/logging"
	"tabbatch/internal/services"
)

func writeText(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// fileSources reads both tables with one header row, as configured by default.
func fileSources(exclusion, mapping string) Sources {
	return Sources{ExclusionPath: exclusion, MappingPath: mapping, ExclusionHeaderRows: 1, MappingHeaderRows: 1}
}

func TestLoadCSVTables(t *testing.T) {
	dir := t.TempDir()
	exclusion := filepath.Join(dir, "exclusion.csv")
	mapping := filepath.Join(dir, "mapping.csv")
	writeText(t, exclusion, "SPU\n900\nabc\n 902 \n")
	writeText(t, mapping, "SKU,SPU\n111,900\n222,900\n333,901\nx44,901\n555,\n")

	snap, report := Load(context.Background(), fileSources(exclusion, mapping), logging.NewNop())
	if report.Partial() {
		t.Fatalf("unexpected partial load: %v", report.Err())
	}
	if snap.ExclusionCount() != 2 || !snap.IsExcluded("900") || !snap.IsExcluded("902") {
		t.Fatalf("unexpected exclusion set: count=%d", snap.ExclusionCount())
	}
	if snap.IsExcluded("SPU") {
		t.Fatal("header row must be skipped")
	}
	if snap.MappingCount() != 3 {
		t.Fatalf("expected 3 mappings, got %d", snap.MappingCount())
	}
	if spu, ok := snap.SPU("333"); !ok || spu != "901" {
		t.Fatalf("unexpected mapping for 333: %q %v", spu, ok)
	}
	if report.ExclusionSkipped != 1 || report.MappingSkipped != 2 {
		t.Fatalf("unexpected skip counts: %+v", report)
	}
}

func TestLoadTSVTable(t *testing.T) {
	dir := t.TempDir()
	mapping := filepath.Join(dir, "mapping.tsv")
	writeText(t, mapping, "sku\tspu\n111\t900\n")

	snap, report := Load(context.Background(), Sources{ExclusionPath: filepath.Join(dir, "missing.csv"), MappingPath: mapping}, nil)
	if report.MappingErr != nil {
		t.Fatalf("mapping should load: %v", report.MappingErr)
	}
	if spu, ok := snap.SPU("111"); !ok || spu != "900" {
		t.Fatalf("unexpected mapping: %q %v", spu, ok)
	}
}

func TestLoadHeaderRows(t *testing.T) {
	dir := t.TempDir()
	exclusion := filepath.Join(dir, "exclusion.csv")
	mapping := filepath.Join(dir, "mapping.csv")
	writeText(t, exclusion, "Dominant SPUs\n800\n900\n901\n")
	writeText(t, mapping, "111,900\n222,901\n")

	src := Sources{ExclusionPath: exclusion, MappingPath: mapping, ExclusionHeaderRows: 2, MappingHeaderRows: 0}
	snap, report := Load(context.Background(), src, nil)
	if report.Partial() {
		t.Fatalf("unexpected partial load: %v", report.Err())
	}
	if snap.IsExcluded("800") {
		t.Fatal("second leading row must be skipped with two header rows")
	}
	if snap.ExclusionCount() != 2 || report.ExclusionSkipped != 0 {
		t.Fatalf("unexpected exclusions: count=%d skipped=%d", snap.ExclusionCount(), report.ExclusionSkipped)
	}
	if snap.MappingCount() != 2 {
		t.Fatalf("expected the first mapping row kept without a header, got %d", snap.MappingCount())
	}

	src.ExclusionHeaderRows = 10
	snap, report = Load(context.Background(), src, nil)
	if report.Partial() || snap.ExclusionCount() != 0 {
		t.Fatalf("expected an empty exclusion set when every row is a header: %v", report.Err())
	}
}

func TestLoadMissingFilesIsPartialNotFatal(t *testing.T) {
	dir := t.TempDir()
	snap, report := Load(context.Background(), Sources{
		ExclusionPath: filepath.Join(dir, "nope.xlsx"),
		MappingPath:   filepath.Join(dir, "nope.csv"),
	}, logging.NewNop())

	if !report.Partial() {
		t.Fatal("expected partial failure")
	}
	if !errors.Is(report.Err(), services.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", report.Err())
	}
	if snap == nil || snap.ExclusionCount() != 0 || snap.MappingCount() != 0 {
		t.Fatal("expected empty snapshot on failure")
	}
	if _, ok := snap.SPU("111"); ok {
		t.Fatal("empty snapshot must not map anything")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	writeText(t, path, "{}")
	_, report := Load(context.Background(), Sources{ExclusionPath: path, MappingPath: path}, nil)
	if report.ExclusionErr == nil || report.MappingErr == nil {
		t.Fatalf("expected both tables to fail: %+v", report)
	}
}

func TestLoadWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.xlsx")

	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	rows := [][]any{{"SKU", "SPU"}, {111, 900}, {"222", "900"}, {"n/a", "901"}}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := book.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = book.Close()

	snap, report := Load(context.Background(), fileSources(path, path), nil)
	if report.Partial() {
		t.Fatalf("unexpected failure: %v", report.Err())
	}
	if snap.MappingCount() != 2 {
		t.Fatalf("expected 2 mappings, got %d", snap.MappingCount())
	}
	if spu, ok := snap.SPU("111"); !ok || spu != "900" {
		t.Fatalf("numeric cell not read as digits: %q %v", spu, ok)
	}
	if !snap.IsExcluded("111") || !snap.IsExcluded("222") {
		t.Fatal("first column should feed the exclusion set")
	}
}

func TestLoadSQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	statements := []string{
		`CREATE TABLE exclusion (spu TEXT)`,
		`INSERT INTO exclusion VALUES ('900'), ('abc')`,
		`CREATE TABLE sku_spu (sku INTEGER, spu INTEGER)`,
		`INSERT INTO sku_spu VALUES (111, 900), (333, 901)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	_ = db.Close()

	snap, report := Load(context.Background(), Sources{
		ExclusionPath:  path,
		MappingPath:    path,
		ExclusionTable: "exclusion",
		MappingTable:   "sku_spu",
	}, nil)
	if report.Partial() {
		t.Fatalf("unexpected failure: %v", report.Err())
	}
	if snap.ExclusionCount() != 1 || !snap.IsExcluded("900") {
		t.Fatalf("unexpected exclusions: %d", snap.ExclusionCount())
	}
	if spu, ok := snap.SPU("333"); !ok || spu != "901" {
		t.Fatalf("unexpected mapping: %q %v", spu, ok)
	}
}

func TestLoadSQLiteRejectsBadTableName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.db")
	writeText(t, path, "")
	_, err := readSQLite(context.Background(), path, "x; DROP TABLE y")
	if err == nil {
		t.Fatal("expected invalid table name error")
	}
}

func TestNilSnapshotIsSafe(t *testing.T) {
	var snap *Snapshot
	if snap.IsExcluded("1") || snap.MappingCount() != 0 || snap.ExclusionCount() != 0 {
		t.Fatal("nil snapshot should behave as empty")
	}
	if _, ok := snap.SPU("1"); ok {
		t.Fatal("nil snapshot should not map")
	}
}
