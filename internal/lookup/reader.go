package lookup

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"
)

type tableOptions struct {
	sheet string
	table string
	// headerRows leading rows are dropped from file sources.
	headerRows int
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// readTable returns the data rows of a tabular source, header excluded.
func readTable(ctx context.Context, path string, opts tableOptions) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readDelimited(path, ',', opts.headerRows)
	case ".tsv", ".txt":
		return readDelimited(path, '\t', opts.headerRows)
	case ".xlsx", ".xlsm":
		return readWorkbook(path, opts.sheet, opts.headerRows)
	case ".db", ".sqlite", ".sqlite3":
		return readSQLite(ctx, path, opts.table)
	default:
		return nil, fmt.Errorf("unsupported table format %q", filepath.Ext(path))
	}
}

func readDelimited(path string, comma rune, headerRows int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		rows = append(rows, record)
	}
	return dropHeader(rows, headerRows), nil
}

func readWorkbook(path, sheet string, headerRows int) ([][]string, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
		}
		sheet = sheets[0]
	}
	rows, err := book.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return dropHeader(rows, headerRows), nil
}

// readSQLite reads every row of table. Column names act as the header, so no
// data row is dropped.
func readSQLite(ctx context.Context, path, table string) ([][]string, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("set query_only: %w", err)
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", table, err)
	}

	var out [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = v.String
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

func dropHeader(rows [][]string, n int) [][]string {
	if n < 0 {
		n = 0
	}
	if len(rows) <= n {
		return nil
	}
	return rows[n:]
}
