package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. wrap > 0 soft-wraps cells wider than it.
type column struct {
	title string
	right bool
	wrap  int
}

func leftColumn(title string) column  { return column{title: title} }
func rightColumn(title string) column { return column{title: title, right: true} }

// tableView collects rows for a rounded go-pretty table. Headers and the
// footer render upper-cased.
type tableView struct {
	columns []column
	rows    [][]string
	footer  []string
	index   bool
}

func newTableView(columns ...column) *tableView {
	return &tableView{columns: columns}
}

// numbered adds a leading row-number column.
func (v *tableView) numbered() *tableView {
	v.index = true
	return v
}

func (v *tableView) add(cells ...string) {
	v.rows = append(v.rows, cells)
}

// total sets the footer row.
func (v *tableView) total(cells ...string) {
	v.footer = cells
}

func (v *tableView) empty() bool {
	return len(v.rows) == 0
}

func (v *tableView) render() string {
	if len(v.columns) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetAutoIndex(v.index)

	header := make(table.Row, len(v.columns))
	configs := make([]table.ColumnConfig, len(v.columns))
	for i, c := range v.columns {
		header[i] = c.title
		align := text.AlignLeft
		if c.right {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		}
		if c.wrap > 0 {
			configs[i].WidthMax = c.wrap
			configs[i].WidthMaxEnforcer = text.WrapSoft
		}
	}
	tw.AppendHeader(header)
	for _, cells := range v.rows {
		tw.AppendRow(v.row(cells))
	}
	if len(v.footer) > 0 {
		tw.AppendFooter(v.row(v.footer))
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// row pads or trims cells to the column count.
func (v *tableView) row(cells []string) table.Row {
	r := make(table.Row, len(v.columns))
	for i := range r {
		if i < len(cells) {
			r[i] = cells[i]
		} else {
			r[i] = ""
		}
	}
	return r
}
