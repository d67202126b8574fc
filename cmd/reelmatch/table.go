package main

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// column describes one output column: header text and alignment.
type column struct {
	header string
	right  bool
}

func col(header string) column { return column{header: header} }

func numCol(header string) column { return column{header: header, right: true} }

// resultTable accumulates typed rows for terminal output. Rendering uses
// rounded borders on interactive terminals and the plain default style when
// output is piped or redirected.
type resultTable struct {
	columns []column
	rows    []table.Row
}

func newResultTable(columns ...column) *resultTable {
	return &resultTable{columns: columns}
}

// addRow appends one row; missing trailing cells render empty.
func (rt *resultTable) addRow(cells ...any) {
	row := make(table.Row, len(rt.columns))
	for i := range rt.columns {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	rt.rows = append(rt.rows, row)
}

func (rt *resultTable) empty() bool {
	return len(rt.rows) == 0
}

func (rt *resultTable) render() string {
	tw := table.NewWriter()
	if stdoutIsTerminal() {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, len(rt.columns))
	configs := make([]table.ColumnConfig, 0, len(rt.columns))
	for i, c := range rt.columns {
		header[i] = c.header
		align := text.AlignLeft
		if c.right {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.AppendHeader(header)
	tw.AppendRows(rt.rows)
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stdoutIsTerminal() bool {
	return isTerminal(os.Stdout.Fd())
}
