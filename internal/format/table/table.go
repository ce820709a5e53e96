// Package table lays out plain-text listings in aligned columns.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes one column of a listing.
type Column struct {
	Title string
	Align Alignment
}

// Table accumulates rows and renders them padded to the widest cell of each
// column. Trailing padding is trimmed from every line.
type Table struct {
	Columns []Column
	rows    [][]string
}

func New(columns ...Column) *Table {
	return &Table{Columns: columns}
}

// Add appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) Add(cells ...string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Lines renders the header followed by every row.
func (t *Table) Lines() []string {
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Title
	}
	all := append([][]string{header}, t.rows...)

	widths := make([]int, len(t.Columns))
	for _, row := range all {
		for c, cell := range row {
			widths[c] = max(widths[c], ansi.StringWidth(cell))
		}
	}

	out := make([]string, len(all))
	for i, row := range all {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[c]-ansi.StringWidth(cell))
			if t.Columns[c].Align == AlignRight {
				b.WriteString(pad + cell)
			} else {
				b.WriteString(cell + pad)
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// String joins Lines with newlines.
func (t *Table) String() string {
	return strings.Join(t.Lines(), "\n") + "\n"
}
