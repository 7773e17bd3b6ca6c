package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table renders aligned columns for text output.
type Table struct {
	headers   []string
	rows      [][]string
	right     map[int]bool
	separator string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers:   headers,
		right:     map[int]bool{},
		separator: "  ",
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// AlignRight right-aligns column col, for amounts.
func (t *Table) AlignRight(col int) {
	t.right[col] = true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the header, a dashed rule and every row.
func (t *Table) Render(w io.Writer) error {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return nil
	}

	widths := t.widths()
	lines := make([][]string, 0, len(t.rows)+2)
	if len(t.headers) > 0 {
		lines = append(lines, t.headers)
		rule := make([]string, len(widths))
		for i, n := range widths {
			rule[i] = strings.Repeat("-", n)
		}
		lines = append(lines, rule)
	}
	lines = append(lines, t.rows...)

	for _, cells := range lines {
		if _, err := fmt.Fprintln(w, t.line(cells, widths)); err != nil {
			return err
		}
	}
	return nil
}

// String returns the rendered table.
func (t *Table) String() string {
	var sb strings.Builder
	_ = t.Render(&sb)
	return sb.String()
}

func (t *Table) widths() []int {
	n := len(t.headers)
	for _, row := range t.rows {
		n = max(n, len(row))
	}
	widths := make([]int, n)
	for _, row := range append([][]string{t.headers}, t.rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	return widths
}

func (t *Table) line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(cell))
		if t.right[i] {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}
