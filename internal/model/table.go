package model

import "time"

// DateColumn is the name of the materialized date column of every table.
const DateColumn = "Date"

// Table is a canonical, column-major output table keyed by Date.
type Table struct {
	Columns []string
	Dates   []time.Time
	Values  [][]float64 // Values[c][r] for Columns[c]
	Integer []bool      // Integer[c] marks count columns; nil means none
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Dates) }

// Header returns the output column order, Date first.
func (t *Table) Header() []string {
	h := make([]string, 0, len(t.Columns)+1)
	h = append(h, DateColumn)
	return append(h, t.Columns...)
}

// IsInteger reports whether column c holds counts.
func (t *Table) IsInteger(c int) bool { return c < len(t.Integer) && t.Integer[c] }

// ColumnIndex returns the position of name in Columns, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return nil, false
	}
	return t.Values[i], true
}
