package model

import "time"

// Label is a possibly multi-level column label. Level 0 is the field name;
// providers may add the symbol as a second level.
type Label []string

// First returns the field-name level of the label.
func (l Label) First() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// Column is one raw series column.
type Column struct {
	Label  Label
	Values []float64
}

// RawSeries is a date-indexed table as returned by a series provider.
// Missing values are NaN; non-trading days are absent.
type RawSeries struct {
	Symbol  string
	Index   []time.Time
	Columns []Column
}

// Len returns the number of rows.
func (s *RawSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Index)
}

// Empty reports whether the series holds no rows.
func (s *RawSeries) Empty() bool { return s.Len() == 0 }
