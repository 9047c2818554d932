// Package reconciler turns the raw index and currency series into the
// canonical per-asset tables and the merged IBOV/USD table.
package reconciler

import (
	"time"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
)

// Result holds the three canonical tables of one run.
type Result struct {
	Index    *model.Table
	Currency *model.Table
	Merged   *model.Table
}

// Reconciler canonicalizes and merges an index series with a currency series.
type Reconciler struct {
	Index       model.Asset
	Currency    model.Asset
	RatioColumn string
}

// New creates a Reconciler for the IBOV/USDBRL pair.
func New() *Reconciler {
	return &Reconciler{Index: model.IBOV, Currency: model.USDBRL, RatioColumn: model.RatioColumn}
}

// Reconcile is a pure function of its inputs; the raw series are never
// modified and the outputs share no memory with them.
func (r *Reconciler) Reconcile(rawIndex, rawCurrency *model.RawSeries) Result {
	index := Canonicalize(rawIndex, r.Index)
	currency := Canonicalize(rawCurrency, r.Currency)
	merged := r.merge(index, currency)

	for _, t := range []*model.Table{index, currency, merged} {
		normalizeDates(t)
	}

	ratio := make([]float64, merged.Len())
	for i := range ratio {
		// IEEE division: a zero or NaN divisor yields Inf or NaN.
		ratio[i] = merged.Values[0][i] / merged.Values[1][i]
	}
	merged.Columns = append(merged.Columns, r.RatioColumn)
	merged.Values = append(merged.Values, ratio)

	return Result{Index: index, Currency: currency, Merged: merged}
}

// Canonicalize flattens the column labels of raw to their field level,
// projects them onto the fixed vocabulary and renames them for asset.
// Fields absent from raw are absent from the table. Dates are copied as-is.
func Canonicalize(raw *model.RawSeries, asset model.Asset) *model.Table {
	t := &model.Table{}
	if raw == nil {
		return t
	}
	t.Dates = append([]time.Time(nil), raw.Index...)

	cols := fieldColumns(raw)
	for _, f := range model.Fields() {
		i := cols[f]
		if i < 0 {
			continue
		}
		t.Columns = append(t.Columns, asset.Label(f))
		t.Values = append(t.Values, append([]float64(nil), raw.Columns[i].Values...))
		t.Integer = append(t.Integer, f.Integral())
	}
	return t
}

// fieldColumns maps every vocabulary field to the first raw column whose
// field level names it, or -1. Labels outside the vocabulary are dropped.
func fieldColumns(raw *model.RawSeries) [model.NumFields]int {
	var idx [model.NumFields]int
	for i := range idx {
		idx[i] = -1
	}
	for i, c := range raw.Columns {
		f, ok := model.ParseField(c.Label.First())
		if ok && idx[f] < 0 {
			idx[f] = i
		}
	}
	return idx
}

// merge inner-joins the close columns of both tables on their date index,
// keeping the index side's row order. Duplicate dates produce every pairing.
func (r *Reconciler) merge(index, currency *model.Table) *model.Table {
	left, right := r.Index.CloseLabel(), r.Currency.CloseLabel()
	merged := &model.Table{
		Columns: []string{left, right},
		Values:  [][]float64{{}, {}},
	}

	lv, lok := index.Column(left)
	rv, rok := currency.Column(right)
	if !lok || !rok {
		return merged
	}

	byDate := make(map[int64][]int, currency.Len())
	for j, d := range currency.Dates {
		k := d.UnixNano()
		byDate[k] = append(byDate[k], j)
	}
	for i, d := range index.Dates {
		for _, j := range byDate[d.UnixNano()] {
			merged.Dates = append(merged.Dates, d)
			merged.Values[0] = append(merged.Values[0], lv[i])
			merged.Values[1] = append(merged.Values[1], rv[j])
		}
	}
	return merged
}

// normalizeDates truncates every date to its calendar day.
func normalizeDates(t *model.Table) {
	for i, d := range t.Dates {
		t.Dates[i] = TruncateDay(d)
	}
}

// TruncateDay drops the time-of-day of d, keeping its location.
func TruncateDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}
