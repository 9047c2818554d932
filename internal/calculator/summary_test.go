package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
)

func TestCalculateRange_Window(t *testing.T) {
	values := []float64{100, 1, 5, 3, 4}
	high, low, n, err := CalculateRange(values, 3)
	if err != nil {
		t.Fatal(err)
	}
	if high != 5 || low != 3 || n != 3 {
		t.Errorf("got high=%v low=%v n=%d, want 5 3 3", high, low, n)
	}
}

func TestCalculateRange_SkipsNonFinite(t *testing.T) {
	values := []float64{2, math.NaN(), math.Inf(1), 4}
	high, low, n, err := CalculateRange(values, 10)
	if err != nil {
		t.Fatal(err)
	}
	if high != 4 || low != 2 || n != 2 {
		t.Errorf("got high=%v low=%v n=%d", high, low, n)
	}
	if _, _, _, err := CalculateRange([]float64{math.NaN()}, 10); err == nil {
		t.Error("expected error for window without finite values")
	}
	if _, _, _, err := CalculateRange(nil, 10); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestCalculatePosition(t *testing.T) {
	tests := []struct {
		cur, high, low, want float64
	}{
		{5, 10, 0, 0.5},
		{10, 10, 0, 1},
		{-1, 10, 0, 0},
		{3, 3, 3, 0.5},
	}
	for _, tt := range tests {
		got, err := CalculatePosition(tt.cur, tt.high, tt.low)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("position(%v,%v,%v) = %v, want %v", tt.cur, tt.high, tt.low, got, tt.want)
		}
	}
	if _, err := CalculatePosition(1, 0, 2); err == nil {
		t.Error("expected error when high < low")
	}
}

func TestSummarize(t *testing.T) {
	tbl := &model.Table{
		Columns: []string{model.RatioColumn},
		Dates: []time.Time{
			time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		Values: [][]float64{{20000, 24000, 22000}},
	}
	s, err := Summarize(tbl, model.RatioColumn, SummaryWindow)
	if err != nil {
		t.Fatal(err)
	}
	if s.Last != 22000 || s.High != 24000 || s.Low != 20000 || s.Window != 3 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.Position != 0.5 {
		t.Errorf("position = %v, want 0.5", s.Position)
	}
	if !s.LastDate.Equal(tbl.Dates[2]) {
		t.Errorf("last date = %v", s.LastDate)
	}
	if _, err := Summarize(tbl, "missing", SummaryWindow); err == nil {
		t.Error("expected error for unknown column")
	}
}
