package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
)

// SummaryWindow is the number of trading rows scanned, roughly 30 calendar days.
const SummaryWindow = 22

// CalculateRange scans the most recent window finite values and returns the high and low.
func CalculateRange(values []float64, window int) (high, low float64, n int, err error) {
	if len(values) == 0 {
		return 0, 0, 0, errors.New("no values provided")
	}
	start := len(values) - window
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < len(values); i++ {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		n++
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	if n == 0 {
		return 0, 0, 0, errors.New("no finite values in window")
	}
	return high, low, n, nil
}

// CalculatePosition returns where the current value sits within the range (0.0~1.0).
func CalculatePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// Summarize computes headline figures for column of the merged table.
func Summarize(t *model.Table, column string, window int) (*model.RatioSummary, error) {
	values, ok := t.Column(column)
	if !ok {
		return nil, fmt.Errorf("column %q not found", column)
	}
	high, low, n, err := CalculateRange(values, window)
	if err != nil {
		return nil, err
	}
	last := values[len(values)-1]
	pos, err := CalculatePosition(last, high, low)
	if err != nil {
		return nil, err
	}
	return &model.RatioSummary{
		LastDate: t.Dates[len(t.Dates)-1],
		Last:     last,
		High:     high,
		Low:      low,
		Position: pos,
		Window:   n,
	}, nil
}
