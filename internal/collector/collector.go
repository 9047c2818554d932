package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
)

// DateFormat is the calendar-date layout used for range bounds and file names.
const DateFormat = "2006-01-02"

// DefaultStartDate is the first day requested when none is configured.
const DefaultStartDate = "2025-01-01"

// ErrDataUnavailable means at least one series of the pair came back empty.
var ErrDataUnavailable = errors.New("data unavailable")

// Pair holds both raw series of one run.
type Pair struct {
	Index    *model.RawSeries
	Currency *model.RawSeries
	Start    time.Time
	End      time.Time // exclusive
}

// Collector fetches the index and currency series as a unit.
type Collector struct {
	Fetcher  SeriesFetcher
	Index    model.Asset
	Currency model.Asset
	Start    time.Time
	Now      func() time.Time
	Logger   zerolog.Logger
}

// NewCollector creates a Collector for the IBOV/USDBRL pair.
func NewCollector(fetcher SeriesFetcher, start time.Time, logger zerolog.Logger) *Collector {
	return &Collector{
		Fetcher:  fetcher,
		Index:    model.IBOV,
		Currency: model.USDBRL,
		Start:    start,
		Now:      time.Now,
		Logger:   logger,
	}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// EndDate returns yesterday relative to now, as a calendar day. Same-day
// data is never requested.
func EndDate(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-1, 0, 0, 0, 0, time.UTC)
}

// FetchPair fetches both series. Any failure, including a single empty
// series, fails the pair as a whole.
func (c *Collector) FetchPair(ctx context.Context) (*Pair, error) {
	end := EndDate(c.Now())
	c.Logger.Info().
		Str("source", c.Fetcher.Name()).
		Str("start", c.Start.Format(DateFormat)).
		Str("end", end.Format(DateFormat)).
		Msg("downloading series")

	index, err := c.Fetcher.Fetch(ctx, c.Index.Symbol, c.Start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.Index.Symbol, err)
	}
	currency, err := c.Fetcher.Fetch(ctx, c.Currency.Symbol, c.Start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.Currency.Symbol, err)
	}

	var empty []string
	if index.Empty() {
		empty = append(empty, c.Index.Symbol)
	}
	if currency.Empty() {
		empty = append(empty, c.Currency.Symbol)
	}
	if len(empty) > 0 {
		return nil, fmt.Errorf("%w: empty series for %s", ErrDataUnavailable, strings.Join(empty, ", "))
	}

	c.Logger.Info().
		Int("index_rows", index.Len()).
		Int("currency_rows", currency.Len()).
		Msg("download complete")
	return &Pair{Index: index, Currency: currency, Start: c.Start, End: end}, nil
}
