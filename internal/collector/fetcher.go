package collector

import (
	"context"
	"time"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
)

// SeriesFetcher fetches daily bars for a symbol over [start, end).
//
//go:generate mockgen -source=fetcher.go -destination=mocks/fetcher.go -package=mocks
type SeriesFetcher interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) (*model.RawSeries, error)
	Name() string
}
