package model

import "time"

// RatioSummary holds headline figures of the IBOV_USD series.
type RatioSummary struct {
	LastDate time.Time
	Last     float64
	High     float64
	Low      float64
	Position float64 // 0.0 ~ 1.0 within [Low, High]
	Window   int     // rows actually scanned
}

// PipelineReport is the outcome of one acquisition run.
type PipelineReport struct {
	RunID        string
	Start        time.Time
	End          time.Time
	Files        []string
	IndexRows    int
	CurrencyRows int
	MergedRows   int
	Summary      *RatioSummary
	StartedAt    time.Time
	FinishedAt   time.Time
}

// SnapshotResult is the outcome of one snapshot download.
type SnapshotResult struct {
	RunID      string
	Path       string // stable target path
	Source     string // browser-assigned name, when found
	Produced   bool
	TriggerErr error
	StartedAt  time.Time
	FinishedAt time.Time
}
