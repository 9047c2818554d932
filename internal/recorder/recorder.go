package recorder

import "time"

// Run status values.
const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
	StatusAbsent = "ABSENT" // snapshot finished without producing the file
)

// PipelineRun records one acquisition run.
type PipelineRun struct {
	RunID        string
	StartDate    string
	EndDate      string
	Status       string
	Error        string
	IndexRows    int
	CurrencyRows int
	MergedRows   int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// RatioRow is one row of the merged IBOV/USD table.
type RatioRow struct {
	Date    string
	IBOV    float64
	Cambio  float64
	IBOVUSD float64
	RunID   string
}

// SnapshotRun records one snapshot download.
type SnapshotRun struct {
	RunID      string
	Status     string
	Path       string
	Source     string
	Note       string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Recorder persists run history for analysis.
type Recorder interface {
	RecordPipelineRun(run *PipelineRun) error
	RecordRatios(rows []RatioRow) error
	RecordSnapshotRun(run *SnapshotRun) error
	Close() error
}
