package recorder

import "github.com/thaleswillreis/Mercado-Financeiro/internal/model"

// NewSnapshotRun converts a download outcome into its history record.
func NewSnapshotRun(res *model.SnapshotResult, runErr error) *SnapshotRun {
	run := &SnapshotRun{
		RunID:      res.RunID,
		Status:     StatusAbsent,
		Path:       res.Path,
		Source:     res.Source,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
	}
	switch {
	case runErr != nil:
		run.Status = StatusFailed
		run.Note = runErr.Error()
	case res.Produced:
		run.Status = StatusOK
	case res.TriggerErr != nil:
		run.Note = res.TriggerErr.Error()
	}
	return run
}
