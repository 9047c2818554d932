package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordPipelineRun(_ *PipelineRun) error { return nil }
func (n *NoopRecorder) RecordRatios(_ []RatioRow) error        { return nil }
func (n *NoopRecorder) RecordSnapshotRun(_ *SnapshotRun) error { return nil }
func (n *NoopRecorder) Close() error                           { return nil }
