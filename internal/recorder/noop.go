package recorder

// NoopRecorder is a no-op implementation used when no storage is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordStats(_ *Snapshot) error { return nil }
func (n *NoopRecorder) Close() error                  { return nil }
