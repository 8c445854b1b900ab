package pv

import "time"

// Run is one recorded invocation of the archival engine. A zero FinishedAt
// means the run is still in progress (or was terminated externally).
type Run struct {
	ID         string
	Operation  string
	WorkDir    string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     string // "running", "success" or "error"
	Stats      RunStats
}

// HistoryStore persists run summaries. Per-file outcomes are never stored;
// the append-only log remains the detailed record.
type HistoryStore interface {
	BeginRun(run *Run) error
	FinishRun(run *Run) error
	ListRuns(limit int) ([]*Run, error)
}
