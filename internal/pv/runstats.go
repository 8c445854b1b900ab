package pv

// Outcome is the terminal state of one processed file.
type Outcome int

const (
	OutcomeArchived Outcome = iota
	OutcomeSnapshotted
	OutcomeDuplicated
	OutcomeSkipped
	OutcomeErrored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeArchived:
		return "archived"
	case OutcomeSnapshotted:
		return "snapshotted"
	case OutcomeDuplicated:
		return "duplicated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// RunStats aggregates per-file outcomes across one batch run. It is built
// during the run and discarded after the summary; the history store keeps
// only the final numbers.
type RunStats struct {
	Total       int
	Processed   int
	Archived    int
	Snapshotted int
	Duplicated  int
	Skipped     int
	Errored     int
}

// Count records one file outcome.
func (s *RunStats) Count(o Outcome) {
	s.Processed++
	switch o {
	case OutcomeArchived:
		s.Archived++
	case OutcomeSnapshotted:
		s.Snapshotted++
	case OutcomeDuplicated:
		s.Duplicated++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeErrored:
		s.Errored++
	}
}

// Succeeded is the number of files that ended up somewhere on purpose.
func (s *RunStats) Succeeded() int {
	return s.Archived + s.Snapshotted + s.Duplicated
}
