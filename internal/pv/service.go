package pv

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Archiver is the orchestration layer: it walks a working directory,
// renames eligible media files into canonical form and moves each into its
// destination. One file failing never aborts the batch.
type Archiver struct {
	layout   Layout
	fs       FilesystemManager
	namer    *Namer
	history  HistoryStore
	logger   Logger
	clock    Clock
	idgen    IDGenerator
	observer ProgressObserver
}

// NewArchiver creates an Archiver with the provided dependencies.
// history may be nil to disable run recording; logger and observer may be
// nil for the no-op implementations.
func NewArchiver(
	layout Layout,
	fs FilesystemManager,
	source MetadataSource,
	history HistoryStore,
	logger Logger,
	clock Clock,
	idgen IDGenerator,
	observer ProgressObserver,
) *Archiver {
	if logger == nil {
		logger = NewNopLogger()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	if clock == nil {
		clock = RealClock{}
	}
	if idgen == nil {
		idgen = UUIDGenerator{}
	}
	return &Archiver{
		layout:   layout,
		fs:       fs,
		namer:    NewNamer(source, fs, logger),
		history:  history,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
		observer: observer,
	}
}

// ArchiveOptions control a single batch run.
type ArchiveOptions struct {
	// HandleDuplicates relocates both contenders of a destination collision
	// into the duplicates area. When false, colliding incoming files are
	// left in place and counted skipped.
	HandleDuplicates bool
}

// Archive processes every eligible media file under workDir and returns the
// aggregated outcome counters. An invalid working directory is the only
// fatal condition; everything after discovery is contained per file.
func (a *Archiver) Archive(workDir string, opts ArchiveOptions) (*RunStats, error) {
	files, err := a.fs.ListMedia(workDir)
	if err != nil {
		return nil, fmt.Errorf("listing media files: %w", err)
	}

	a.logger.Info("run started",
		"work_dir", workDir,
		"archive", a.layout.ArchiveDir(),
		"snapshot", a.layout.SnapshotDir(),
		"duplicates", a.layout.DuplicatesDir(),
		"files", len(files),
	)

	run := a.beginRun(workDir, len(files))
	stats := &RunStats{Total: len(files)}
	a.observer.Start(len(files))

	for _, f := range files {
		outcome := a.processFile(f, opts)
		stats.Count(outcome)
		a.observer.FileDone(f, outcome, stats)
	}

	a.observer.Finish(stats)
	a.logger.Info("run finished",
		"processed", stats.Processed,
		"total", stats.Total,
		"archived", stats.Archived,
		"snapshotted", stats.Snapshotted,
		"duplicated", stats.Duplicated,
		"skipped", stats.Skipped,
		"errored", stats.Errored,
	)
	a.finishRun(run, stats)

	return stats, nil
}

// processFile runs one file through Named -> Classified -> decision and
// returns its outcome. All failures are contained here.
func (a *Archiver) processFile(f MediaFile, opts ArchiveOptions) Outcome {
	name, err := a.namer.Name(f)
	if err != nil {
		a.logger.Error("naming failed", "path", f.Path, "error", err)
		return OutcomeErrored
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	ts, model, _, ok := SplitCanonicalStem(stem)
	if !ok {
		a.logger.Error("canonical stem did not split into three fields", "name", name)
		return OutcomeErrored
	}

	dest := filepath.Join(a.layout.ArchiveDir(), bucketOf(ts), f.Kind.BucketDir(), name)

	switch {
	case model == ModelUnknown:
		// Unidentified device wins over the collision check: these files
		// never claim a dated bucket slot.
		dest = filepath.Join(a.layout.SnapshotDir(), name)
		if err := a.fs.Move(f.Path, dest); err != nil {
			a.logger.Error("move to snapshot failed", "path", f.Path, "error", err)
			return OutcomeErrored
		}
		a.logger.Warn("unidentified device, snapshotted", "from", f.Path, "to", dest)
		return OutcomeSnapshotted

	case a.fs.Exists(dest):
		a.logger.Warn("destination occupied", "from", f.Path, "to", dest)
		if !opts.HandleDuplicates {
			a.logger.Warn("left in place", "path", f.Path)
			return OutcomeSkipped
		}
		if err := a.relocateContenders(f, dest); err != nil {
			a.logger.Error("collision handling failed", "path", f.Path, "error", err)
			return OutcomeErrored
		}
		return OutcomeDuplicated

	default:
		if err := a.fs.Move(f.Path, dest); err != nil {
			a.logger.Error("move failed", "path", f.Path, "error", err)
			return OutcomeErrored
		}
		a.logger.Info("archived", "from", f.Path, "to", dest)
		return OutcomeArchived
	}
}

// relocateContenders moves both collision contenders into the duplicates
// area: the existing occupant under its canonical name, the incoming file
// under its current basename, counter-suffixed until distinct. Neither file
// is overwritten or lost.
func (a *Archiver) relocateContenders(incoming MediaFile, dest string) error {
	occupantDst := filepath.Join(a.layout.DuplicatesDir(), filepath.Base(dest))
	for n := 1; a.fs.Exists(occupantDst); n++ {
		occupantDst = suffixed(a.layout.DuplicatesDir(), filepath.Base(dest), n)
	}
	if err := a.fs.Move(dest, occupantDst); err != nil {
		return fmt.Errorf("relocating occupant: %w", err)
	}

	base := filepath.Base(incoming.Path)
	incomingDst := filepath.Join(a.layout.DuplicatesDir(), base)
	for n := 1; a.fs.Exists(incomingDst); n++ {
		incomingDst = suffixed(a.layout.DuplicatesDir(), base, n)
	}
	if err := a.fs.Move(incoming.Path, incomingDst); err != nil {
		return fmt.Errorf("relocating incoming: %w", err)
	}

	a.logger.Warn("collision resolved", "occupant", occupantDst, "incoming", incomingDst)
	return nil
}

func suffixed(dir, base string, n int) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
}

// bucketOf keys the destination bucket on the timestamp's year-month
// prefix. A short first field (the ERROR sentinel) buckets under its own
// name rather than crashing.
func bucketOf(ts string) string {
	if len(ts) > 6 {
		return ts[:6]
	}
	return ts
}

// Rename is one preview pair.
type Rename struct {
	Source    string
	Canonical string
}

// Preview computes the canonical basename for every eligible file under
// workDir without touching anything on disk.
func (a *Archiver) Preview(workDir string) ([]Rename, error) {
	files, err := a.fs.ListMedia(workDir)
	if err != nil {
		return nil, fmt.Errorf("listing media files: %w", err)
	}

	renames := make([]Rename, 0, len(files))
	for _, f := range files {
		name, err := a.namer.Name(f)
		if err != nil {
			return nil, fmt.Errorf("naming %s: %w", f.Path, err)
		}
		renames = append(renames, Rename{Source: f.Path, Canonical: name})
	}
	return renames, nil
}

// Recover undoes one layer of duplicate-rename wrapping: any file in the
// duplicates area whose stem has exactly four underscore-separated fields
// (a counter-suffixed canonical name) is renamed back to its original stem,
// the third field. Manual remediation only; never part of a batch run.
func (a *Archiver) Recover() (int, error) {
	files, err := a.fs.ListFiles(a.layout.DuplicatesDir())
	if err != nil {
		return 0, fmt.Errorf("listing duplicates: %w", err)
	}

	restored := 0
	for _, p := range files {
		base := filepath.Base(p)
		ext := filepath.Ext(base)
		parts := strings.Split(strings.TrimSuffix(base, ext), "_")
		if len(parts) != 4 {
			continue
		}
		dst := filepath.Join(filepath.Dir(p), parts[2]+ext)
		if err := a.fs.Move(p, dst); err != nil {
			a.logger.Warn("recover rename failed", "path", p, "error", err)
			continue
		}
		a.logger.Info("recovered", "from", p, "to", dst)
		restored++
	}
	return restored, nil
}

func (a *Archiver) beginRun(workDir string, total int) *Run {
	if a.history == nil {
		return nil
	}
	run := &Run{
		ID:        a.idgen.New(),
		Operation: "Archive",
		WorkDir:   workDir,
		StartedAt: a.clock.Now(),
		Status:    "running",
		Stats:     RunStats{Total: total},
	}
	if err := a.history.BeginRun(run); err != nil {
		// History is observability; its failure never blocks archiving.
		a.logger.Warn("recording run start failed", "error", err)
		return nil
	}
	return run
}

func (a *Archiver) finishRun(run *Run, stats *RunStats) {
	if run == nil {
		return
	}
	run.FinishedAt = a.clock.Now()
	run.Status = "success"
	if stats.Errored > 0 {
		run.Status = "error"
	}
	run.Stats = *stats
	if err := a.history.FinishRun(run); err != nil {
		a.logger.Warn("recording run finish failed", "error", err)
	}
}
