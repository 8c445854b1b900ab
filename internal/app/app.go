// Package app is the application layer between the CLI and the archival
// engine. It constructs all dependencies from config and manages their
// lifecycle on Close.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"pv-go/internal/config"
	"pv-go/internal/database"
	"pv-go/internal/fs"
	"pv-go/internal/metadata"
	"pv-go/internal/pv"
	"pv-go/internal/stats"
)

// PVApp wires the engine, filesystem, metadata extractors, run history and
// logging together for one CLI invocation.
type PVApp struct {
	cfg       *config.Config
	layout    pv.Layout
	store     *database.Store
	archiver  *pv.Archiver
	logCloser io.Closer
}

// NewPVApp creates a fully wired PVApp from the given config. logName
// becomes the log file's basename, so each processed directory gets its
// own rotated log. The caller must call Close when done.
func NewPVApp(cfg *config.Config, logName string, observer pv.ProgressObserver) (*PVApp, error) {
	layout := pv.Layout{Root: cfg.Root}
	for _, dir := range append(layout.Dirs(), cfg.LogDir) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	store, err := database.NewFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening run history: %w", err)
	}

	runID := time.Now().UTC().Format("20060102T150405Z")
	logger, logCloser := newLogger(cfg.LogDir, logName, runID)

	archiver := pv.NewArchiver(
		layout,
		fs.NewOSFilesystemManager(),
		metadata.NewOSSource(),
		store,
		&slogAdapter{l: logger},
		pv.RealClock{},
		pv.UUIDGenerator{},
		observer,
	)

	return &PVApp{
		cfg:       cfg,
		layout:    layout,
		store:     store,
		archiver:  archiver,
		logCloser: logCloser,
	}, nil
}

// ArchiveResult bundles a run's counters with the archive census taken
// before and after it.
type ArchiveResult struct {
	Stats  *pv.RunStats
	Before *stats.Report
	After  *stats.Report
	Deltas []stats.Delta
}

// Archive runs one batch over workDir and reports the archive's net
// change. Collision handling follows the config unless skipDuplicates
// forces it off for this run.
func (a *PVApp) Archive(workDir string, skipDuplicates bool) (*ArchiveResult, error) {
	before, err := stats.Scan(a.layout)
	if err != nil {
		return nil, fmt.Errorf("scanning archive before run: %w", err)
	}

	opts := pv.ArchiveOptions{HandleDuplicates: a.cfg.Archive.HandleDuplicates && !skipDuplicates}
	runStats, err := a.archiver.Archive(workDir, opts)
	if err != nil {
		return nil, err
	}

	after, err := stats.Scan(a.layout)
	if err != nil {
		return nil, fmt.Errorf("scanning archive after run: %w", err)
	}

	return &ArchiveResult{
		Stats:  runStats,
		Before: before,
		After:  after,
		Deltas: stats.Compare(before, after),
	}, nil
}

// Preview lists the canonical names a run over workDir would produce,
// without moving anything.
func (a *PVApp) Preview(workDir string) ([]pv.Rename, error) {
	return a.archiver.Preview(workDir)
}

// Recover renames counter-suffixed files in the duplicates area back to
// their original stems.
func (a *PVApp) Recover() (int, error) {
	return a.archiver.Recover()
}

// StatsReport takes a census of the archive root.
func (a *PVApp) StatsReport() (*stats.Report, error) {
	return stats.Scan(a.layout)
}

// History returns the most recent recorded runs.
func (a *PVApp) History(limit int) ([]*pv.Run, error) {
	return a.store.ListRuns(limit)
}

// Layout exposes the derived directory structure.
func (a *PVApp) Layout() pv.Layout {
	return a.layout
}

// Close releases the run-history store and the log file.
func (a *PVApp) Close() error {
	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = err
	}
	if err := a.logCloser.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
