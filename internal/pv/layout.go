package pv

import "path/filepath"

// Layout derives the fixed directory structure under the archive root.
//
//	<root>/__process    default working directory for incoming files
//	<root>/archive      YYYYMM buckets, each with p/ and v/
//	<root>/duplicates   flat holding area for collision contenders
//	<root>/snapshot     holding area for unidentified-device files
type Layout struct {
	Root string
}

func (l Layout) ProcessDir() string    { return filepath.Join(l.Root, "__process") }
func (l Layout) ArchiveDir() string    { return filepath.Join(l.Root, "archive") }
func (l Layout) DuplicatesDir() string { return filepath.Join(l.Root, "duplicates") }
func (l Layout) SnapshotDir() string   { return filepath.Join(l.Root, "snapshot") }

// Dirs returns every directory the layout requires to exist.
func (l Layout) Dirs() []string {
	return []string{l.ProcessDir(), l.ArchiveDir(), l.DuplicatesDir(), l.SnapshotDir()}
}
