package pv

import "time"

// FilesystemManager abstracts the filesystem operations the engine needs,
// so the classify/move/deduplicate logic is testable against an in-memory
// implementation.
type FilesystemManager interface {
	// ListMedia recursively collects eligible media files under dir, in
	// sorted path order. It fails when dir does not exist or is not a
	// directory.
	ListMedia(dir string) ([]MediaFile, error)

	// ListFiles collects the regular files directly under dir, regardless
	// of extension. The single caller is the duplicates-area recovery,
	// and that area is flat.
	ListFiles(dir string) ([]string, error)

	// Exists reports whether path names an existing filesystem entry.
	Exists(path string) bool

	// ModTime returns the modification time of path.
	ModTime(path string) (time.Time, error)

	// Move renames src to dst, creating intermediate destination
	// directories as needed. Same-volume moves are atomic renames.
	Move(src, dst string) error
}
