// Package fs implements the real filesystem backend for the archiver.
package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"pv-go/internal/pv"
)

// OSFilesystemManager is the real filesystem implementation of
// pv.FilesystemManager, built on the os package.
type OSFilesystemManager struct{}

// NewOSFilesystemManager creates a filesystem manager that operates on the
// real filesystem.
func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// ListMedia walks dir recursively and returns every eligible media file,
// sorted by path for deterministic batch order.
func (m *OSFilesystemManager) ListMedia(dir string) ([]pv.MediaFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	var files []pv.MediaFile
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !pv.Eligible(d.Name()) {
			return nil
		}
		files = append(files, pv.NewMediaFile(p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ListFiles returns the regular files directly under dir, sorted by path.
func (m *OSFilesystemManager) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Exists reports whether path exists.
func (m *OSFilesystemManager) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ModTime returns the modification time of path.
func (m *OSFilesystemManager) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat path: %w", err)
	}
	return info.ModTime(), nil
}

// Move renames src to dst, creating dst's parent directories first.
func (m *OSFilesystemManager) Move(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("renaming: %w", err)
	}
	return nil
}

// Compile-time check that OSFilesystemManager implements pv.FilesystemManager
var _ pv.FilesystemManager = (*OSFilesystemManager)(nil)
