package testutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"pv-go/internal/pv"
)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	ModTime     time.Time
	IsDirectory bool
}

// MockFilesystemManager is an in-memory filesystem for testing.
type MockFilesystemManager struct {
	files map[string]*MockFile

	// FailMove, when non-empty, makes Move fail for any source path
	// containing it.
	FailMove string
	// Moves records every successful Move as "src -> dst".
	Moves []string
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files: make(map[string]*MockFile),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFilesystemManager) AddFile(path string) {
	m.files[path] = &MockFile{ModTime: time.Now()}
}

// AddFileAt adds a file with the given modification time.
func (m *MockFilesystemManager) AddFileAt(path string, modTime time.Time) {
	m.files[path] = &MockFile{ModTime: modTime}
}

// AddDirectory adds a directory to the mock filesystem.
func (m *MockFilesystemManager) AddDirectory(path string) {
	m.files[path] = &MockFile{ModTime: time.Now(), IsDirectory: true}
}

func (m *MockFilesystemManager) ListMedia(dir string) ([]pv.MediaFile, error) {
	if f, ok := m.files[dir]; !ok || !f.IsDirectory {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var out []pv.MediaFile
	for _, p := range m.entries(dir) {
		if !pv.Eligible(filepath.Base(p)) {
			continue
		}
		out = append(out, pv.NewMediaFile(p))
	}
	return out, nil
}

func (m *MockFilesystemManager) ListFiles(dir string) ([]string, error) {
	if f, ok := m.files[dir]; !ok || !f.IsDirectory {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}
	return m.entries(dir), nil
}

func (m *MockFilesystemManager) entries(dir string) []string {
	var out []string
	prefix := strings.TrimSuffix(dir, "/") + "/"
	for p, f := range m.files {
		if f.IsDirectory || !strings.HasPrefix(p, prefix) {
			continue
		}
		if strings.Contains(strings.TrimPrefix(p, prefix), "/") {
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (m *MockFilesystemManager) Exists(path string) bool {
	_, ok := m.files[path]
	return ok
}

func (m *MockFilesystemManager) ModTime(path string) (time.Time, error) {
	f, ok := m.files[path]
	if !ok {
		return time.Time{}, fmt.Errorf("file not found: %s", path)
	}
	return f.ModTime, nil
}

func (m *MockFilesystemManager) Move(src, dst string) error {
	f, ok := m.files[src]
	if !ok {
		return fmt.Errorf("file not found: %s", src)
	}
	if m.FailMove != "" && strings.Contains(src, m.FailMove) {
		return fmt.Errorf("move refused: %s", src)
	}
	delete(m.files, src)
	m.files[dst] = f
	m.Moves = append(m.Moves, src+" -> "+dst)
	return nil
}

// Compile-time check
var _ pv.FilesystemManager = (*MockFilesystemManager)(nil)
