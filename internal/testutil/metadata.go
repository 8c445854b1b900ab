package testutil

import (
	"fmt"
	"path/filepath"

	"pv-go/internal/pv"
)

// StubMetadataSource serves canned metadata keyed by file basename.
type StubMetadataSource struct {
	byName map[string]pv.Metadata
	// FailFor, when non-empty, makes Extract fail for that basename.
	FailFor string
}

// NewStubMetadataSource creates an empty stub source.
func NewStubMetadataSource() *StubMetadataSource {
	return &StubMetadataSource{byName: make(map[string]pv.Metadata)}
}

// Set registers metadata for the given basename.
func (s *StubMetadataSource) Set(basename string, meta pv.Metadata) {
	s.byName[basename] = meta
}

func (s *StubMetadataSource) Extract(file pv.MediaFile) (pv.Metadata, error) {
	base := filepath.Base(file.Path)
	if s.FailFor != "" && base == s.FailFor {
		return pv.Metadata{}, fmt.Errorf("extraction refused: %s", base)
	}
	return s.byName[base], nil
}

// Compile-time check
var _ pv.MetadataSource = (*StubMetadataSource)(nil)
