package pv

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"pv-go/internal/timestamp"
)

// Canonical filenames have the form
//
//	{14-digit-timestamp|ERROR}_{model}_{original-stem}{.ext}
//
// joined by single underscores. Model and stem tokens never contain spaces
// or underscores, so the stem always round-trips through a 3-way split.

var fourteenDigits = regexp.MustCompile(`^\d{14}$`)

// SanitizeToken replaces the characters that would break the canonical
// 3-way split: spaces and underscores become hyphens.
func SanitizeToken(s string) string {
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}

// IsCanonicalName reports whether base is already a canonical filename.
// Only a real 14-digit first field counts: ERROR-stamped names are not
// canonical and get re-derived on the next run.
func IsCanonicalName(base string) bool {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, "_")
	return len(parts) == 3 && fourteenDigits.MatchString(parts[0])
}

// SplitCanonicalStem splits a canonical stem into its three fields.
func SplitCanonicalStem(stem string) (ts, model, orig string, ok bool) {
	parts := strings.Split(stem, "_")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// Namer composes canonical filenames from extracted metadata. It computes
// names only; all moves belong to the engine.
type Namer struct {
	source MetadataSource
	fs     FilesystemManager
	logger Logger
}

// NewNamer creates a Namer.
func NewNamer(source MetadataSource, fs FilesystemManager, logger Logger) *Namer {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Namer{source: source, fs: fs, logger: logger}
}

// Name returns the canonical basename for file. Files already in canonical
// form are returned unchanged, which makes repeated runs over a processed
// tree no-ops.
func (n *Namer) Name(file MediaFile) (string, error) {
	base := filepath.Base(file.Path)
	if IsCanonicalName(base) {
		return base, nil
	}

	meta, err := n.source.Extract(file)
	if err != nil {
		// Unreadable metadata degrades the file, it does not abort it.
		n.logger.Warn("metadata read failed", "path", file.Path, "reason", err)
		meta = Metadata{}
	}
	if meta.Model == "" {
		meta.Model = ModelUnknown
	}

	var ts string
	if meta.Time == "" {
		// No capture-time tag: substitute the file's mtime. The value is
		// pre-formatted canonically and bypasses normalization.
		mod, err := n.fs.ModTime(file.Path)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", file.Path, err)
		}
		ts = mod.In(timestamp.Beijing).Format(timestamp.Layout)
	} else {
		ts = timestamp.Normalize(meta.Time)
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return ts + "_" + SanitizeToken(meta.Model) + "_" + SanitizeToken(stem) + file.Ext, nil
}
