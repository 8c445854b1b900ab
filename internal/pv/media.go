// Package pv contains the archival engine: the service layer that walks a
// working directory, renames media files into canonical form and moves them
// into timestamp-keyed archive buckets.
package pv

import (
	"path/filepath"
	"strings"
)

// Kind classifies a media file as photo or video.
type Kind int

const (
	KindUnknown Kind = iota
	KindPhoto
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindPhoto:
		return "photo"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// BucketDir returns the archive subdirectory for this kind: "p" or "v".
func (k Kind) BucketDir() string {
	if k == KindVideo {
		return "v"
	}
	return "p"
}

var photoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".cr2":  true,
	".arw":  true,
}

var videoExts = map[string]bool{
	".mov": true,
	".mp4": true,
	".avi": true,
	".mkv": true,
}

// sidecarPrefix marks macOS AppleDouble companion files; they look like
// media but hold no image data.
const sidecarPrefix = "._"

// KindOf returns the media kind for a file extension (leading dot, any case).
func KindOf(ext string) Kind {
	ext = strings.ToLower(ext)
	switch {
	case photoExts[ext]:
		return KindPhoto
	case videoExts[ext]:
		return KindVideo
	default:
		return KindUnknown
	}
}

// Eligible reports whether basename denotes a file the archiver processes.
func Eligible(basename string) bool {
	if strings.HasPrefix(basename, sidecarPrefix) {
		return false
	}
	return KindOf(filepath.Ext(basename)) != KindUnknown
}

// MediaFile is one eligible filesystem entry. It exists only for the
// duration of a single processing pass; its identity is its path.
type MediaFile struct {
	Path string
	Ext  string // lower-cased, with leading dot
	Kind Kind
}

// NewMediaFile builds a MediaFile from a path, deriving extension and kind.
func NewMediaFile(path string) MediaFile {
	ext := strings.ToLower(filepath.Ext(path))
	return MediaFile{
		Path: path,
		Ext:  ext,
		Kind: KindOf(ext),
	}
}
