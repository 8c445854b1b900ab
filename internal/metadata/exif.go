// Package metadata extracts capture time and device model from media
// files: EXIF tags for photos, ffprobe container tags for videos.
package metadata

import (
	"fmt"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"pv-go/internal/pv"
)

// ExifSource reads photo metadata from embedded EXIF tags.
type ExifSource struct{}

// NewExifSource creates an EXIF-backed metadata source for photos.
func NewExifSource() *ExifSource {
	return &ExifSource{}
}

// Extract decodes the file's EXIF block. Missing tags leave the
// corresponding field empty; only an unreadable file or undecodable block
// is an error.
func (s *ExifSource) Extract(file pv.MediaFile) (pv.Metadata, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return pv.Metadata{}, fmt.Errorf("opening %s: %w", file.Path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return pv.Metadata{}, fmt.Errorf("decoding EXIF in %s: %w", file.Path, err)
	}

	var meta pv.Metadata
	if v := tagString(x, exif.DateTimeOriginal); v != "" {
		meta.Time = v
	} else {
		meta.Time = tagString(x, exif.DateTime)
	}
	meta.Model = tagString(x, exif.Model)
	return meta, nil
}

func tagString(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	v, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// Compile-time check
var _ pv.MetadataSource = (*ExifSource)(nil)
