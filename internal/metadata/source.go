package metadata

import (
	"fmt"

	"pv-go/internal/pv"
)

// OSSource dispatches extraction to the kind-appropriate backend: EXIF for
// photos, ffprobe for videos.
type OSSource struct {
	photos pv.MetadataSource
	videos pv.MetadataSource
}

// NewOSSource creates the default extractor pair.
func NewOSSource() *OSSource {
	return &OSSource{
		photos: NewExifSource(),
		videos: NewFFProbeSource(),
	}
}

func (s *OSSource) Extract(file pv.MediaFile) (pv.Metadata, error) {
	switch file.Kind {
	case pv.KindPhoto:
		return s.photos.Extract(file)
	case pv.KindVideo:
		return s.videos.Extract(file)
	default:
		return pv.Metadata{}, fmt.Errorf("no extractor for %s files", file.Kind)
	}
}

// Compile-time check
var _ pv.MetadataSource = (*OSSource)(nil)
