package pv

// ModelUnknown is the sentinel device model used when no device tag is
// present. Files carrying it are diverted to the snapshot area instead of a
// dated bucket.
const ModelUnknown = "UNKNOWN"

// Metadata is the raw capture information extracted from one media file.
// Time is the unparsed tag value exactly as the container stored it; empty
// means no time tag was found and the caller should fall back to the
// file's modification time.
type Metadata struct {
	Time  string
	Model string
}

// MetadataSource extracts capture metadata from media files.
//
// Implementations return an error for unreadable or tagless files instead
// of swallowing the failure, so callers can log the reason and degrade to
// Metadata{Model: ModelUnknown} rather than abort the file.
type MetadataSource interface {
	Extract(file MediaFile) (Metadata, error)
}
