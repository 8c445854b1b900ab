package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"pv-go/internal/pv"
)

// FFProbeSource reads video metadata by shelling out to ffprobe for the
// container's format tags.
type FFProbeSource struct{}

// NewFFProbeSource creates an ffprobe-backed metadata source for videos.
func NewFFProbeSource() *FFProbeSource {
	return &FFProbeSource{}
}

// Extract runs one ffprobe JSON call against the file.
func (s *FFProbeSource) Extract(file pv.MediaFile) (pv.Metadata, error) {
	cmd := exec.CommandContext(context.Background(), "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		file.Path,
	)

	out, err := cmd.Output()
	if err != nil {
		return pv.Metadata{}, fmt.Errorf("ffprobe %q: %w", file.Path, err)
	}

	return ParseFormatTags(out)
}

// ParseFormatTags converts raw ffprobe JSON output into Metadata.
// Exported for testing without a real ffprobe binary.
func ParseFormatTags(data []byte) (pv.Metadata, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return pv.Metadata{}, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	tags := raw.Format.Tags
	meta := pv.Metadata{
		Time:  strings.TrimSpace(tags["creation_time"]),
		Model: strings.TrimSpace(tags["com.apple.quicktime.model"]),
	}
	if meta.Model == "" {
		// Non-Apple containers carry no device tag; the brand is the
		// closest stable identifier.
		meta.Model = strings.TrimSpace(tags["major_brand"])
	}
	return meta, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format ffprobeFormat `json:"format"`
}

type ffprobeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Tags       map[string]string `json:"tags"`
}

// Compile-time check
var _ pv.MetadataSource = (*FFProbeSource)(nil)
