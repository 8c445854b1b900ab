package metadata

import "testing"

func TestParseFormatTags(t *testing.T) {
	t.Run("apple container", func(t *testing.T) {
		data := []byte(`{
			"format": {
				"filename": "clip.mov",
				"format_name": "mov,mp4,m4a,3gp,3g2,mj2",
				"duration": "12.345000",
				"tags": {
					"major_brand": "qt  ",
					"creation_time": "2024-01-15T02:30:00.000000Z",
					"com.apple.quicktime.model": "iPhone 12 Pro"
				}
			}
		}`)

		meta, err := ParseFormatTags(data)
		if err != nil {
			t.Fatalf("ParseFormatTags failed: %v", err)
		}
		if meta.Time != "2024-01-15T02:30:00.000000Z" {
			t.Errorf("Time = %q", meta.Time)
		}
		if meta.Model != "iPhone 12 Pro" {
			t.Errorf("Model = %q", meta.Model)
		}
	})

	t.Run("non-apple container falls back to major_brand", func(t *testing.T) {
		data := []byte(`{
			"format": {
				"tags": {
					"major_brand": "mp42",
					"creation_time": "2018-05-25T13:23:28.000000Z"
				}
			}
		}`)

		meta, err := ParseFormatTags(data)
		if err != nil {
			t.Fatalf("ParseFormatTags failed: %v", err)
		}
		if meta.Model != "mp42" {
			t.Errorf("Model = %q", meta.Model)
		}
	})

	t.Run("no tags at all", func(t *testing.T) {
		meta, err := ParseFormatTags([]byte(`{"format": {}}`))
		if err != nil {
			t.Fatalf("ParseFormatTags failed: %v", err)
		}
		if meta.Time != "" || meta.Model != "" {
			t.Errorf("expected empty metadata, got %+v", meta)
		}
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		if _, err := ParseFormatTags([]byte(`{`)); err == nil {
			t.Error("expected a parse error")
		}
	})
}
