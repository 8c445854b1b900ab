package pv_test

import (
	"testing"
	"time"

	"pv-go/internal/pv"
	"pv-go/internal/testutil"
)

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Canon EOS 550D", "Canon-EOS-550D"},
		{"iPhone_12_Pro", "iPhone-12-Pro"},
		{"DSC 0001_copy", "DSC-0001-copy"},
		{"NIKON", "NIKON"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := pv.SanitizeToken(tt.in); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsCanonicalName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"20240115103000_Canon-EOS-550D_IMG-0321.jpg", true},
		{"20240115103000_UNKNOWN_clip.mov", true},
		{"ERROR_UNKNOWN_clip.mov", false},
		{"IMG_0321.jpg", false},
		{"20240115103000_Canon_EOS_550D_IMG.jpg", false},
		{"2024_Canon_IMG.jpg", false},
	}
	for _, tt := range tests {
		if got := pv.IsCanonicalName(tt.name); got != tt.want {
			t.Errorf("IsCanonicalName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSplitCanonicalStem(t *testing.T) {
	ts, model, orig, ok := pv.SplitCanonicalStem("20240115103000_NIKON_DSC0001")
	if !ok {
		t.Fatal("expected a clean 3-way split")
	}
	if ts != "20240115103000" || model != "NIKON" || orig != "DSC0001" {
		t.Errorf("got (%q, %q, %q)", ts, model, orig)
	}

	if _, _, _, ok := pv.SplitCanonicalStem("just-a-stem"); ok {
		t.Error("single field should not split")
	}
}

func TestNamer(t *testing.T) {
	t.Run("composes timestamp, model and stem", func(t *testing.T) {
		fs := testutil.NewMockFilesystemManager()
		fs.AddFile("/work/IMG_0321.jpg")
		source := testutil.NewStubMetadataSource()
		source.Set("IMG_0321.jpg", pv.Metadata{
			Time:  "2024:12:13 20:28:39",
			Model: "Canon EOS 550D",
		})

		namer := pv.NewNamer(source, fs, nil)
		name, err := namer.Name(pv.NewMediaFile("/work/IMG_0321.jpg"))
		if err != nil {
			t.Fatalf("Name failed: %v", err)
		}
		want := "20241213202839_Canon-EOS-550D_IMG-0321.jpg"
		if name != want {
			t.Errorf("got %q, want %q", name, want)
		}
	})

	t.Run("canonical input is returned unchanged", func(t *testing.T) {
		fs := testutil.NewMockFilesystemManager()
		fs.AddFile("/work/20241213202839_NIKON_DSC0001.jpg")
		source := testutil.NewStubMetadataSource()
		source.FailFor = "20241213202839_NIKON_DSC0001.jpg" // must not be consulted

		namer := pv.NewNamer(source, fs, nil)
		name, err := namer.Name(pv.NewMediaFile("/work/20241213202839_NIKON_DSC0001.jpg"))
		if err != nil {
			t.Fatalf("Name failed: %v", err)
		}
		if name != "20241213202839_NIKON_DSC0001.jpg" {
			t.Errorf("canonical name changed: %q", name)
		}
	})

	t.Run("missing model becomes UNKNOWN", func(t *testing.T) {
		fs := testutil.NewMockFilesystemManager()
		fs.AddFile("/work/clip.mov")
		source := testutil.NewStubMetadataSource()
		source.Set("clip.mov", pv.Metadata{Time: "2024:01:15 10:30:00"})

		namer := pv.NewNamer(source, fs, nil)
		name, err := namer.Name(pv.NewMediaFile("/work/clip.mov"))
		if err != nil {
			t.Fatalf("Name failed: %v", err)
		}
		if name != "20240115103000_UNKNOWN_clip.mov" {
			t.Errorf("got %q", name)
		}
	})

	t.Run("missing time falls back to mtime in UTC+8", func(t *testing.T) {
		fs := testutil.NewMockFilesystemManager()
		fs.AddFileAt("/work/scan.png", time.Date(2021, 5, 1, 12, 0, 0, 0, time.UTC))
		source := testutil.NewStubMetadataSource()
		source.Set("scan.png", pv.Metadata{Model: "Scanner"})

		namer := pv.NewNamer(source, fs, nil)
		name, err := namer.Name(pv.NewMediaFile("/work/scan.png"))
		if err != nil {
			t.Fatalf("Name failed: %v", err)
		}
		if name != "20210501200000_Scanner_scan.png" {
			t.Errorf("got %q", name)
		}
	})

	t.Run("unreadable metadata degrades instead of failing", func(t *testing.T) {
		fs := testutil.NewMockFilesystemManager()
		fs.AddFileAt("/work/corrupt.jpg", time.Date(2021, 5, 1, 12, 0, 0, 0, time.UTC))
		source := testutil.NewStubMetadataSource()
		source.FailFor = "corrupt.jpg"

		namer := pv.NewNamer(source, fs, nil)
		name, err := namer.Name(pv.NewMediaFile("/work/corrupt.jpg"))
		if err != nil {
			t.Fatalf("Name failed: %v", err)
		}
		if name != "20210501200000_UNKNOWN_corrupt.jpg" {
			t.Errorf("got %q", name)
		}
	})

	t.Run("unparseable capture time yields the ERROR field", func(t *testing.T) {
		fs := testutil.NewMockFilesystemManager()
		fs.AddFile("/work/odd.jpg")
		source := testutil.NewStubMetadataSource()
		source.Set("odd.jpg", pv.Metadata{Time: "not a date", Model: "X"})

		namer := pv.NewNamer(source, fs, nil)
		name, err := namer.Name(pv.NewMediaFile("/work/odd.jpg"))
		if err != nil {
			t.Fatalf("Name failed: %v", err)
		}
		if name != "ERROR_X_odd.jpg" {
			t.Errorf("got %q", name)
		}
	})
}
