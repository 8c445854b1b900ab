package config

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		Root:     "/data/pv",
		LogDir:   "/data/pv/.logs",
		Database: DatabaseConfig{Type: "sqlite", DataDir: "/data/pv/.state"},
		Archive:  ArchiveConfig{HandleDuplicates: true},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.Root != original.Root {
		t.Errorf("Root = %q, want %q", got.Root, original.Root)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", got.Database.Type, "sqlite")
	}
	if got.Database.DataDir != original.Database.DataDir {
		t.Errorf("Database.DataDir = %q, want %q", got.Database.DataDir, original.Database.DataDir)
	}
	if !got.Archive.HandleDuplicates {
		t.Error("Archive.HandleDuplicates = false, want true")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/pv")

	if cfg.Root != "/data/pv" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/data/pv")
	}
	if cfg.LogDir != filepath.Join("/data/pv", ".logs") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want sqlite", cfg.Database.Type)
	}
	if cfg.Database.DataDir != filepath.Join("/data/pv", ".state") {
		t.Errorf("Database.DataDir = %q", cfg.Database.DataDir)
	}
	if !cfg.Archive.HandleDuplicates {
		t.Error("Archive.HandleDuplicates should default to true")
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "pv.toml")
	cfg := NewConfig("/data/pv")

	if err := Init(path, cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	got, err := ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile() error = %v", err)
	}
	if got.Root != cfg.Root {
		t.Errorf("Root = %q, want %q", got.Root, cfg.Root)
	}

	// A second Init must not clobber the existing file.
	if err := Init(path, NewConfig("/other")); err == nil {
		t.Error("Init() should refuse to overwrite an existing config")
	}
}

func TestReadFromFileMissing(t *testing.T) {
	if _, err := ReadFromFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
