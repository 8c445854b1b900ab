package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("PV_CONFIG_PATH", "/custom/config.toml")
		t.Setenv("PV_ROOT", "/custom/pv")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		if defaults["config_path"] != "/custom/config.toml" {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/config.toml")
		}
		if defaults["root"] != "/custom/pv" {
			t.Errorf("root = %q, want %q", defaults["root"], "/custom/pv")
		}
		if defaults["log_dir"] != "/custom/pv/.logs" {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], "/custom/pv/.logs")
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("PV_CONFIG_PATH", "")
		t.Setenv("PV_ROOT", "")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()

		wantConfig := filepath.Join(homeDir, ".config", "pv.toml")
		if defaults["config_path"] != wantConfig {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], wantConfig)
		}

		wantRoot := filepath.Join(homeDir, "pv")
		if defaults["root"] != wantRoot {
			t.Errorf("root = %q, want %q", defaults["root"], wantRoot)
		}

		wantLog := filepath.Join(wantRoot, ".logs")
		if defaults["log_dir"] != wantLog {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], wantLog)
		}
	})
}
