package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - PV_CONFIG_PATH: config file location (default: ~/.config/pv.toml)
//   - PV_ROOT: archive root directory (default: ~/pv)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	root, err := getRoot()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"root":        root,
		"log_dir":     filepath.Join(root, ".logs"),
	}, nil
}

// getConfigPath returns the config file path, checking PV_CONFIG_PATH env
// var first, then falling back to the default ~/.config/pv.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("PV_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "pv.toml"), nil
}

// getRoot returns the archive root, checking PV_ROOT env var first, then
// falling back to ~/pv.
func getRoot() (string, error) {
	if path := os.Getenv("PV_ROOT"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, "pv"), nil
}
