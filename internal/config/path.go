package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the default configuration directory based on
// the host OS. It prefers standard locations when available and falls
// back to a dotdir in the user's home directory.
func DefaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "."
	}

	// XDG (Linux) override
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "flash")
	}

	// Common Linux/Unix location
	if isDir(filepath.Join(homeDir, ".config")) {
		return filepath.Join(homeDir, ".config", "flash")
	}

	// macOS: ~/Library/Application Support/Flash
	if isDir(filepath.Join(homeDir, "Library")) {
		return filepath.Join(homeDir, "Library", "Application Support", "Flash")
	}

	// Windows: %USERPROFILE%/AppData/Local/Flash
	if isDir(filepath.Join(homeDir, "AppData")) {
		return filepath.Join(homeDir, "AppData", "Local", "Flash")
	}

	// Fallback: ~/.flash
	return filepath.Join(homeDir, ".flash")
}

// DefaultConfigFile returns where the CLI looks for its configuration
// unless told otherwise.
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// DefaultSchemeFile returns the default location of the color scheme
// document.
func DefaultSchemeFile() string {
	return filepath.Join(DefaultConfigDir(), "color_scheme.json")
}

// DefaultLabelsFile returns the default location of the level label
// overrides.
func DefaultLabelsFile() string {
	return filepath.Join(DefaultConfigDir(), "level_labels.json")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
