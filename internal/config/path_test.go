package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigDirXDG(t *testing.T) {
	original := os.Getenv("XDG_CONFIG_HOME")
	t.Cleanup(func() {
		if original != "" {
			os.Setenv("XDG_CONFIG_HOME", original)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	})

	os.Setenv("XDG_CONFIG_HOME", "/custom/cfg")
	if got := DefaultConfigDir(); got != "/custom/cfg/flash" {
		t.Errorf("Expected /custom/cfg/flash, got %s", got)
	}
}

func TestDefaultConfigDirNoHome(t *testing.T) {
	originalHome := os.Getenv("HOME")
	os.Unsetenv("HOME")
	t.Cleanup(func() {
		if originalHome != "" {
			os.Setenv("HOME", originalHome)
		}
	})

	// We can't mock UserHomeDir, so just check the fallback holds.
	if got := DefaultConfigDir(); got != "." {
		t.Errorf("Expected fallback to '.', got %s", got)
	}
}

func TestDefaultFilesUnderConfigDir(t *testing.T) {
	dir := DefaultConfigDir()
	if dir == "" {
		t.Fatal("DefaultConfigDir should not be empty")
	}
	if got := DefaultConfigFile(); !strings.HasPrefix(got, dir) || filepath.Base(got) != "config.json" {
		t.Errorf("unexpected config file path %s", got)
	}
	if got := DefaultSchemeFile(); filepath.Base(got) != "color_scheme.json" {
		t.Errorf("unexpected scheme file path %s", got)
	}
	if got := DefaultLabelsFile(); filepath.Base(got) != "level_labels.json" {
		t.Errorf("unexpected labels file path %s", got)
	}
}

func TestIsDir(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "existing directory",
			path:     ".",
			expected: true,
		},
		{
			name:     "non-existent path",
			path:     "/non/existent/path/that/does/not/exist",
			expected: false,
		},
		{
			name:     "file instead of directory",
			path:     os.Args[0], // current executable
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isDir(tt.path)
			if result != tt.expected {
				t.Errorf("isDir(%s) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestDefaultConfigDirConsistency(t *testing.T) {
	result1 := DefaultConfigDir()
	result2 := DefaultConfigDir()

	if result1 != result2 {
		t.Errorf("DefaultConfigDir should be consistent, got %s and %s", result1, result2)
	}
}
