package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rzbill/flash/pkg/flash"
	"github.com/rzbill/flash/pkg/level"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ConsoleScheme != "color" {
		t.Fatalf("default console scheme")
	}
	if cfg.Format != "human_readable" {
		t.Fatalf("default format")
	}
	if cfg.LogFile != "" {
		t.Fatalf("default log file should be empty")
	}
	if cfg.NoColor {
		t.Fatalf("color should be on by default")
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "flash.json")
	data := []byte(`{"consoleScheme":"bw","logFile":"/var/log/app.log","format":"json","noColor":true}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ConsoleScheme != "bw" {
		t.Fatalf("expected bw")
	}
	if cfg.LogFile != "/var/log/app.log" {
		t.Fatalf("expected log file")
	}
	if cfg.Format != "json" {
		t.Fatalf("expected json format")
	}
	if !cfg.NoColor {
		t.Fatalf("expected noColor")
	}
}

func TestLoadKeepsUnsetDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "flash.json")
	if err := os.WriteFile(file, []byte(`{"logFile":"x.log"}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ConsoleScheme != "color" {
		t.Fatalf("unset keys should keep defaults")
	}
	if cfg.LogFile != "x.log" {
		t.Fatalf("expected x.log")
	}
}

func TestLoadFilters(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "flash.json")
	data := []byte(`{"consoleFilter":{"mode":"exclude","levels":["debug"]},"fileFilter":{"mode":"threshold","levels":["error"]}}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ConsoleFilter == nil || cfg.ConsoleFilter.Mode != "exclude" {
		t.Fatalf("console filter not loaded: %+v", cfg.ConsoleFilter)
	}
	if cfg.FileFilter == nil {
		t.Fatalf("file filter not loaded")
	}
	f := flash.NewFilter()
	if err := cfg.FileFilter.Apply(f); err != nil {
		t.Fatalf("apply loaded filter: %v", err)
	}
	if f.Allows(level.Warning) || !f.Allows(level.Error) {
		t.Fatalf("loaded threshold misapplied")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("empty path should return defaults")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	os.Setenv("FLASH_CONSOLE_SCHEME", "plain_text")
	os.Setenv("FLASH_LOG_FILE", "/tmp/flash.log")
	os.Setenv("FLASH_LOG_FILE_APPEND", "true")
	os.Setenv("FLASH_NO_COLOR", "1")
	t.Cleanup(func() {
		os.Unsetenv("FLASH_CONSOLE_SCHEME")
		os.Unsetenv("FLASH_LOG_FILE")
		os.Unsetenv("FLASH_LOG_FILE_APPEND")
		os.Unsetenv("FLASH_NO_COLOR")
	})
	FromEnv(&cfg)
	if cfg.ConsoleScheme != "plain_text" {
		t.Fatalf("env override scheme")
	}
	if cfg.LogFile != "/tmp/flash.log" {
		t.Fatalf("env override log file")
	}
	if !cfg.LogFileAppend {
		t.Fatalf("env override append")
	}
	if !cfg.NoColor {
		t.Fatalf("env override no color")
	}
}

func TestFromEnvIgnoresBadBool(t *testing.T) {
	cfg := Default()
	os.Setenv("FLASH_NO_COLOR", "sideways")
	t.Cleanup(func() { os.Unsetenv("FLASH_NO_COLOR") })
	FromEnv(&cfg)
	if cfg.NoColor {
		t.Fatalf("unparsable bool should be ignored")
	}
}
