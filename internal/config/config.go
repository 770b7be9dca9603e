package config

import (
	"encoding/json"
	"os"

	"github.com/rzbill/flash/pkg/flash"
)

// Config is the logging setup loaded from file/env.
type Config struct {
	ConsoleScheme string `json:"consoleScheme"`
	SchemeFile    string `json:"schemeFile"`
	LabelsFile    string `json:"labelsFile"`
	LogFile       string `json:"logFile"`
	LogFileAppend bool   `json:"logFileAppend"`
	Format        string `json:"format"`
	NoColor       bool   `json:"noColor"`

	// ConsoleFilter and FileFilter replace the channels' default filter
	// policies when present.
	ConsoleFilter *flash.FilterSpec `json:"consoleFilter,omitempty"`
	FileFilter    *flash.FilterSpec `json:"fileFilter,omitempty"`
}

// Default returns built-in defaults: a colored console, no log file and
// human-readable output.
func Default() Config {
	return Config{
		ConsoleScheme: "color",
		Format:        "human_readable",
	}
}

// Load reads configuration from a JSON file. If path is empty, returns defaults.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
