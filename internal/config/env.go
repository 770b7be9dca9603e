package config

import (
	"os"
	"strconv"
)

// FromEnv overlays FLASH_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("FLASH_CONSOLE_SCHEME"); v != "" {
		cfg.ConsoleScheme = v
	}
	if v := os.Getenv("FLASH_SCHEME_FILE"); v != "" {
		cfg.SchemeFile = v
	}
	if v := os.Getenv("FLASH_LABELS_FILE"); v != "" {
		cfg.LabelsFile = v
	}
	if v := os.Getenv("FLASH_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("FLASH_LOG_FILE_APPEND"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogFileAppend = b
		}
	}
	if v := os.Getenv("FLASH_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("FLASH_NO_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoColor = b
		}
	}
}
