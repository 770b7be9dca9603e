// Package config provides loading and environment overlay for flash
// logging configuration. It exposes a Default() baseline, a JSON file
// loader and FLASH_* environment overrides used by the CLI to bootstrap
// a dispatcher from deployment settings.
//
// Example:
//
//	cfg := config.Default()
//	// Optionally load from file and overlay env vars
//	if fileCfg, err := config.Load(config.DefaultConfigFile()); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
