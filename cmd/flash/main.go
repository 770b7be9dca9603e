package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rzbill/flash/internal/cmd/cli"
	demorun "github.com/rzbill/flash/internal/cmd/demo"
	cfgpkg "github.com/rzbill/flash/internal/config"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "flash",
		Short:   "Flash logging CLI",
		Long:    "Flash is a leveled console and file logger. This CLI manages color schemes, level labels and runs a rendering demo.",
		Version: version,
	}
	rootCmd.PersistentFlags().String("color", "auto", "Colorize output: auto|always|never")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		mode, _ := cmd.Flags().GetString("color")
		return applyColorMode(mode)
	}

	rootCmd.AddCommand(cli.NewSchemeCommand())
	rootCmd.AddCommand(cli.NewLabelsCommand())

	// demo
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Log a sample of every level and format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			if cfgPath == "" {
				if _, err := os.Stat(cfgpkg.DefaultConfigFile()); err == nil {
					cfgPath = cfgpkg.DefaultConfigFile()
				}
			}
			cfg, err := cfgpkg.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)

			if v, _ := cmd.Flags().GetString("scheme"); v != "" {
				cfg.ConsoleScheme = v
			}
			if v, _ := cmd.Flags().GetString("scheme-file"); v != "" {
				cfg.SchemeFile = v
			}
			if v, _ := cmd.Flags().GetString("labels-file"); v != "" {
				cfg.LabelsFile = v
			}
			if v, _ := cmd.Flags().GetString("log-file"); v != "" {
				cfg.LogFile = v
			}
			if v, _ := cmd.Flags().GetBool("append"); v {
				cfg.LogFileAppend = true
			}
			if v, _ := cmd.Flags().GetString("format"); v != "" {
				cfg.Format = v
			}
			if cfg.NoColor {
				color.NoColor = true
			}
			metricsAddr, _ := cmd.Flags().GetString("metrics")

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := demorun.Run(ctx, demorun.Options{
				ConsoleScheme: cfg.ConsoleScheme,
				SchemeFile:    cfg.SchemeFile,
				LabelsFile:    cfg.LabelsFile,
				LogFile:       cfg.LogFile,
				Append:        cfg.LogFileAppend,
				Format:        cfg.Format,
				MetricsAddr:   metricsAddr,
				ConsoleFilter: cfg.ConsoleFilter,
				FileFilter:    cfg.FileFilter,
			}); err != nil {
				return fmt.Errorf("demo error: %w", err)
			}
			return nil
		},
	}
	demoCmd.Flags().String("config", os.Getenv("FLASH_CONFIG"), "Config file (default OS config dir)")
	demoCmd.Flags().String("scheme", "", "Console scheme: color|bw|plain_text|none")
	demoCmd.Flags().String("scheme-file", "", "Color scheme JSON file (overrides --scheme)")
	demoCmd.Flags().String("labels-file", "", "Level label overrides JSON file")
	demoCmd.Flags().String("log-file", "", "Also log to this file at the warning threshold")
	demoCmd.Flags().Bool("append", false, "Append to the log file instead of truncating")
	demoCmd.Flags().String("format", "", "Output format: human_readable|json|json_pretty|json_lines")
	demoCmd.Flags().String("metrics", os.Getenv("FLASH_METRICS"), "Serve Prometheus metrics on this address and block (e.g. :9090)")
	rootCmd.AddCommand(demoCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColorMode(mode string) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
		fd := os.Stdout.Fd()
		color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	default:
		return fmt.Errorf("invalid --color; use auto|always|never")
	}
	return nil
}
