// Package cli contains Cobra CLI commands for flash.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rzbill/flash/internal/config"
	"github.com/rzbill/flash/pkg/colorscheme"
	"github.com/rzbill/flash/pkg/level"
)

// NewSchemeCommand constructs the `scheme` command group and subcommands.
func NewSchemeCommand() *cobra.Command {
	schemeCmd := &cobra.Command{Use: "scheme", Short: "Color scheme operations"}

	schemeCmd.AddCommand(
		newSchemeInitCommand(),
		newSchemeShowCommand(),
		newSchemeSetCommand(),
		newSchemePathCommand(),
	)

	return schemeCmd
}

// resolveScheme loads the scheme named by --file, falling back to the
// built-in named by --scheme.
func resolveScheme(cmd *cobra.Command) (*colorscheme.Scheme, error) {
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		return colorscheme.Load(file)
	}
	name, _ := cmd.Flags().GetString("scheme")
	def, err := colorscheme.ParseDefault(name)
	if err != nil {
		return nil, err
	}
	return colorscheme.New(def)
}

func newSchemeInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a built-in color scheme to a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("scheme")
			file, _ := cmd.Flags().GetString("file")

			def, err := colorscheme.ParseDefault(name)
			if err != nil {
				return err
			}
			s, err := colorscheme.New(def)
			if err != nil {
				return err
			}
			if file == "" {
				file = config.DefaultSchemeFile()
			}
			if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
				return err
			}
			if err := s.Save(file); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", file)
			return nil
		},
	}
	cmd.Flags().String("scheme", "color", "Built-in scheme: color|bw|plain_text")
	cmd.Flags().String("file", os.Getenv("FLASH_SCHEME_FILE"), "Output path (default OS config dir)")
	return cmd
}

func newSchemeShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render every level and special style of a scheme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveScheme(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "levels:")
			for _, l := range level.All() {
				fmt.Fprintf(out, "  %-15s %3d  %s  %s\n",
					l.String(), l.Value(),
					s.LevelStyle(l).Sprint("normal sample"),
					s.LevelHighlight(l).Sprint("highlight sample"))
			}
			fmt.Fprintln(out, "special:")
			for _, name := range colorscheme.SpecialNames() {
				fmt.Fprintf(out, "  %-16s %s\n", name, s.SpecialStyle(name).Sprint("sample"))
			}
			order := make([]string, 0, len(s.FieldOrder()))
			for _, f := range s.FieldOrder() {
				order = append(order, f.String())
			}
			fmt.Fprintln(out, "fields:", strings.Join(order, " "))
			return nil
		},
	}
	cmd.Flags().String("scheme", "color", "Built-in scheme: color|bw|plain_text")
	cmd.Flags().String("file", os.Getenv("FLASH_SCHEME_FILE"), "Color scheme JSON file (overrides --scheme)")
	return cmd
}

func newSchemeSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one level's style in a scheme file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")
			levelArg, _ := cmd.Flags().GetString("level")
			variant, _ := cmd.Flags().GetString("variant")
			fg, _ := cmd.Flags().GetString("fg")
			bg, _ := cmd.Flags().GetString("bg")
			intensity, _ := cmd.Flags().GetString("intensity")

			if file == "" {
				file = config.DefaultSchemeFile()
			}
			l, err := resolveLevelArg(levelArg)
			if err != nil {
				return err
			}

			s, err := colorscheme.Load(file)
			if err != nil {
				// Start from the built-in color scheme when the file is new.
				if !errors.Is(err, os.ErrNotExist) {
					return err
				}
				s = colorscheme.NewDefault()
			}

			var st colorscheme.Style
			switch variant {
			case "normal":
				st = s.LevelStyle(l)
			case "highlight":
				st = s.LevelHighlight(l)
			default:
				return fmt.Errorf("invalid --variant; use normal|highlight")
			}
			if fg != "" {
				st.Foreground = strings.ToUpper(fg)
			}
			if bg != "" {
				st.Background = strings.ToUpper(bg)
			}
			if intensity != "" {
				in, err := colorscheme.ParseIntensity(intensity)
				if err != nil {
					return err
				}
				st.Intensity = in
			}

			if variant == "normal" {
				err = s.SetLevelStyle(l, st)
			} else {
				err = s.SetLevelHighlight(l, st)
			}
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
				return err
			}
			if err := s.Save(file); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", file)
			return nil
		},
	}
	cmd.Flags().String("file", os.Getenv("FLASH_SCHEME_FILE"), "Color scheme JSON file (default OS config dir)")
	cmd.Flags().String("level", "", "Level name or numeric value (required)")
	cmd.Flags().String("variant", "normal", "Style variant: normal|highlight")
	cmd.Flags().String("fg", "", "Foreground color name, e.g. RED or LIGHTCYAN_EX")
	cmd.Flags().String("bg", "", "Background color name")
	cmd.Flags().String("intensity", "", "Intensity: normal|bright|dim")
	_ = cmd.MarkFlagRequired("level")
	return cmd
}

func newSchemePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default scheme file location",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.DefaultSchemeFile())
		},
	}
}

// resolveLevelArg accepts a level name or a numeric value. Numeric values
// may bind custom slots, matching the filter reference rules.
func resolveLevelArg(s string) (level.Level, error) {
	if s == "" {
		return level.NotSet, fmt.Errorf("missing level")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return level.Resolve(n)
	}
	return level.FromName(s)
}
