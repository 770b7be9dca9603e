package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rzbill/flash/internal/config"
	"github.com/rzbill/flash/pkg/level"
)

// NewLabelsCommand constructs the `labels` command group and subcommands.
func NewLabelsCommand() *cobra.Command {
	labelsCmd := &cobra.Command{Use: "labels", Short: "Level label operations"}

	labelsCmd.AddCommand(
		newLabelsShowCommand(),
		newLabelsSetCommand(),
		newLabelsClearCommand(),
	)

	return labelsCmd
}

func labelsFile(cmd *cobra.Command) string {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		file = config.DefaultLabelsFile()
	}
	return file
}

// loadLabelsIfPresent applies overrides from file when it exists.
func loadLabelsIfPresent(file string) error {
	err := level.LoadLabels(file)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func newLabelsShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List every level with its value and display label",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadLabelsIfPresent(labelsFile(cmd)); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range level.All() {
				marker := ""
				if l.Label() != l.String() {
					marker = " (override)"
				}
				fmt.Fprintf(out, "%-15s %3d  %s%s\n", l.String(), l.Value(), l.Label(), marker)
			}
			return nil
		},
	}
	cmd.Flags().String("file", os.Getenv("FLASH_LABELS_FILE"), "Label overrides JSON file (default OS config dir)")
	return cmd
}

func newLabelsSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the display label for one level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			levelArg, _ := cmd.Flags().GetString("level")
			label, _ := cmd.Flags().GetString("label")
			file := labelsFile(cmd)

			l, err := resolveLevelArg(levelArg)
			if err != nil {
				return err
			}
			if label == "" {
				return fmt.Errorf("missing --label")
			}
			if err := loadLabelsIfPresent(file); err != nil {
				return err
			}
			level.SetLabel(l, label)
			if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
				return err
			}
			if err := level.SaveLabels(file); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", file)
			return nil
		},
	}
	cmd.Flags().String("file", os.Getenv("FLASH_LABELS_FILE"), "Label overrides JSON file (default OS config dir)")
	cmd.Flags().String("level", "", "Level name or numeric value (required)")
	cmd.Flags().String("label", "", "Display label (required)")
	_ = cmd.MarkFlagRequired("level")
	_ = cmd.MarkFlagRequired("label")
	return cmd
}

func newLabelsClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every label override",
		RunE: func(cmd *cobra.Command, _ []string) error {
			file := labelsFile(cmd)
			level.ClearLabels()
			if _, err := os.Stat(file); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return nil
				}
				return err
			}
			if err := level.SaveLabels(file); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", file)
			return nil
		},
	}
	cmd.Flags().String("file", os.Getenv("FLASH_LABELS_FILE"), "Label overrides JSON file (default OS config dir)")
	return cmd
}
