package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemd/internal/configloader"
	"github.com/yaklabco/livemd/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [app.json]",
		Short: "Convert Obsidian vault settings to livemd format",
		Long: `Convert the editor settings of an Obsidian vault (.obsidian/app.json)
to a livemd configuration file (.livemd.yml).

If no input file is specified, the command searches the current directory
and its parents for a vault.

Examples:
  livemd migrate                           Auto-detect the vault settings
  livemd migrate vault/.obsidian/app.json  Convert a specific file
  livemd migrate --output config.yml       Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".livemd.yml", "Output file path")

	return cmd
}

func runMigrate(w io.Writer, flags *migrateFlags) error {
	logger := logging.NewInteractive(w)

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindVaultSettings(cwd)
		if inputPath == "" {
			return errors.New("no Obsidian vault settings found in current directory or its parents")
		}

		logger.Info("found vault settings", logging.FieldPath, inputPath)
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	result, err := configloader.ConvertVaultSettings(inputPath)
	if err != nil {
		return fmt.Errorf("convert settings: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if err := configloader.WriteConfig(result.Config, absOutput, flags.force); err != nil {
		return err
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}
