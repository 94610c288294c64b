package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemd/internal/configloader"
	"github.com/yaklabco/livemd/internal/logging"
	"github.com/yaklabco/livemd/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new livemd configuration file",
		Long: `Create a new .livemd.yml configuration file in the current directory
with the default settings written out, ready to customize.

Examples:
  livemd init                       Create .livemd.yml
  livemd init --format toml         Create .livemd.toml instead
  livemd init --output vault.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .livemd.yml or .livemd.toml)")

	return cmd
}

func runInit(w io.Writer, flags *initFlags) error {
	logger := logging.NewInteractive(w)

	if flags.format != "yaml" && flags.format != "toml" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".livemd.yml"
		if flags.format == "toml" {
			outputPath = ".livemd.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := configloader.WriteConfig(config.NewConfig(), absPath, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'livemd tags' to see the styles editing commands accept")

	return nil
}
