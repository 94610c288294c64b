package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemd/internal/logging"
	"github.com/yaklabco/livemd/pkg/assist"
	"github.com/yaklabco/livemd/pkg/config"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type tagsFlags struct {
	format string
}

func newTagsCommand() *cobra.Command {
	flags := &tagsFlags{}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the styles the editing commands accept",
		Long: `List every style accepted by apply, remove and toggle with the syntax
it writes. Inline styles wrap the selection, line styles prefix each
selected line and fence styles surround the selected lines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}
			styles := newAssistant(cfg).Styles()

			switch flags.format {
			case formatJSON:
				return outputTagsJSON(cmd, styles)
			case formatText:
			default:
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrInvalidUsage, flags.format)
			}

			logger := logging.NewInteractive(cmd.OutOrStdout())
			logger.Info("available styles")

			for _, info := range styles {
				logger.Info(string(info.Tag),
					logging.FieldKind, info.Kind,
					"open", strconv.Quote(info.Open),
					"close", strconv.Quote(info.Close),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, json")

	return cmd
}

// outputTagsJSON outputs styles as a JSON array.
func outputTagsJSON(cmd *cobra.Command, styles []assist.StyleInfo) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(styles); err != nil {
		return fmt.Errorf("encoding styles: %w", err)
	}
	return nil
}
