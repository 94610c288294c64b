package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemd/internal/logging"
)

type versionReport struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// resolveVersion fills in a development build's version from the module
// build info, as set by "go install".
func resolveVersion(info BuildInfo) versionReport {
	report := versionReport{
		Version: info.Version,
		Commit:  info.Commit,
		Date:    info.Date,
		Go:      runtime.Version(),
	}
	if report.Version == "" || report.Version == "dev" {
		if build, ok := debug.ReadBuildInfo(); ok && build.Main.Version != "" && build.Main.Version != "(devel)" {
			report.Version = build.Main.Version
		}
	}
	return report
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go version of livemd.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := resolveVersion(info)

			switch format {
			case formatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case formatText:
			default:
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrInvalidUsage, format)
			}

			logging.New(cmd.OutOrStdout(), "info").Info("livemd",
				logging.FieldVersion, report.Version,
				logging.FieldCommit, report.Commit,
				logging.FieldBuilt, report.Date,
				"go", report.Go,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json")

	return cmd
}
