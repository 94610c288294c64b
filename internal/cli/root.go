// Package cli provides the Cobra command structure for livemd.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemd/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root livemd command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "livemd",
		Short: "Live-preview engine for Obsidian-flavored Markdown",
		Long: `livemd renders Obsidian-flavored Markdown the way a live-preview editor
shows it: decorative syntax is hidden except around the cursor, and every
visible character maps back to its place in the source.

It also applies and removes styles on a selection the way editor
shortcuts do, and exports notes to HTML or portable Markdown.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddGroup(commandGroups()...)
	add := func(group string, cmds ...*cobra.Command) {
		for _, cmd := range cmds {
			cmd.GroupID = group
			rootCmd.AddCommand(cmd)
		}
	}

	add(groupView,
		newRenderCommand(),
		newTokensCommand(),
		newTreeCommand(),
		newActiveCommand(),
		newExportCommand(),
	)
	add(groupEdit,
		newStyleCommand(actionApply),
		newStyleCommand(actionRemove),
		newStyleCommand(actionToggle),
		newIndentCommand(actionIndent),
		newIndentCommand(actionOutdent),
		newTagsCommand(),
	)
	add(groupVault, newVaultCommand())
	add(groupConfig, newInitCommand(), newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
