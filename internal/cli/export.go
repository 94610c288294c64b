package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemd/internal/logging"
	"github.com/yaklabco/livemd/pkg/config"
	"github.com/yaklabco/livemd/pkg/export"
	"github.com/yaklabco/livemd/pkg/notefile"
)

type exportFlags struct {
	target     string
	output     string
	title      string
	fragment   bool
	linkSuffix string
	force      bool
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a note to HTML or portable Markdown",
		Long: `Export a note to HTML or to GitHub Flavored Markdown.

Wikilinks become ordinary links to slugged file names, highlights become
<mark>, comments are dropped and inline footnotes become numbered
footnotes.

Examples:
  livemd export note.md                       # Standalone HTML on stdout
  livemd export note.md -o note.html          # Write to a file
  livemd export note.md --fragment            # HTML body only
  livemd export note.md --to markdown         # Portable Markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.target, "to", export.TargetHTML, "export format: html, markdown")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&flags.title, "title", "", "document title (default: first heading)")
	cmd.Flags().BoolVar(&flags.fragment, "fragment", false, "write the HTML body without a document wrapper")
	cmd.Flags().StringVar(&flags.linkSuffix, "link-suffix", "", "suffix appended to wikilink targets")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing output file")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, flags *exportFlags) error {
	if !export.IsValidTarget(flags.target) {
		return fmt.Errorf("%w: unknown export target %q; valid targets: html, markdown", ErrInvalidUsage, flags.target)
	}

	overrides := &config.Config{}
	overrides.Export.Title = flags.title
	overrides.Export.LinkSuffix = flags.linkSuffix
	if cmd.Flags().Changed("fragment") {
		overrides.Export.Standalone = config.Bool(!flags.fragment)
	}

	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	note, err := readNote(cmd, args)
	if err != nil {
		return err
	}

	exporter := export.New(export.Options{
		Title:      cfg.Export.Title,
		Standalone: config.BoolValue(cfg.Export.Standalone, true),
		LinkSuffix: cfg.Export.LinkSuffix,
	}, newParser(cfg))

	if flags.output == "" {
		return exporter.Export(ctx, cmd.OutOrStdout(), note.Content, flags.target)
	}

	if _, err := os.Stat(flags.output); err == nil && !flags.force {
		return fmt.Errorf("%w: output file %q already exists; use --force to overwrite", ErrInvalidUsage, flags.output)
	}

	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf, note.Content, flags.target); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if err := notefile.WriteAtomic(ctx, flags.output, buf.Bytes(), notefile.DefaultFileMode); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("exported note", logging.FieldInput, note.Path, logging.FieldOutput, flags.output)
	return nil
}
