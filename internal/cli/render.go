package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemd/internal/logging"
	"github.com/yaklabco/livemd/internal/ui/pretty"
	"github.com/yaklabco/livemd/pkg/config"
	"github.com/yaklabco/livemd/pkg/parser/obsidian"
	"github.com/yaklabco/livemd/pkg/reporter"
	"github.com/yaklabco/livemd/pkg/visual"
)

type renderFlags struct {
	cursor     string
	mode       string
	format     string
	showCursor bool
	compact    bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a note as a live-preview editor shows it",
		Long:  renderLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.cursor, "cursor", "", "cursor as a byte offset N or a selection A:B")
	cmd.Flags().StringVar(&flags.mode, "mode", "live", "render mode: live, source, reading")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, styled, json, diff")
	cmd.Flags().BoolVar(&flags.showCursor, "show-cursor", false, "mark the cursor in the output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

const renderLongDescription = `Render a note the way a live-preview editor shows it.

Decorative syntax is hidden except inside the constructs the cursor
touches. Reads the note from stdin when no file is given.

Examples:
  livemd render note.md                   # Cursor outside all syntax
  livemd render note.md --cursor 42       # Reveal syntax around offset 42
  livemd render note.md --cursor 10:20    # Reveal syntax around a selection
  livemd render note.md --format styled   # Paint styles in the terminal
  livemd render note.md --format json     # Text, styles and offsets as JSON
  livemd render --mode reading < note.md  # Hide all syntax`

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	overrides := &config.Config{}
	if cmd.Flags().Changed("mode") {
		if !config.Mode(flags.mode).IsValid() {
			return fmt.Errorf("%w: unknown mode %q; valid modes: live, source, reading", ErrInvalidUsage, flags.mode)
		}
		overrides.Render.Mode = config.Mode(flags.mode)
	}
	if err := formatOverride(cmd, flags.format, overrides); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}
	note, err := readNote(cmd, args)
	if err != nil {
		return err
	}
	ctx := logging.With(commandContext(cmd), logging.FieldPath, note.Path)
	logger := logging.FromContext(ctx)

	cursor, err := parseRange(flags.cursor, len(note.Content), visual.NoCursor)
	if err != nil {
		return err
	}

	logger.Debug("rendering note",
		logging.FieldMode, cfg.Render.Mode,
		logging.FieldCursor, flags.cursor,
	)

	engine := visual.NewEngine(newParser(cfg), renderOptions(cfg), logger)
	result, err := engine.RenderContext(ctx, note.Content, cursor)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	rep, err := newReporter(cmd, cfg, flags.showCursor, flags.compact)
	if err != nil {
		return err
	}

	return rep.Render(ctx, &reporter.RenderReport{
		Path:   note.Path,
		Mode:   visual.Mode(cfg.Render.Mode),
		Cursor: cursor,
		Result: result,
	})
}

func newTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a note",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}
			note, err := readNote(cmd, args)
			if err != nil {
				return err
			}

			tokens := obsidian.Tokenize(note.Content)
			rows := make([][]string, 0, len(tokens))
			for i, tok := range tokens {
				rows = append(rows, []string{
					strconv.Itoa(i),
					tok.Kind.String(),
					strconv.Itoa(tok.StartOffset),
					strconv.Itoa(tok.EndOffset),
					strconv.Quote(tok.Text(note.Content)),
				})
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), cmd.OutOrStdout()))
			table := pretty.NewTableFormatter(styles, terminalWidth(cmd))
			_, err = fmt.Fprint(cmd.OutOrStdout(), table.Format([]string{"#", "KIND", "START", "END", "TEXT"}, rows))
			return err
		},
	}
}

func newTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the parse tree of a note",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}
			note, err := readNote(cmd, args)
			if err != nil {
				return err
			}

			tree, err := newParser(cfg).ParseContext(commandContext(cmd), note.Content)
			if err != nil {
				return err
			}
			return tree.Dump(cmd.OutOrStdout())
		},
	}
}
