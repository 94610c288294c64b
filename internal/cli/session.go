package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/livemd/internal/configloader"
	"github.com/yaklabco/livemd/internal/logging"
	"github.com/yaklabco/livemd/pkg/config"
	"github.com/yaklabco/livemd/pkg/notefile"
	"github.com/yaklabco/livemd/pkg/parser/obsidian"
	"github.com/yaklabco/livemd/pkg/reporter"
	"github.com/yaklabco/livemd/pkg/visual"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the layered configuration with overrides taken from
// command flags, and attaches the logger to the command context.
func loadConfig(cmd *cobra.Command, overrides *config.Config) (*config.Config, error) {
	logger := logging.Default()
	ctx := commandContext(cmd)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		overrides.Color = config.ColorMode(color)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cfg := loadResult.Config

	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(cfg.LogLevel)
	}
	format, _ := logging.ParseFormat(cfg.LogFormat)
	logging.SetFormat(format)

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	cmd.SetContext(logging.WithLogger(ctx, logger))
	return cfg, nil
}

// readNote loads the note named by args, or reads one from stdin when args
// is empty or "-". An interactive stdin is refused.
func readNote(cmd *cobra.Command, args []string) (*notefile.Note, error) {
	if len(args) > 0 && args[0] != "-" {
		return notefile.Load(commandContext(cmd), args[0])
	}

	input := cmd.InOrStdin()
	if f, ok := input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("%w: no input; pass a note path or pipe a note on stdin", ErrInvalidUsage)
	}
	return notefile.Read(input)
}

// parseRange parses "N" as a caret and "A:B" as a selection, checked
// against a text of textLen bytes. An empty arg yields fallback.
func parseRange(arg string, textLen int, fallback visual.Cursor) (visual.Cursor, error) {
	if arg == "" {
		return fallback, nil
	}

	startText, endText, isRange := strings.Cut(arg, ":")
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return fallback, fmt.Errorf("%w: bad offset in %q", ErrInvalidUsage, arg)
	}
	end := start
	if isRange {
		end, err = strconv.Atoi(strings.TrimSpace(endText))
		if err != nil {
			return fallback, fmt.Errorf("%w: bad offset in %q", ErrInvalidUsage, arg)
		}
	}

	if start < 0 || end < start || end > textLen {
		return fallback, fmt.Errorf("%w: range %q outside note of %d bytes", ErrInvalidUsage, arg, textLen)
	}
	return visual.Cursor{Start: start, End: end}, nil
}

func newParser(cfg *config.Config) *obsidian.Parser {
	return obsidian.New(obsidian.Options{
		DetectLanguage: config.BoolValue(cfg.Render.DetectLanguage, false),
	})
}

func renderOptions(cfg *config.Config) visual.Options {
	return visual.Options{
		Mode:           visual.Mode(cfg.Render.Mode),
		BulletGlyph:    cfg.Render.BulletGlyph,
		HashtagPadding: config.BoolValue(cfg.Render.HashtagPadding, true),
	}
}

func newReporter(cmd *cobra.Command, cfg *config.Config, showCursor, compact bool) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(cfg.Color),
		ShowCursor:  showCursor,
		Compact:     compact,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

// formatOverride validates a --format flag value.
func formatOverride(cmd *cobra.Command, format string, overrides *config.Config) error {
	if !cmd.Flags().Changed("format") {
		return nil
	}
	if !config.OutputFormat(format).IsValid() {
		return fmt.Errorf("%w: unknown format %q; valid formats: text, styled, json, diff", ErrInvalidUsage, format)
	}
	overrides.Format = config.OutputFormat(format)
	return nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
