package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemd/internal/logging"
	"github.com/yaklabco/livemd/internal/ui/pretty"
	"github.com/yaklabco/livemd/pkg/analysis"
	"github.com/yaklabco/livemd/pkg/config"
	"github.com/yaklabco/livemd/pkg/notefile"
	"github.com/yaklabco/livemd/pkg/runner"
)

// ErrUnresolvedLinks is returned by vault --strict when a link is broken.
var ErrUnresolvedLinks = errors.New("unresolved links")

type vaultFlags struct {
	format  string
	jobs    int
	ignore  []string
	strict  bool
	sort    string
	symlink bool
}

func newVaultCommand() *cobra.Command {
	flags := &vaultFlags{}

	cmd := &cobra.Command{
		Use:   "vault [paths...]",
		Short: "Index the notes of a vault",
		Long: `Index every note under the given paths (default: current directory):
count tags, backlinks and embeds, and list wikilinks and embeds whose
note, heading or block cannot be found. Hidden folders such as
.obsidian and .trash are skipped. A single folder argument is treated
as the vault root that path-qualified links resolve against.`,
		Example: `  livemd vault
  livemd vault --ignore "templates/**" --strict
  livemd vault notes --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVault(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, json")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "notes processed concurrently (0 = all CPUs)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob of notes or folders to skip (repeatable)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit 1 when a link is unresolved")
	cmd.Flags().StringVar(&flags.sort, "sort", string(analysis.SortByCount), "sort tags and notes: count, alpha")
	cmd.Flags().BoolVar(&flags.symlink, "follow-symlinks", false, "traverse symlinked folders")

	return cmd
}

func runVault(cmd *cobra.Command, args []string, flags *vaultFlags) error {
	if flags.format != formatText && flags.format != formatJSON {
		return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrInvalidUsage, flags.format)
	}
	sortBy := analysis.SortField(flags.sort)
	if !sortBy.IsValid() {
		return fmt.Errorf("%w: unknown sort %q; valid: count, alpha", ErrInvalidUsage, flags.sort)
	}

	overrides := &config.Config{Vault: config.VaultConfig{Ignore: flags.ignore, Jobs: flags.jobs}}
	if cmd.Flags().Changed("follow-symlinks") {
		overrides.Vault.FollowSymlinks = config.Bool(flags.symlink)
	}
	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	workDir, paths, err := vaultRoot(args)
	if err != nil {
		return err
	}

	parser := newParser(cfg)
	result, err := runner.Run(ctx, runner.Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Ignore:         cfg.Vault.Ignore,
		FollowSymlinks: config.BoolValue(cfg.Vault.FollowSymlinks, false),
		Jobs:           cfg.Vault.Jobs,
	}, func(ctx context.Context, note *notefile.Note) (analysis.NoteFacts, error) {
		tree, err := parser.ParseContext(ctx, note.Content)
		if err != nil {
			return analysis.NoteFacts{}, err
		}
		return analysis.Collect(note.Path, tree), nil
	})
	if err != nil {
		return err
	}

	for _, outcome := range result.Notes {
		if outcome.Error != nil {
			logger.Warn("skipped note", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		}
	}
	logger.Debug("indexed vault",
		"discovered", result.Stats.FilesDiscovered,
		"processed", result.Stats.FilesProcessed,
		"errored", result.Stats.FilesErrored,
	)

	opts := analysis.DefaultOptions()
	opts.SortBy = sortBy
	opts.WorkingDir = workDir
	report := analysis.Analyze(result.Values(), opts)

	if flags.format == formatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	} else if err := writeVaultText(cmd, cfg, report); err != nil {
		return err
	}

	if flags.strict && report.Totals.HasUnresolved() {
		return fmt.Errorf("%w: %d in %d notes", ErrUnresolvedLinks, report.Totals.Unresolved, report.Totals.Notes)
	}
	return nil
}

// vaultRoot picks the directory links resolve against: a single directory
// argument is the vault itself, otherwise the working directory.
func vaultRoot(args []string) (string, []string, error) {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return "", nil, fmt.Errorf("resolve vault root: %w", err)
			}
			return root, nil, nil
		}
	}
	workDir, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("get working directory: %w", err)
	}
	return workDir, args, nil
}

func writeVaultText(cmd *cobra.Command, cfg *config.Config, report *analysis.Report) error {
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))
	table := pretty.NewTableFormatter(styles, terminalWidth(cmd))

	totals := report.Totals
	if _, err := fmt.Fprintf(out, "%d notes, %d links, %d embeds, %d tags, %d unresolved\n",
		totals.Notes, totals.Links, totals.Embeds, totals.Tags, totals.Unresolved); err != nil {
		return err
	}

	if len(report.Tags) > 0 {
		rows := make([][]string, 0, len(report.Tags))
		for _, tag := range report.Tags {
			rows = append(rows, []string{"#" + tag.Tag, strconv.Itoa(tag.Count), strings.Join(tag.Notes, ", ")})
		}
		if err := writeSection(out, "Tags", table.Format([]string{"TAG", "COUNT", "NOTES"}, rows)); err != nil {
			return err
		}
	}

	if len(report.Unresolved) > 0 {
		rows := make([][]string, 0, len(report.Unresolved))
		for _, link := range report.Unresolved {
			target := "[[" + link.Target + "]]"
			if link.Embed {
				target = "!" + target
			}
			rows = append(rows, []string{link.Path + ":" + strconv.Itoa(link.Line), target, string(link.Reason)})
		}
		if err := writeSection(out, "Unresolved", table.Format([]string{"LOCATION", "LINK", "REASON"}, rows)); err != nil {
			return err
		}
	}
	return nil
}

func writeSection(w io.Writer, title, body string) error {
	_, err := fmt.Fprintf(w, "\n%s\n%s", title, body)
	return err
}
