package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemd/internal/logging"
	"github.com/yaklabco/livemd/pkg/assist"
	"github.com/yaklabco/livemd/pkg/config"
	"github.com/yaklabco/livemd/pkg/notefile"
	"github.com/yaklabco/livemd/pkg/reporter"
	"github.com/yaklabco/livemd/pkg/visual"
)

// Editing actions.
const (
	actionApply   = "apply"
	actionRemove  = "remove"
	actionToggle  = "toggle"
	actionIndent  = "indent"
	actionOutdent = "outdent"
)

//nolint:gochecknoglobals // Read-only help text.
var actionShort = map[string]string{
	actionApply:   "Apply a style to a selection",
	actionRemove:  "Remove a style from a selection",
	actionToggle:  "Apply a style, or remove it if the selection already has it",
	actionIndent:  "Indent the selected lines",
	actionOutdent: "Outdent the selected lines",
}

type editFlags struct {
	selection string
	format    string
	write     bool
	force     bool
	compact   bool
}

func addEditFlags(cmd *cobra.Command, flags *editFlags) {
	cmd.Flags().StringVarP(&flags.selection, "selection", "s", "",
		"selection as a byte offset N or a range A:B (default: whole note)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, styled, json, diff")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the note")
	cmd.Flags().BoolVar(&flags.force, "force", false, "write even if the note changed on disk")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}

func newStyleCommand(action string) *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   action + " <style> [file]",
		Short: actionShort[action],
		Long: actionShort[action] + `.

The style is a name listed by 'livemd tags', or h1 to h6 for headings.
Reads the note from stdin when no file is given and prints the edited
note, unless --write saves it in place.

Examples:
  livemd ` + action + ` bold note.md --selection 10:18
  livemd ` + action + ` h2 note.md -s 0 --write
  livemd ` + action + ` callout note.md -s 0:120 --format diff`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := parseStyle(args[0])
			if err != nil {
				return err
			}
			return runEdit(cmd, args[1:], flags, action, tag)
		},
	}

	addEditFlags(cmd, flags)
	return cmd
}

func newIndentCommand(action string) *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   action + " [file]",
		Short: actionShort[action],
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, flags, action, "")
		},
	}

	addEditFlags(cmd, flags)
	return cmd
}

// parseStyle resolves a style name. Headings may be given as h1..h6.
func parseStyle(name string) (visual.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 2 && name[0] == 'h' {
		name = "heading-" + name[1:]
	}

	tag := visual.Tag(name)
	for _, info := range assist.New(assist.DefaultOptions(), nil).Styles() {
		if info.Tag == tag {
			return tag, nil
		}
	}
	return "", fmt.Errorf("%w: unknown style %q; run 'livemd tags' for the list", ErrInvalidUsage, name)
}

func newAssistant(cfg *config.Config) *assist.Assistant {
	return assist.New(assist.Options{
		CalloutType:  cfg.Edit.CalloutType,
		CodeLanguage: cfg.Edit.CodeLanguage,
		Indent:       cfg.Edit.Indent,
	}, newParser(cfg))
}

func runEdit(cmd *cobra.Command, args []string, flags *editFlags, action string, tag visual.Tag) error {
	overrides := &config.Config{Write: flags.write}
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
	if cfg.Write && note.Path == "" {
		return fmt.Errorf("%w: --write needs a note path", ErrInvalidUsage)
	}

	sel, err := parseRange(flags.selection, len(note.Content), visual.Cursor{Start: 0, End: len(note.Content)})
	if err != nil {
		return err
	}

	after, newSel, err := edit(newAssistant(cfg), action, note.Content, sel, tag)
	if err != nil {
		if errors.Is(err, assist.ErrUnsupportedStyle) || errors.Is(err, assist.ErrSelection) {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		return err
	}

	report := &reporter.EditReport{
		Path:      note.Path,
		Action:    action,
		Tag:       tag,
		Before:    note.Content,
		After:     after,
		Selection: newSel,
	}

	if cfg.Write {
		result, err := notefile.Save(ctx, note, after, notefile.SaveOptions{
			Backup:       config.BoolValue(cfg.Backups.Enabled, true),
			BackupSuffix: cfg.Backups.Suffix,
			Force:        flags.force,
		})
		if err != nil {
			return fmt.Errorf("save note: %w", err)
		}
		if !result.Written {
			logger.Info("note unchanged")
			return nil
		}
		report.Written = true
		report.BackupPath = result.BackupPath
	}

	logger.Debug("edited note",
		logging.FieldStyle, tag,
		logging.FieldStart, newSel.Start,
		logging.FieldEnd, newSel.End,
	)

	rep, err := newReporter(cmd, cfg, false, flags.compact)
	if err != nil {
		return err
	}
	return rep.Edit(ctx, report)
}

func edit(a *assist.Assistant, action, text string, sel visual.Cursor, tag visual.Tag) (string, visual.Cursor, error) {
	switch action {
	case actionApply:
		return a.Apply(text, sel, tag)
	case actionRemove:
		return a.Remove(text, sel, tag)
	case actionToggle:
		return a.Toggle(text, sel, tag)
	case actionIndent:
		return a.Indent(text, sel)
	case actionOutdent:
		return a.Outdent(text, sel)
	default:
		return text, sel, fmt.Errorf("unknown action %q", action)
	}
}

type activeFlags struct {
	selection string
	format    string
}

// activeReport is the JSON form of the active command.
type activeReport struct {
	Path      string       `json:"path,omitempty"`
	Selection [2]int       `json:"selection"`
	Enclosing []visual.Tag `json:"enclosing"`
	Visible   []visual.Tag `json:"visible"`
}

func newActiveCommand() *cobra.Command {
	flags := &activeFlags{}

	cmd := &cobra.Command{
		Use:   "active [file]",
		Short: "List the styles in effect at a selection",
		Long: `List the styles in effect at a selection.

Enclosing styles are the constructs containing the selection in the
source. Visible styles are those painted over it in the rendered text,
which is what a toolbar shows as active.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActive(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.selection, "selection", "s", "0", "selection as a byte offset N or a range A:B")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runActive(cmd *cobra.Command, args []string, flags *activeFlags) error {
	if flags.format != formatText && flags.format != formatJSON {
		return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrInvalidUsage, flags.format)
	}

	cfg, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	note, err := readNote(cmd, args)
	if err != nil {
		return err
	}
	sel, err := parseRange(flags.selection, len(note.Content), visual.Caret(0))
	if err != nil {
		return err
	}

	engine := visual.NewEngine(newParser(cfg), renderOptions(cfg), logging.FromContext(ctx))
	result, err := engine.RenderContext(ctx, note.Content, sel)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	report := activeReport{
		Path:      note.Path,
		Selection: [2]int{sel.Start, sel.End},
		Enclosing: nonNil(newAssistant(cfg).Process(note.Content, sel)),
		Visible:   nonNil(assist.ActiveStyles(result, sel)),
	}

	out := cmd.OutOrStdout()
	if flags.format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding styles: %w", err)
		}
		return nil
	}

	_, err = fmt.Fprintf(out, "enclosing: %s\nvisible: %s\n", joinTags(report.Enclosing), joinTags(report.Visible))
	return err
}

func nonNil(tags []visual.Tag) []visual.Tag {
	if tags == nil {
		return []visual.Tag{}
	}
	return tags
}

func joinTags(tags []visual.Tag) string {
	if len(tags) == 0 {
		return "-"
	}
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = string(tag)
	}
	return strings.Join(names, ", ")
}
