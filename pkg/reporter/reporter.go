// Package reporter writes render passes and editing results in the
// formats offered by the CLI.
package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/livemd/pkg/visual"
)

// Reporter formats and writes results.
type Reporter interface {
	// Render writes a render pass.
	Render(ctx context.Context, report *RenderReport) error

	// Edit writes the outcome of an editing action.
	Edit(ctx context.Context, report *EditReport) error
}

// RenderReport is a render pass over one note.
type RenderReport struct {
	// Path is the note path, empty for stdin.
	Path string

	// Mode is the render mode that produced Result.
	Mode visual.Mode

	// Cursor is the cursor in source offsets.
	Cursor visual.Cursor

	// Result is the transformation output.
	Result *visual.Result
}

// EditReport is the outcome of an editing action on one note.
type EditReport struct {
	// Path is the note path, empty for stdin.
	Path string

	// Action names the editing action (apply, remove, toggle, indent, outdent).
	Action string

	// Tag is the style acted on, empty for actions without one.
	Tag visual.Tag

	// Before and After are the note text around the edit.
	Before string
	After  string

	// Selection is the re-anchored selection in After.
	Selection visual.Cursor

	// Written is true when After was saved to Path.
	Written bool

	// BackupPath is set when saving created a backup.
	BackupPath string
}

// Changed reports whether the action modified the text.
func (r *EditReport) Changed() bool {
	return r.Before != r.After
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = io.Discard
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatStyled:
		return NewTextReporter(opts, true), nil
	case FormatText:
		return NewTextReporter(opts, false), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayName is the label used for a note without a path.
func displayName(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}

// writeStatus reports a save on the error writer so stdout stays clean.
func writeStatus(w io.Writer, report *EditReport) {
	if !report.Written {
		return
	}
	fmt.Fprintf(w, "wrote %s\n", report.Path)
	if report.BackupPath != "" {
		fmt.Fprintf(w, "backup %s\n", report.BackupPath)
	}
}
