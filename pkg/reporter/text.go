package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/livemd/internal/ui/pretty"
	"github.com/yaklabco/livemd/pkg/visual"
)

// TextReporter writes plain or styled text.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	styled bool
}

// NewTextReporter creates a text reporter. A styled reporter paints the
// render result and colorizes edit diffs.
func NewTextReporter(opts Options, styled bool) *TextReporter {
	colorEnabled := styled && pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		styled: styled,
	}
}

// Render implements Reporter.
func (r *TextReporter) Render(_ context.Context, report *RenderReport) error {
	if report == nil || report.Result == nil {
		return nil
	}

	writer := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	var text string
	switch {
	case r.styled || r.opts.ShowCursor:
		cursor := visual.NoCursor
		if r.opts.ShowCursor {
			cursor = report.Cursor
		}
		text = r.styles.PaintCursor(report.Result, cursor)
	default:
		text = report.Result.Text
	}

	if err := writeLine(writer, text); err != nil {
		return err
	}
	return flush(writer)
}

// Edit implements Reporter. The edited text is written as is; a styled
// reporter writes a colorized diff instead.
func (r *TextReporter) Edit(_ context.Context, report *EditReport) error {
	if report == nil {
		return nil
	}

	writer := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	if report.Written {
		writeStatus(r.opts.ErrorWriter, report)
		return nil
	}

	if r.styled {
		if _, err := writer.WriteString(r.styles.PaintDiff(unifiedDiff(report))); err != nil {
			return fmt.Errorf("write diff: %w", err)
		}
		return flush(writer)
	}

	if _, err := writer.WriteString(report.After); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return flush(writer)
}

func writeLine(w io.StringWriter, text string) error {
	if _, err := w.WriteString(text); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	if !strings.HasSuffix(text, "\n") {
		if _, err := w.WriteString("\n"); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
	}
	return nil
}

func flush(w *bufio.Writer) error {
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
