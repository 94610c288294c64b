package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/livemd/internal/ui/pretty"
	"github.com/yaklabco/livemd/pkg/fix"
)

// DiffReporter writes unified diffs: the edit for editing actions, and
// the hidden syntax for render passes.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Reporter.
func (r *DiffReporter) Render(_ context.Context, report *RenderReport) error {
	if report == nil || report.Result == nil {
		return nil
	}
	diff := fix.UnifiedDiff(displayName(report.Path), report.Result.Source, report.Result.Text)
	return r.write(diff)
}

// Edit implements Reporter.
func (r *DiffReporter) Edit(_ context.Context, report *EditReport) error {
	if report == nil {
		return nil
	}
	writeStatus(r.opts.ErrorWriter, report)
	return r.write(unifiedDiff(report))
}

func (r *DiffReporter) write(diff string) error {
	writer := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	if _, err := writer.WriteString(r.styles.PaintDiff(diff)); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	return flush(writer)
}

func unifiedDiff(report *EditReport) string {
	return fix.UnifiedDiff(displayName(report.Path), report.Before, report.After)
}
