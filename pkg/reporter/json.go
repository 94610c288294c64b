package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/livemd/pkg/visual"
)

// JSONRange is a half-open offset range.
type JSONRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// JSONRender is the JSON structure of a render pass.
type JSONRender struct {
	Path   string         `json:"path,omitempty"`
	Mode   visual.Mode    `json:"mode"`
	Text   string         `json:"text"`
	Styles []visual.Style `json:"styles"`

	// Cursor is in transformed offsets; omitted when there is none.
	Cursor *JSONRange `json:"cursor,omitempty"`
}

// JSONEdit is the JSON structure of an editing action.
type JSONEdit struct {
	Path       string     `json:"path,omitempty"`
	Action     string     `json:"action"`
	Tag        visual.Tag `json:"tag,omitempty"`
	Text       string     `json:"text"`
	Selection  JSONRange  `json:"selection"`
	Changed    bool       `json:"changed"`
	Written    bool       `json:"written,omitempty"`
	BackupPath string     `json:"backupPath,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Render implements Reporter.
func (r *JSONReporter) Render(_ context.Context, report *RenderReport) error {
	if report == nil || report.Result == nil {
		return nil
	}

	output := JSONRender{
		Path:   report.Path,
		Mode:   report.Mode,
		Text:   report.Result.Text,
		Styles: report.Result.Styles,
	}
	if output.Styles == nil {
		output.Styles = []visual.Style{}
	}
	if report.Cursor.Valid() && report.Result.Mapper != nil {
		mapped := report.Result.Mapper.CursorToTransformed(report.Cursor)
		output.Cursor = &JSONRange{Start: mapped.Start, End: mapped.End}
	}

	return r.encode(output)
}

// Edit implements Reporter.
func (r *JSONReporter) Edit(_ context.Context, report *EditReport) error {
	if report == nil {
		return nil
	}

	return r.encode(JSONEdit{
		Path:       report.Path,
		Action:     report.Action,
		Tag:        report.Tag,
		Text:       report.After,
		Selection:  JSONRange{Start: report.Selection.Start, End: report.Selection.End},
		Changed:    report.Changed(),
		Written:    report.Written,
		BackupPath: report.BackupPath,
	})
}

func (r *JSONReporter) encode(value any) error {
	writer := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	encoder := json.NewEncoder(writer)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return flush(writer)
}
