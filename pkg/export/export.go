// Package export converts dialect Markdown notes to HTML or to portable
// GitHub Flavored Markdown.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/yaklabco/livemd/pkg/mdast"
)

// Target formats.
const (
	TargetHTML     = "html"
	TargetMarkdown = "markdown"
)

// Parser parses dialect Markdown.
type Parser interface {
	Parse(source string) *mdast.Tree
}

// Options configures an Exporter.
type Options struct {
	// Title is the document title used in standalone mode. Empty means the
	// text of the first heading.
	Title string

	// Standalone wraps HTML output in a complete document.
	Standalone bool

	// LinkSuffix is appended to wikilink targets, e.g. ".html".
	LinkSuffix string
}

// Exporter converts notes.
type Exporter struct {
	opts   Options
	parser Parser
	md     goldmark.Markdown
}

// New creates an Exporter.
func New(opts Options, p Parser) *Exporter {
	return &Exporter{
		opts:   opts,
		parser: p,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// IsValidTarget reports whether target names a supported export format.
func IsValidTarget(target string) bool {
	return target == TargetHTML || target == TargetMarkdown
}

// Export writes source converted to target.
func (e *Exporter) Export(ctx context.Context, w io.Writer, source, target string) error {
	switch target {
	case TargetHTML:
		return e.HTML(ctx, w, source)
	case TargetMarkdown:
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("export cancelled: %w", err)
		}
		out, err := e.Rewrite(source)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("unknown export target %q", target)
	}
}

// HTML renders source as HTML.
func (e *Exporter) HTML(ctx context.Context, w io.Writer, source string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export cancelled: %w", err)
	}

	markdown, firstHeading, err := e.rewrite(source)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	pctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := e.md.Convert([]byte(markdown), &body, parser.WithContext(pctx)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	if !e.opts.Standalone {
		_, err = w.Write(body.Bytes())
		return err
	}

	title := e.opts.Title
	if title == "" {
		title = firstHeading
	}
	_, err = fmt.Fprintf(w, documentTemplate, html.EscapeString(title), body.String())
	return err
}

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`
