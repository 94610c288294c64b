// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/livemd/pkg/visual"
)

// defaultCodeTheme is the chroma style used for fenced code.
const defaultCodeTheme = "monokai"

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Document styles, indexed by heading level - 1.
	Headings [6]lipgloss.Style

	Bold          lipgloss.Style
	Italic        lipgloss.Style
	Strikethrough lipgloss.Style
	Highlight     lipgloss.Style
	Code          lipgloss.Style
	CodeBlock     lipgloss.Style
	Link          lipgloss.Style
	Embed         lipgloss.Style
	Footnote      lipgloss.Style
	Hashtag       lipgloss.Style
	BlockID       lipgloss.Style
	Quote         lipgloss.Style
	Callout       lipgloss.Style
	Comment       lipgloss.Style
	Rule          lipgloss.Style
	List          lipgloss.Style

	// Markup is revealed syntax around the cursor.
	Markup lipgloss.Style

	// Cursor styles
	Caret     lipgloss.Style
	Selection lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	FilePath lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Dim      lipgloss.Style

	// CodeTheme names the chroma style for fenced code.
	CodeTheme string

	colorEnabled bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	return &Styles{
		Headings: [6]lipgloss.Style{
			heading.Underline(true),
			heading,
			heading.Foreground(lipgloss.Color("12")),
			heading.Foreground(lipgloss.Color("14")),
			heading.Foreground(lipgloss.Color("6")),
			heading.Foreground(lipgloss.Color("7")),
		},

		Bold:          lipgloss.NewStyle().Bold(true),
		Italic:        lipgloss.NewStyle().Italic(true),
		Strikethrough: lipgloss.NewStyle().Strikethrough(true),
		Highlight:     lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0")),
		Code:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Background(lipgloss.Color("236")),
		CodeBlock:     lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Link:          lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		Embed:         lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Italic(true),
		Footnote:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Hashtag:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Background(lipgloss.Color("53")),
		BlockID:       dim,
		Quote:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true),
		Callout:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Comment:       dim.Italic(true),
		Rule:          dim.Strikethrough(true),
		List:          lipgloss.NewStyle(),

		Markup: dim,

		Caret:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Selection: lipgloss.NewStyle().Reverse(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: dim,

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: dim,

		FilePath: lipgloss.NewStyle().Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Dim:      dim,

		CodeTheme:    defaultCodeTheme,
		colorEnabled: true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Headings:       [6]lipgloss.Style{plain, plain, plain, plain, plain, plain},
		Bold:           plain,
		Italic:         plain,
		Strikethrough:  plain,
		Highlight:      plain,
		Code:           plain,
		CodeBlock:      plain,
		Link:           plain,
		Embed:          plain,
		Footnote:       plain,
		Hashtag:        plain,
		BlockID:        plain,
		Quote:          plain,
		Callout:        plain,
		Comment:        plain,
		Rule:           plain,
		List:           plain,
		Markup:         plain,
		Caret:          plain,
		Selection:      plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		TableHeader:    plain,
		TableSeparator: plain,
		FilePath:       plain,
		Error:          plain,
		Success:        plain,
		Dim:            plain,
	}
}

// ColorEnabled reports whether the styles emit colors.
func (s *Styles) ColorEnabled() bool {
	return s.colorEnabled
}

// ForTag returns the style that decorates a visual tag.
func (s *Styles) ForTag(tag visual.Tag) lipgloss.Style {
	if level := tag.HeadingLevel(); level > 0 {
		return s.Headings[level-1]
	}

	switch tag {
	case visual.TagBold:
		return s.Bold
	case visual.TagItalic:
		return s.Italic
	case visual.TagStrikethrough:
		return s.Strikethrough
	case visual.TagHighlight:
		return s.Highlight
	case visual.TagCodeSpan:
		return s.Code
	case visual.TagCodeBlock:
		return s.CodeBlock
	case visual.TagInternalLink, visual.TagInlineLink:
		return s.Link
	case visual.TagEmbed:
		return s.Embed
	case visual.TagFootnoteLink, visual.TagFootnoteDefinition, visual.TagInlineFootnote:
		return s.Footnote
	case visual.TagHashtag:
		return s.Hashtag
	case visual.TagBlockID:
		return s.BlockID
	case visual.TagBlockQuote:
		return s.Quote
	case visual.TagCallout:
		return s.Callout
	case visual.TagComment, visual.TagCommentBlock:
		return s.Comment
	case visual.TagHorizontalRule:
		return s.Rule
	case visual.TagUnorderedList, visual.TagOrderedList:
		return s.List
	case visual.TagMarkup:
		return s.Markup
	default:
		return lipgloss.NewStyle()
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
