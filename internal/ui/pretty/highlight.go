package pretty

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/livemd/pkg/visual"
)

var (
	lexerCache   = make(map[string]chroma.Lexer)
	lexerCacheMu sync.RWMutex
)

// codeRegion is a highlighted span of transformed text.
type codeRegion struct {
	start, end int
	painted    string
}

// codeRegions highlights the content of every labelled code block. The
// fence lines, when revealed, are left to the regular style pass.
func (s *Styles) codeRegions(text string, styles []visual.Style) []codeRegion {
	if !s.colorEnabled {
		return nil
	}

	var regions []codeRegion
	for _, st := range styles {
		if st.Tag != visual.TagCodeBlock || st.Payload == "" {
			continue
		}

		start, end := st.Start, st.End
		for _, markup := range styles {
			if markup.Tag != visual.TagMarkup {
				continue
			}
			if markup.Start == start && markup.End <= end {
				start = markup.End
			}
			if markup.End == end && markup.Start >= start {
				end = markup.Start
			}
		}
		if start >= end {
			continue
		}

		painted, ok := s.highlight(text[start:end], st.Payload)
		if !ok {
			continue
		}
		regions = append(regions, codeRegion{start: start, end: end, painted: painted})
	}
	return regions
}

// highlight paints code with the chroma lexer for lang.
func (s *Styles) highlight(code, lang string) (string, bool) {
	lexer := lexerFor(lang)
	if lexer == nil {
		return "", false
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	theme := chromastyles.Get(s.CodeTheme)
	var sb strings.Builder
	for _, tok := range iterator.Tokens() {
		if tok.Value == "" {
			continue
		}
		style := chromaToLipgloss(tok.Type, theme).Inherit(s.CodeBlock)
		s.writeSegment(&sb, tok.Value, &style)
	}
	return sb.String(), true
}

func lexerFor(lang string) chroma.Lexer {
	lexerCacheMu.RLock()
	lexer, ok := lexerCache[lang]
	lexerCacheMu.RUnlock()
	if ok {
		return lexer
	}

	lexer = lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Match("file." + lang)
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}

	lexerCacheMu.Lock()
	lexerCache[lang] = lexer
	lexerCacheMu.Unlock()
	return lexer
}

func chromaToLipgloss(tokenType chroma.TokenType, theme *chroma.Style) lipgloss.Style {
	entry := theme.Get(tokenType)
	style := lipgloss.NewStyle()

	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}
