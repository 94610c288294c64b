package obsidian

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/livemd/pkg/mdast"
)

// tokenizer performs a single-pass tokenization of dialect Markdown.
// It produces a contiguous, non-overlapping token stream covering [0, len(source)).
type tokenizer struct {
	source string
	tokens []mdast.Token
	pos    int
}

// Tokenize performs a single-pass tokenization of the given source.
// It never fails: bytes without special meaning become text tokens.
func Tokenize(source string) []mdast.Token {
	if len(source) == 0 {
		return nil
	}

	const initialCapacityDivisor = 3 // reasonable initial capacity estimate
	tok := &tokenizer{
		source: source,
		tokens: make([]mdast.Token, 0, len(source)/initialCapacityDivisor+1),
	}

	for tok.pos < len(tok.source) {
		tok.next()
	}

	return tok.tokens
}

// singleTokens maps bytes that always form a one-byte token.
//
//nolint:gochecknoglobals // Lookup table.
var singleTokens = [256]mdast.TokenKind{
	'`': mdast.TokBacktick,
	'~': mdast.TokTilde,
	'*': mdast.TokStar,
	'_': mdast.TokUnderscore,
	'!': mdast.TokBang,
	'[': mdast.TokLBracket,
	']': mdast.TokRBracket,
	'(': mdast.TokLParen,
	')': mdast.TokRParen,
	':': mdast.TokColon,
	'>': mdast.TokGT,
	'-': mdast.TokDash,
	'+': mdast.TokPlus,
	'^': mdast.TokCaret,
	'%': mdast.TokPercent,
	'=': mdast.TokEq,
	'|': mdast.TokPipe,
	'#': mdast.TokHash,
}

func isSpecial(c byte) bool {
	return singleTokens[c] != mdast.TokText || c == '\\' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// next emits exactly one token starting at pos.
func (t *tokenizer) next() {
	start := t.pos
	c := t.source[t.pos]

	switch {
	case c == '\n':
		t.pos++
		t.emit(mdast.TokNewline, start)
	case c == '\r' && t.pos+1 < len(t.source) && t.source[t.pos+1] == '\n':
		t.pos += 2
		t.emit(mdast.TokNewline, start)
	case c == ' ' || c == '\t':
		for t.pos < len(t.source) && (t.source[t.pos] == ' ' || t.source[t.pos] == '\t') {
			t.pos++
		}
		t.emit(mdast.TokWhitespace, start)
	case c == '\\' && t.pos+1 < len(t.source) && isASCIIPunct(t.source[t.pos+1]):
		t.pos += 2
		t.emit(mdast.TokEscaped, start)
	case c == '#':
		if end, ok := t.scanTag(); ok {
			t.pos = end
			t.emit(mdast.TokTag, start)
			return
		}
		t.pos++
		t.emit(mdast.TokHash, start)
	case singleTokens[c] != mdast.TokText:
		t.pos++
		t.emit(singleTokens[c], start)
	default:
		t.pos++
		for t.pos < len(t.source) && !isSpecial(t.source[t.pos]) {
			t.pos++
		}
		t.emit(mdast.TokText, start)
	}
}

// scanTag checks whether the '#' at pos starts a hashtag and returns the
// end offset of the tag. A tag starts at line start or after whitespace and
// contains at least one character that is not a digit.
func (t *tokenizer) scanTag() (int, bool) {
	if t.pos > 0 {
		prev, _ := utf8.DecodeLastRuneInString(t.source[:t.pos])
		if !unicode.IsSpace(prev) {
			return 0, false
		}
	}

	end := t.pos + 1
	nonDigit := false
	for end < len(t.source) {
		r, size := utf8.DecodeRuneInString(t.source[end:])
		if !isTagRune(r) {
			break
		}
		if !unicode.IsDigit(r) {
			nonDigit = true
		}
		end += size
	}

	return end, nonDigit
}

func isTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '/'
}

func (t *tokenizer) emit(kind mdast.TokenKind, start int) {
	t.tokens = append(t.tokens, mdast.Token{Kind: kind, StartOffset: start, EndOffset: t.pos})
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
