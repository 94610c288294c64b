package mdast

import "strconv"

// TokenKind classifies the type of a token in the Markdown source.
type TokenKind uint16

// Token kinds cover every byte in the source. Punctuation that the dialect
// gives meaning to is always emitted one byte per token; runs are merged by
// the parsers that consume them.
const (
	TokText TokenKind = iota
	TokWhitespace
	TokNewline
	TokEscaped // '\' + ASCII punctuation

	TokBacktick
	TokTilde
	TokStar
	TokUnderscore
	TokBang
	TokLBracket
	TokRBracket
	TokLParen
	TokRParen
	TokColon
	TokGT
	TokDash
	TokPlus

	// Dialect tokens.
	TokCaret
	TokPercent
	TokEq
	TokPipe
	TokHash
	TokTag // '#' plus tag text, e.g. "#project/alpha"

	tokenKindCount
)

//nolint:gochecknoglobals // Lookup table for String.
var tokenKindNames = [tokenKindCount]string{
	TokText:       "Text",
	TokWhitespace: "Whitespace",
	TokNewline:    "Newline",
	TokEscaped:    "Escaped",
	TokBacktick:   "Backtick",
	TokTilde:      "Tilde",
	TokStar:       "Star",
	TokUnderscore: "Underscore",
	TokBang:       "Bang",
	TokLBracket:   "LBracket",
	TokRBracket:   "RBracket",
	TokLParen:     "LParen",
	TokRParen:     "RParen",
	TokColon:      "Colon",
	TokGT:         "GT",
	TokDash:       "Dash",
	TokPlus:       "Plus",
	TokCaret:      "Caret",
	TokPercent:    "Percent",
	TokEq:         "Eq",
	TokPipe:       "Pipe",
	TokHash:       "Hash",
	TokTag:        "Tag",
}

func (k TokenKind) String() string {
	if k < tokenKindCount {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token represents a classified span of bytes in the Markdown source.
// Tokens are contiguous and non-overlapping, covering [0, len(source)).
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int
}

// Text returns the source text of this token.
func (t Token) Text(source string) string {
	if t.StartOffset < 0 || t.EndOffset > len(source) || t.StartOffset > t.EndOffset {
		return ""
	}
	return source[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.StartOffset == t.EndOffset
}

// ValidateTokens checks that a token slice is valid:
// - Tokens are contiguous and non-empty.
// - Tokens cover the full content range [0, contentLen).
// Returns true if valid, false otherwise.
func ValidateTokens(tokens []Token, contentLen int) bool {
	if len(tokens) == 0 {
		return contentLen == 0
	}

	if tokens[0].StartOffset != 0 || tokens[len(tokens)-1].EndOffset != contentLen {
		return false
	}

	for i := range tokens {
		if tokens[i].IsEmpty() {
			return false
		}
		if i > 0 && tokens[i].StartOffset != tokens[i-1].EndOffset {
			return false
		}
	}

	return true
}
