package mdast_test

import (
	"testing"

	"github.com/yaklabco/livemd/pkg/mdast"
)

func TestToken_Text(t *testing.T) {
	t.Parallel()

	source := "hello world"

	tests := []struct {
		name     string
		token    mdast.Token
		expected string
	}{
		{"full content", mdast.Token{Kind: mdast.TokText, StartOffset: 0, EndOffset: 11}, "hello world"},
		{"first word", mdast.Token{Kind: mdast.TokText, StartOffset: 0, EndOffset: 5}, "hello"},
		{"space", mdast.Token{Kind: mdast.TokWhitespace, StartOffset: 5, EndOffset: 6}, " "},
		{"empty token", mdast.Token{Kind: mdast.TokText, StartOffset: 5, EndOffset: 5}, ""},
		{"out of range", mdast.Token{Kind: mdast.TokText, StartOffset: 5, EndOffset: 50}, ""},
		{"inverted", mdast.Token{Kind: mdast.TokText, StartOffset: 6, EndOffset: 5}, ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := testCase.token.Text(source)
			if got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestValidateTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tokens     []mdast.Token
		contentLen int
		want       bool
	}{
		{"empty content", nil, 0, true},
		{"missing tokens", nil, 3, false},
		{
			name: "contiguous",
			tokens: []mdast.Token{
				{Kind: mdast.TokStar, StartOffset: 0, EndOffset: 1},
				{Kind: mdast.TokText, StartOffset: 1, EndOffset: 3},
			},
			contentLen: 3,
			want:       true,
		},
		{
			name: "gap",
			tokens: []mdast.Token{
				{Kind: mdast.TokStar, StartOffset: 0, EndOffset: 1},
				{Kind: mdast.TokText, StartOffset: 2, EndOffset: 3},
			},
			contentLen: 3,
		},
		{
			name:       "short",
			tokens:     []mdast.Token{{Kind: mdast.TokText, StartOffset: 0, EndOffset: 2}},
			contentLen: 3,
		},
		{
			name: "empty token",
			tokens: []mdast.Token{
				{Kind: mdast.TokText, StartOffset: 0, EndOffset: 0},
				{Kind: mdast.TokText, StartOffset: 0, EndOffset: 3},
			},
			contentLen: 3,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := mdast.ValidateTokens(testCase.tokens, testCase.contentLen); got != testCase.want {
				t.Errorf("ValidateTokens() = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestKindStrings(t *testing.T) {
	t.Parallel()

	if got := mdast.TokTag.String(); got != "Tag" {
		t.Errorf("TokTag.String() = %q", got)
	}
	if got := mdast.TokenKind(999).String(); got != "TokenKind(999)" {
		t.Errorf("unknown token kind String() = %q", got)
	}
	if got := mdast.ElementInternalLink.String(); got != "InternalLink" {
		t.Errorf("ElementInternalLink.String() = %q", got)
	}
	if !mdast.ElementCallout.IsBlock() || mdast.ElementCallout.IsInline() {
		t.Error("callout should be a block kind")
	}
	if !mdast.ElementHashtag.IsInline() || mdast.ElementHashtag.IsLeaf() {
		t.Error("hashtag should be an inline container kind")
	}
	if !mdast.ElementSyntax.IsLeaf() {
		t.Error("syntax should be a leaf kind")
	}
}
