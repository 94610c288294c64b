package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/livemd/pkg/mdast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   mdast.Lines
	}{
		{"empty", "", mdast.Lines{{0, 0, 0}}},
		{"single line", "abc", mdast.Lines{{0, 3, 3}}},
		{"trailing newline", "abc\n", mdast.Lines{{0, 3, 4}, {4, 4, 4}}},
		{"crlf", "a\r\nb", mdast.Lines{{0, 1, 3}, {3, 4, 4}}},
		{"blank line", "a\n\nb", mdast.Lines{{0, 1, 2}, {2, 2, 3}, {3, 4, 4}}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, mdast.BuildLines(testCase.source))
		})
	}
}

func TestLines_LineAtAndOffset(t *testing.T) {
	t.Parallel()

	source := "# Title\n\nbody text\n"
	lines := mdast.BuildLines(source)

	line, col := lines.LineAt(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = lines.LineAt(12)
	assert.Equal(t, 3, line)
	assert.Equal(t, 4, col)

	line, _ = lines.LineAt(len(source) + 10)
	assert.Equal(t, 4, line)

	offset, ok := lines.Offset(3, 4)
	assert.True(t, ok)
	assert.Equal(t, 12, offset)

	offset, ok = lines.Offset(1, 8)
	assert.True(t, ok, "column at end of line is valid")
	assert.Equal(t, 7, offset)

	_, ok = lines.Offset(1, 9)
	assert.False(t, ok)

	_, ok = lines.Offset(9, 1)
	assert.False(t, ok)

	assert.Equal(t, "body text", lines.Content(source, 2))
	assert.Empty(t, lines.Content(source, 42))
}
