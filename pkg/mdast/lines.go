package mdast

import "sort"

// LineInfo describes one line of the source.
type LineInfo struct {
	// StartOffset is the byte offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the offset of the line terminator ("\n" or "\r\n"),
	// or EndOffset when the line has none.
	NewlineStart int

	// EndOffset is the offset just past the line terminator.
	EndOffset int
}

// Lines is the line index of a source.
type Lines []LineInfo

// BuildLines constructs line metadata from the source.
// It handles both LF (\n) and CRLF (\r\n) line endings. The result always
// has at least one line; a trailing newline yields a final empty line.
func BuildLines(source string) Lines {
	lines := make(Lines, 0, 16)
	lineStart := 0

	for idx := 0; idx < len(source); idx++ {
		if source[idx] != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && source[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	return append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(source),
		EndOffset:    len(source),
	})
}

// Index returns the 0-based index of the line containing offset.
// Offsets past the end map to the last line.
func (l Lines) Index(offset int) int {
	if len(l) == 0 || offset <= 0 {
		return 0
	}

	idx := sort.Search(len(l), func(i int) bool {
		return l[i].EndOffset > offset
	})
	if idx >= len(l) {
		idx = len(l) - 1
	}

	return idx
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
func (l Lines) LineAt(offset int) (int, int) {
	if len(l) == 0 {
		return 0, 0
	}
	if offset < 0 {
		offset = 0
	}

	idx := l.Index(offset)
	return idx + 1, offset - l[idx].StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (l Lines) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(l) || col < 1 {
		return 0, false
	}

	info := l[line-1]
	offset := info.StartOffset + col - 1

	// Allow column to point to end of line (for cursor positioning).
	if offset > info.NewlineStart {
		return 0, false
	}

	return offset, true
}

// Content returns the text of a 0-based line, excluding the terminator.
func (l Lines) Content(source string, idx int) string {
	if idx < 0 || idx >= len(l) {
		return ""
	}
	return source[l[idx].StartOffset:l[idx].NewlineStart]
}
