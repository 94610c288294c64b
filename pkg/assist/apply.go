package assist

import (
	"strconv"
	"strings"

	"github.com/yaklabco/livemd/pkg/fix"
	"github.com/yaklabco/livemd/pkg/mdast"
	"github.com/yaklabco/livemd/pkg/visual"
)

// applyInline wraps the selection in delimiters. A caret gets an empty
// pair and lands between the delimiters.
func applyInline(text string, sel visual.Cursor, syntax delimiters) (string, visual.Cursor, error) {
	builder := fix.NewEditBuilder()

	if sel.Collapsed() {
		builder.Insert(sel.Start, syntax.open+syntax.close)
		out, _, err := builder.Apply(text)
		if err != nil {
			return text, sel, err
		}
		return out, visual.Caret(sel.Start + len(syntax.open)), nil
	}

	builder.Insert(sel.Start, syntax.open)
	if syntax.close != "" {
		builder.Insert(sel.End, syntax.close)
	}
	return commit(text, sel, builder)
}

// lineRange returns the indexes of the first and last lines touched by
// sel. A selection ending at the start of a line does not touch it.
func lineRange(lines mdast.Lines, sel visual.Cursor) (int, int) {
	first, last := lines.Index(sel.Start), lines.Index(sel.End)
	if last > first && sel.End == lines[last].StartOffset {
		last--
	}
	return first, last
}

// indentWidth returns the length of the leading spaces and tabs of line.
func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// applyPrefix writes a line prefix on every selected line, after its
// indentation. Heading and list prefixes replace an existing prefix of
// the same family.
func (a *Assistant) applyPrefix(text string, sel visual.Cursor, tag visual.Tag) (string, visual.Cursor, error) {
	lines := mdast.BuildLines(text)
	first, last := lineRange(lines, sel)
	replaced := replacedPrefix(tag)
	number := a.firstNumber(text, lines, first)

	builder := fix.NewEditBuilder()
	for i := first; i <= last; i++ {
		content := lines.Content(text, i)
		indent := indentWidth(content)
		at := lines[i].StartOffset + indent

		existing := 0
		if replaced != nil {
			existing = len(replaced.FindString(content[indent:]))
		}

		var prefix string
		switch {
		case tag.HeadingLevel() > 0:
			prefix = strings.Repeat("#", tag.HeadingLevel()) + " "
		case tag == visual.TagUnorderedList:
			prefix = "- "
		case tag == visual.TagOrderedList:
			prefix = strconv.Itoa(number) + ". "
			number++
		case tag == visual.TagCallout && i == first:
			prefix = "> [!" + a.opts.CalloutType + "]\n" + content[:indent] + "> "
		default:
			prefix = "> "
		}
		builder.ReplaceRange(at, at+existing, prefix)
	}

	return commit(text, sel, builder)
}

// firstNumber returns the number for an ordered item at line idx: one more
// than the item on the line before, or 1.
func (a *Assistant) firstNumber(text string, lines mdast.Lines, idx int) int {
	if idx == 0 {
		return 1
	}
	match := orderedPrefix.FindStringSubmatch(lines.Content(text, idx-1))
	if match == nil {
		return 1
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 1
	}
	return n + 1
}

// applyFence wraps the selected lines in fence lines.
func (a *Assistant) applyFence(text string, sel visual.Cursor, tag visual.Tag) (string, visual.Cursor, error) {
	lines := mdast.BuildLines(text)
	first, last := lineRange(lines, sel)

	open, closing := "%%\n", "\n%%"
	if tag == visual.TagCodeBlock {
		open, closing = "```"+a.opts.CodeLanguage+"\n", "\n```"
	}

	start, end := lines[first].StartOffset, lines[last].NewlineStart
	builder := fix.NewEditBuilder()
	builder.Insert(start, open)
	builder.Insert(end, closing)

	if start == end {
		out, _, err := builder.Apply(text)
		if err != nil {
			return text, sel, err
		}
		return out, visual.Caret(start + len(open)), nil
	}
	return commit(text, sel, builder)
}

// Indent adds one indentation level to every selected line.
func (a *Assistant) Indent(text string, sel visual.Cursor) (string, visual.Cursor, error) {
	if err := checkSelection(text, sel); err != nil {
		return text, sel, err
	}

	lines := mdast.BuildLines(text)
	first, last := lineRange(lines, sel)

	builder := fix.NewEditBuilder()
	for i := first; i <= last; i++ {
		builder.Insert(lines[i].StartOffset, a.opts.Indent)
	}
	return commit(text, sel, builder)
}

// Outdent removes one indentation level, a tab or up to four spaces, from
// every selected line. Lines without indentation are left alone.
func (a *Assistant) Outdent(text string, sel visual.Cursor) (string, visual.Cursor, error) {
	if err := checkSelection(text, sel); err != nil {
		return text, sel, err
	}

	lines := mdast.BuildLines(text)
	first, last := lineRange(lines, sel)

	builder := fix.NewEditBuilder()
	for i := first; i <= last; i++ {
		if n := len(indentPrefix.FindString(lines.Content(text, i))); n > 0 {
			builder.Delete(lines[i].StartOffset, lines[i].StartOffset+n)
		}
	}
	if builder.Len() == 0 {
		return text, sel, nil
	}
	return commit(text, sel, builder)
}

// Indent adds one indentation level using default options.
func Indent(text string, sel visual.Cursor) (string, visual.Cursor, error) {
	return defaultAssistant.Indent(text, sel)
}

// Outdent removes one indentation level using default options.
func Outdent(text string, sel visual.Cursor) (string, visual.Cursor, error) {
	return defaultAssistant.Outdent(text, sel)
}
