package pretty

import "strings"

// PaintDiff colorizes a unified diff line by line.
func (s *Styles) PaintDiff(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(s.diffLine(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (s *Styles) diffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "diff "):
		return s.DiffHeader.Render(line)
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}
