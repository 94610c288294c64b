package pretty

import (
	"fmt"
	"strings"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableFormatter formats rows of cells as an aligned table. The last
// column absorbs any width beyond the terminal.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// Format renders headers and rows. Rows shorter than headers are padded
// with empty cells.
func (t *TableFormatter) Format(headers []string, rows [][]string) string {
	widths := t.columnWidths(headers, rows)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(formatRow(headers, widths)))
	builder.WriteByte('\n')
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth(widths))))
	builder.WriteByte('\n')

	for _, row := range rows {
		builder.WriteString(formatRow(row, widths))
		builder.WriteByte('\n')
	}

	return builder.String()
}

func (t *TableFormatter) columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = max(len(header), minColumnWidth)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	if len(widths) > 0 {
		if excess := totalWidth(widths) - t.termWidth; excess > 0 {
			last := len(widths) - 1
			widths[last] = max(minColumnWidth, widths[last]-excess)
		}
	}
	return widths
}

func totalWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w + tablePadding
	}
	return total
}

func formatRow(cells []string, widths []int) string {
	var builder strings.Builder
	builder.WriteByte(' ')
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = truncateString(cells[i], width)
		}
		if i == len(widths)-1 {
			builder.WriteString(cell)
			break
		}
		fmt.Fprintf(&builder, "%-*s", width+tablePadding, cell)
	}
	return builder.String()
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
