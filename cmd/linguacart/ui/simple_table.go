package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static tabular data, used by the eval report and
// the orders listing. Columns are left-aligned unless marked with
// AlignRight.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	rightCols map[int]bool
}

// NewSimpleTable creates a table with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AlignRight marks columns as right-aligned, so numeric values line up
// on their last digit. Returns the table for chaining.
func (t *SimpleTable) AlignRight(cols ...int) *SimpleTable {
	if t.rightCols == nil {
		t.rightCols = make(map[int]bool, len(cols))
	}
	for _, c := range cols {
		t.rightCols[c] = true
	}
	return t
}

// AddRow appends one row.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table with the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}
	widths := t.columnWidths()

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	sb.WriteString(t.renderLine(t.Headers, widths, styles.Bold, styles.Muted))

	dividerWidth := len(widths) - 1
	for _, w := range widths {
		dividerWidth += w
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", dividerWidth)) + "\n")

	for _, row := range t.Rows {
		sb.WriteString(t.renderLine(row, widths, styles.Body, styles.Muted))
	}
	return sb.String()
}

// columnWidths sizes each column to its widest cell, plus the cell
// padding lipgloss counts into the rendered width.
func (t *SimpleTable) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}
	return widths
}

func (t *SimpleTable) renderLine(cells []string, widths []int, cellStyle, sepStyle lipgloss.Style) string {
	var sb strings.Builder
	base := cellStyle.Padding(0, 1)
	for i, c := range cells {
		if i >= len(widths) {
			break
		}
		st := base.Width(widths[i])
		if t.rightCols[i] {
			st = st.Align(lipgloss.Right)
		}
		sb.WriteString(st.Render(c))
		if i < len(cells)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
